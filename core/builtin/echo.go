package builtin

import (
	"fmt"
	"strings"

	"github.com/gosh-shell/gosh/core/engine"
)

// Echo writes its arguments to standard output separated by single
// spaces. One or more leading arguments that are a `-` followed by a
// run of `n`s (-n, -nn, ...) suppress the trailing newline; the first
// argument that doesn't match ends flag parsing and prints literally.
//
//	echo -n a b   -> "a b"
//	echo -n -n a  -> "a"
//	echo -nx a    -> "-nx a\n"
//
// Echo always succeeds.
func Echo(sess *engine.Session, stdio engine.IO, argv []string) int {
	args := argv[1:]

	newline := true
	for len(args) > 0 && isNewlineFlag(args[0]) {
		newline = false
		args = args[1:]
	}

	fmt.Fprint(stdio.Out, strings.Join(args, " "))
	if newline {
		fmt.Fprintln(stdio.Out)
	}
	return engine.StatusSuccess
}

// isNewlineFlag matches -n, -nn, -nnn, ... exactly.
func isNewlineFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	for _, c := range arg[1:] {
		if c != 'n' {
			return false
		}
	}
	return true
}

func init() {
	AllBuiltins["echo"] = Echo
}
