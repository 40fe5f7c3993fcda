package builtin

import (
	"fmt"
	"strings"

	"github.com/pborman/getopt/v2"
	"github.com/gosh-shell/gosh/core/engine"
)

// Env prints the environment, one NAME=VALUE per line, in the order
// variables were defined.
func Env(sess *engine.Session, stdio engine.IO, argv []string) int {
	for _, entry := range sess.Env.Environ() {
		fmt.Fprintln(stdio.Out, entry)
	}
	return engine.StatusSuccess
}

// Export sets variables from NAME=VALUE arguments. With no arguments
// or -p it prints the environment in declare form instead.
func Export(sess *engine.Session, stdio engine.IO, argv []string) int {
	opts := getopt.New()
	printOpt := opts.Bool('p', "print exported variables")

	if err := opts.Getopt(argv, nil); err != nil {
		fmt.Fprintf(stdio.Err, "%s: %v\n", argv[0], err)
		return engine.StatusFailure
	}

	args := opts.Args()
	if *printOpt || len(args) == 0 {
		for _, entry := range sess.Env.Environ() {
			split := strings.SplitN(entry, "=", 2)
			fmt.Fprintf(stdio.Out, "declare -x %s=%q\n", split[0], split[1])
		}
		return engine.StatusSuccess
	}

	status := engine.StatusSuccess
	for _, arg := range args {
		name, value := arg, ""
		if eq := strings.IndexByte(arg, '='); eq >= 0 {
			name, value = arg[:eq], arg[eq+1:]
		}
		if !validIdentifier(name) {
			fmt.Fprintf(stdio.Err, "%s: `%s': not a valid identifier\n", argv[0], arg)
			status = engine.StatusFailure
			continue
		}
		if name == arg {
			// Bare name with nothing to assign; exporting an
			// existing variable is a no-op in this model.
			continue
		}
		sess.Env.Set(name, value)
	}
	return status
}

// Unset removes each named variable. Removing an unknown name isn't
// an error.
func Unset(sess *engine.Session, stdio engine.IO, argv []string) int {
	opts := getopt.New()
	opts.Bool('f', "treat NAME as a function")
	opts.Bool('v', "treat NAME as a variable")

	if err := opts.Getopt(argv, nil); err != nil {
		fmt.Fprintf(stdio.Err, "%s: %v\n", argv[0], err)
		return engine.StatusFailure
	}

	for _, name := range opts.Args() {
		sess.Env.Unset(name)
	}
	return engine.StatusSuccess
}

func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func init() {
	AllBuiltins["env"] = Env
	AllBuiltins["export"] = Export
	AllBuiltins["unset"] = Unset
}
