package builtin

import (
	"fmt"
	"strconv"

	"github.com/gosh-shell/gosh/core/engine"
)

// Exit asks the shell to terminate. With no argument the shell exits
// with the last command's status; a numeric argument is used modulo
// 256. A non-numeric argument still exits, with status 2; extra
// arguments don't exit at all, matching bash.
//
// In a pipeline, Exit runs against a forked session, so only the
// stage terminates — also matching bash.
func Exit(sess *engine.Session, stdio engine.IO, argv []string) int {
	switch len(argv) {
	case 1:
		sess.ExitRequested = true
		sess.ExitCode = sess.LastStatus
		return sess.LastStatus

	case 2:
		code, err := strconv.Atoi(argv[1])
		if err != nil {
			fmt.Fprintf(stdio.Err, "%s: %s: numeric argument required\n", argv[0], argv[1])
			code = 2
		}
		code &= 0xff
		sess.ExitRequested = true
		sess.ExitCode = code
		return code

	default:
		fmt.Fprintf(stdio.Err, "%s: too many arguments\n", argv[0])
		return engine.StatusFailure
	}
}

func init() {
	AllBuiltins["exit"] = Exit
}
