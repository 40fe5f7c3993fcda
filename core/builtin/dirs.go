package builtin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosh-shell/gosh/core/engine"
)

// Pwd prints the working directory. On failure it prints nothing and
// fails with status 1.
func Pwd(sess *engine.Session, stdio engine.IO, argv []string) int {
	dir := sess.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return engine.StatusFailure
		}
		dir = wd
	}

	fmt.Fprintln(stdio.Out, dir)
	return engine.StatusSuccess
}

// Cd changes the session's working directory. With no argument it
// changes to $HOME. It updates PWD and OLDPWD like bash does.
func Cd(sess *engine.Session, stdio engine.IO, argv []string) int {
	var target string
	switch len(argv) {
	case 1:
		home, ok := sess.Env.Lookup("HOME")
		if !ok {
			fmt.Fprintf(stdio.Err, "%s: HOME not set\n", argv[0])
			return engine.StatusFailure
		}
		target = home
	case 2:
		target = argv[1]
	default:
		fmt.Fprintf(stdio.Err, "%s: too many arguments\n", argv[0])
		return engine.StatusFailure
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(sess.Dir, target)
	}
	target = filepath.Clean(target)

	info, err := sess.Fs.Stat(target)
	switch {
	case err != nil:
		fmt.Fprintf(stdio.Err, "%s: %s: no such file or directory\n", argv[0], target)
		return engine.StatusFailure
	case !info.IsDir():
		fmt.Fprintf(stdio.Err, "%s: %s: not a directory\n", argv[0], target)
		return engine.StatusFailure
	}

	sess.Env.Set("OLDPWD", sess.Dir)
	sess.Dir = target
	sess.Env.Set("PWD", target)
	return engine.StatusSuccess
}

func init() {
	AllBuiltins["pwd"] = Pwd
	AllBuiltins["cd"] = Cd
}
