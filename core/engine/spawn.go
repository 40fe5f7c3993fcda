package engine

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/gosh-shell/gosh/core/redirect"
)

// handle is an opaque reference to a spawned pipeline stage. Waiting
// on it blocks until the stage has finished and yields its shell exit
// status, so the collector is a plain fold over handles.
type handle interface {
	wait() int
}

// doneHandle is a stage that never launched: resolution or
// redirection already decided its status.
type doneHandle int

func (d doneHandle) wait() int { return int(d) }

// procHandle is an external command running as a child process.
type procHandle struct {
	cmd     *exec.Cmd
	closers []io.Closer
}

func (h *procHandle) wait() int {
	err := h.cmd.Wait()
	for _, c := range h.closers {
		c.Close()
	}
	return statusFromWait(err)
}

// goHandle is a builtin running in-process on its own goroutine.
type goHandle struct {
	ch chan int
}

func (h *goHandle) wait() int { return <-h.ch }

// spawn launches one stage with the given wired standard streams.
//
// Ownership of the files in owned (the stage's inherited pipe ends)
// transfers to spawn: they are closed exactly once on every path —
// immediately on resolution or redirection failure, by the parent
// right after a child process starts, or by the builtin goroutine
// when it finishes. Leaving one open would hold a pipe's write end
// and stall a downstream reader forever.
func (e *Engine) spawn(sess *Session, st *Stage, stdin io.Reader, stdout io.Writer, owned ...*os.File) handle {
	closeOwned := func() {
		for _, f := range owned {
			if f != nil {
				f.Close()
			}
		}
	}

	// Redirections are applied after pipe wiring so explicit file
	// redirection wins over the pipe connection.
	in, out, closers, err := redirect.Apply(sess.Fs, sess.Dir, st.Redirs, stdin, stdout)
	if err != nil {
		fmt.Fprintf(sess.Stderr, "%s: %v\n", e.Prog, err)
		closeOwned()
		return doneHandle(StatusFailure)
	}
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
		closeOwned()
	}

	var name string
	if len(st.Argv) > 0 {
		name = st.Argv[0]
	}

	if name != "" && e.Builtins.IsBuiltin(name) {
		// The builtin gets a forked session: a private environment
		// snapshot, like a child process would inherit.
		child := sess.Fork()
		stdio := IO{In: in, Out: out, Err: sess.Stderr}
		h := &goHandle{ch: make(chan int, 1)}
		go func() {
			_, status := e.Builtins.Run(child, stdio, st.Argv)
			closeAll()
			h.ch <- status
		}()
		return h
	}

	path, rerr := (&Resolver{Fs: sess.Fs, Dir: sess.Dir}).Resolve(name, sess.Path())
	if rerr != nil {
		fmt.Fprintf(sess.Stderr, "%s: %v\n", e.Prog, rerr)
		closeAll()
		var statusErr *StatusError
		if errors.As(rerr, &statusErr) {
			return doneHandle(statusErr.Status)
		}
		return doneHandle(StatusFailure)
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   st.Argv,
		Env:    sess.Env.Environ(),
		Dir:    sess.Dir,
		Stdin:  in,
		Stdout: out,
		Stderr: sess.Stderr,
	}
	if err := cmd.Start(); err != nil {
		// Found but not runnable: permission, format, vanished.
		fmt.Fprintf(sess.Stderr, "%s: %s: %v\n", e.Prog, name, startErr(err))
		closeAll()
		return doneHandle(StatusNotExecutable)
	}

	// The child owns its copies of the pipe ends now.
	closeOwned()
	return &procHandle{cmd: cmd, closers: closers}
}

// startErr strips the path error wrapper for shell-style messages.
func startErr(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
