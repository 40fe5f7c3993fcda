// Package engine executes parsed command pipelines: it decides how
// each command runs, wires inter-process communication between
// pipeline stages, and collects a single bash-compatible exit status
// for the whole pipeline.
package engine

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosh-shell/gosh/core/redirect"
)

// IO is the set of standard streams wired for one command.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// BuiltinRunner dispatches builtin commands. Builtins run
// synchronously in the calling goroutine and never spawn processes.
type BuiltinRunner interface {
	// IsBuiltin reports whether name (exact match) is a builtin.
	IsBuiltin(name string) bool

	// Run executes argv[0] as a builtin against the given streams.
	// handled is false if argv[0] is not a builtin, in which case
	// the caller falls through to external resolution.
	Run(sess *Session, stdio IO, argv []string) (handled bool, status int)
}

// Engine runs pipelines for a session.
type Engine struct {
	// Prog is the shell's name, used as the prefix of error
	// messages ("gosh: foo: command not found").
	Prog string

	Builtins BuiltinRunner
}

func New(prog string, builtins BuiltinRunner) *Engine {
	return &Engine{Prog: prog, Builtins: builtins}
}

// Run executes the pipeline and leaves its final status in
// sess.LastStatus. Heredocs are collected for every stage first, then
// either a lone builtin runs in-process or one child is spawned per
// stage and all of them are reaped.
func (e *Engine) Run(sess *Session, p *Pipeline) {
	if p == nil || p.Head == nil {
		return
	}

	read := sess.ReadHeredoc
	if read == nil {
		read = func(string) (io.Reader, error) { return strings.NewReader(""), nil }
	}
	for st := p.Head; st != nil; st = st.Next {
		if err := redirect.CollectHeredocs(st.Redirs, read); err != nil {
			fmt.Fprintf(sess.Stderr, "%s: %v\n", e.Prog, err)
			sess.LastStatus = StatusFailure
			return
		}
	}

	if p.Head.Next == nil && e.tryRunSingle(sess, p.Head) {
		return
	}

	// prevRead is the read end of the pipe linking the previous
	// stage to the current one. The first stage reads the session's
	// real stdin; the last writes its real stdout.
	var prevRead *os.File
	for st := p.Head; st != nil && !sess.Stop; st = st.Next {
		var pipeRead, pipeWrite *os.File
		if st.Next != nil {
			var err error
			pipeRead, pipeWrite, err = os.Pipe()
			if err != nil {
				// A shell that can't make pipes can't make
				// progress; abandon the rest of the launch.
				fmt.Fprintf(sess.Stderr, "%s: pipe: %v\n", e.Prog, err)
				sess.LastStatus = StatusFailure
				break
			}
		}

		var stdin io.Reader = sess.Stdin
		if prevRead != nil {
			stdin = prevRead
		}
		var stdout io.Writer = sess.Stdout
		if pipeWrite != nil {
			stdout = pipeWrite
		}

		// spawn takes ownership of this stage's inherited ends:
		// the previous pipe's read end and the new write end. The
		// parent keeps only the new read end for the next stage.
		st.handle = e.spawn(sess, st, stdin, stdout, prevRead, pipeWrite)
		prevRead = pipeRead
	}
	if prevRead != nil {
		// Launch stopped early; don't leak the dangling read end.
		prevRead.Close()
	}

	e.reapAll(sess, p)
}

// tryRunSingle runs a lone builtin in the shell's own process,
// saving and restoring the standard streams around its redirections.
// It reports false when the stage is not a builtin so the caller
// falls through to the pipeline path, which forks exactly once for a
// single external command.
func (e *Engine) tryRunSingle(sess *Session, st *Stage) bool {
	if len(st.Argv) == 0 || !e.Builtins.IsBuiltin(st.Argv[0]) {
		return false
	}

	savedIn, savedOut := sess.Stdin, sess.Stdout

	in, out, closers, err := redirect.Apply(sess.Fs, sess.Dir, st.Redirs, sess.Stdin, sess.Stdout)
	if err != nil {
		fmt.Fprintf(sess.Stderr, "%s: %v\n", e.Prog, err)
		sess.LastStatus = StatusFailure
		return true
	}

	sess.Stdin, sess.Stdout = in, out
	_, status := e.Builtins.Run(sess, IO{In: in, Out: out, Err: sess.Stderr}, st.Argv)
	sess.LastStatus = status

	// Restore unconditionally and release whatever the
	// redirections opened.
	sess.Stdin, sess.Stdout = savedIn, savedOut
	for _, c := range closers {
		c.Close()
	}
	return true
}

// reapAll waits for every spawned stage in pipeline order. The final
// LastStatus is the status of the last stage reaped. A 130 or 131
// status sets the session's halt flag; reaping still visits every
// spawned stage so no child is left behind.
func (e *Engine) reapAll(sess *Session, p *Pipeline) {
	for st := p.Head; st != nil; st = st.Next {
		if st.handle == nil {
			continue
		}
		status := st.handle.wait()
		st.handle = nil
		sess.LastStatus = status
		if status == StatusInterrupt || status == StatusQuit {
			sess.Stop = true
		}
	}
}
