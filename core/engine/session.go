package engine

import (
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/gosh-shell/gosh/core/environ"
	"github.com/gosh-shell/gosh/core/redirect"
)

// Session is the process-wide state for one shell run. It is created
// once per shell and persists across pipelines; the pipeline itself
// is rebuilt per command line.
type Session struct {
	// Env is the variable store, exclusively owned by the session.
	// Children receive copies, never references.
	Env *environ.Env

	// Fs is the filesystem used for redirections and command
	// resolution. The real shell uses afero.NewOsFs.
	Fs afero.Fs

	// Dir is the working directory commands run in. Keeping it on
	// the session rather than chdir-ing the shell process means a
	// forked stage's cd stays private to that stage.
	Dir string

	// Live standard streams. The single-command fast path swaps
	// these around redirections and restores them afterwards.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LastStatus is the exit status of the most recent command or
	// pipeline, readable by builtins ($? upstream, exit).
	LastStatus int

	// Stop halts further stage launches for the current pipeline
	// once a fatal interactive signal status is observed. Reset
	// before each new pipeline.
	Stop bool

	// ExitRequested is set by the exit builtin; the shell loop
	// leaves when it sees it. ExitCode is the requested code.
	ExitRequested bool
	ExitCode      int

	// ReadHeredoc collects one heredoc body from the shell's input.
	// Installed by the shell layer; nil yields empty bodies.
	ReadHeredoc redirect.HeredocReader
}

// Reset prepares the session for a new pipeline.
func (s *Session) Reset() {
	s.Stop = false
}

// Fork returns a copy of the session for a pipeline stage running
// in-process. The copy gets a private snapshot of the environment,
// mirroring what a forked child would inherit: stage-local mutations
// (export, cd's PWD update, exit) never reach the parent session.
func (s *Session) Fork() *Session {
	clone := *s
	clone.Env = environ.NewFromEnviron(s.Env.Environ())
	return &clone
}

// Path returns the command search directories derived from PATH. An
// unset PATH yields no directories at all, not the empty directory.
func (s *Session) Path() []string {
	path, ok := s.Env.Lookup("PATH")
	if !ok {
		return nil
	}
	return strings.Split(path, ":")
}
