// Package redirect applies a command's file redirections to its
// standard streams.
package redirect

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Op is a redirection operator.
type Op int

const (
	// OpInput is `< file`: read standard input from file.
	OpInput Op = iota
	// OpOutput is `> file`: truncate file and write standard output to it.
	OpOutput
	// OpAppend is `>> file`: append standard output to file.
	OpAppend
	// OpHeredoc is `<< delim`: read standard input from a body
	// collected up front.
	OpHeredoc
)

// ParseOp maps a token to its redirection operator.
func ParseOp(tok string) (Op, bool) {
	switch tok {
	case "<":
		return OpInput, true
	case ">":
		return OpOutput, true
	case ">>":
		return OpAppend, true
	case "<<":
		return OpHeredoc, true
	}
	return 0, false
}

func (o Op) String() string {
	switch o {
	case OpInput:
		return "<"
	case OpOutput:
		return ">"
	case OpAppend:
		return ">>"
	case OpHeredoc:
		return "<<"
	}
	return "?"
}

// Redir is a single redirection directive. For OpHeredoc, Target is
// the delimiter and Body holds the collected heredoc content.
type Redir struct {
	Op     Op
	Target string
	Body   io.Reader
}

// Apply applies redirections in order over the stage's current
// standard streams and returns the effective streams. Relative
// targets are anchored at dir ("" means the process's working
// directory). Later redirections of the same direction win, matching
// shells.
//
// Application is all-or-nothing for the stage: on error the streams
// are unusable, every file opened so far has been closed, and the
// stage's command must not run. On success the caller owns the
// returned closers and must close them exactly once after the
// command finishes.
func Apply(vfs afero.Fs, dir string, redirs []Redir, in io.Reader, out io.Writer) (io.Reader, io.Writer, []io.Closer, error) {
	var closers []io.Closer

	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	for _, r := range redirs {
		target := r.Target
		if dir != "" && !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}

		switch r.Op {
		case OpInput:
			fd, err := vfs.Open(target)
			if err != nil {
				closeAll()
				return nil, nil, nil, redirErr(r.Target, err)
			}
			closers = append(closers, fd)
			in = fd

		case OpOutput:
			fd, err := vfs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				closeAll()
				return nil, nil, nil, redirErr(r.Target, err)
			}
			closers = append(closers, fd)
			out = fd

		case OpAppend:
			fd, err := vfs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
			if err != nil {
				closeAll()
				return nil, nil, nil, redirErr(r.Target, err)
			}
			closers = append(closers, fd)
			out = fd

		case OpHeredoc:
			if r.Body == nil {
				closeAll()
				return nil, nil, nil, fmt.Errorf("%s: heredoc was never collected", r.Target)
			}
			in = r.Body
		}
	}

	return in, out, closers, nil
}

// redirErr strips the *fs.PathError wrapper so messages read like a
// shell's: "<target>: no such file or directory".
func redirErr(target string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return fmt.Errorf("%s: %v", target, err)
}
