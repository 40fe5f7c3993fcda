package engine

import (
	"github.com/gosh-shell/gosh/core/redirect"
)

// Stage is one element of a pipeline: a command with its arguments
// and redirections. Stages form an owned, forward-only linked list.
type Stage struct {
	// Argv is the command and its arguments. It may be empty; an
	// empty command is a valid stage that resolves to "not found".
	Argv []string

	// Redirs are the stage's redirection directives, applied after
	// pipe wiring so explicit file redirection wins.
	Redirs []redirect.Redir

	// Next is the following stage, or nil for the last.
	Next *Stage

	// handle is set once the stage has been spawned.
	handle handle
}

// Pipeline is an ordered sequence of stages whose standard streams
// are chained via pipes.
type Pipeline struct {
	Head *Stage
}

// NewPipeline links the given stages into a pipeline.
func NewPipeline(stages ...*Stage) *Pipeline {
	var head, tail *Stage
	for _, st := range stages {
		st.Next = nil
		if head == nil {
			head = st
		} else {
			tail.Next = st
		}
		tail = st
	}
	return &Pipeline{Head: head}
}

// Len reports the number of stages.
func (p *Pipeline) Len() int {
	n := 0
	for st := p.Head; st != nil; st = st.Next {
		n++
	}
	return n
}

// Argv flattens the pipeline back to a single argument vector with
// "|" separators, for logging.
func (p *Pipeline) Argv() []string {
	var out []string
	for st := p.Head; st != nil; st = st.Next {
		if st != p.Head {
			out = append(out, "|")
		}
		out = append(out, st.Argv...)
	}
	return out
}
