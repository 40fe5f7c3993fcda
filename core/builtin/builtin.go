// Package builtin implements the commands that run inside the shell
// process itself.
package builtin

import (
	"github.com/gosh-shell/gosh/core/engine"
)

// Func is the implementation of a single builtin. It runs
// synchronously in the caller, writes to the wired streams, and
// reports its exit status.
type Func func(sess *engine.Session, stdio engine.IO, argv []string) int

// AllBuiltins holds every registered shell builtin by name.
var AllBuiltins = make(map[string]Func)

// Registry dispatches builtins for the engine.
type Registry struct{}

var _ engine.BuiltinRunner = Registry{}

// IsBuiltin reports whether name matches a builtin exactly.
func (Registry) IsBuiltin(name string) bool {
	_, ok := AllBuiltins[name]
	return ok
}

// Run executes argv[0] if it is a builtin.
func (Registry) Run(sess *engine.Session, stdio engine.IO, argv []string) (bool, int) {
	if len(argv) == 0 {
		return false, 0
	}
	fn, ok := AllBuiltins[argv[0]]
	if !ok {
		return false, 0
	}
	return true, fn(sess, stdio, argv)
}
