// Package environ implements the shell's environment variable store.
//
// Variables keep their insertion order so that `env` output and the
// environment handed to child processes are stable across runs.
package environ

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Env is an ordered set of NAME=VALUE environment variables.
type Env struct {
	mu    sync.RWMutex
	names []string
	index map[string]int
}

// New creates an empty environment.
func New() *Env {
	return &Env{index: make(map[string]int)}
}

// NewFromEnviron creates an environment populated from a list of
// "key=value" entries, such as the one returned by os.Environ.
// Duplicate keys keep the last value but the first position.
func NewFromEnviron(environ []string) *Env {
	out := New()
	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		out.Set(key, value)
	}
	return out
}

// Lookup retrieves the value of the variable named by the key. If the
// variable is present (possibly empty) the boolean is true.
func (e *Env) Lookup(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	i, ok := e.index[key]
	if !ok {
		return "", false
	}
	entry := e.names[i]
	if eq := strings.IndexByte(entry, '='); eq >= 0 {
		return entry[eq+1:], true
	}
	return "", true
}

// Get retrieves the value of the variable named by the key, or "" if
// it is unset. Use Lookup to distinguish unset from empty.
func (e *Env) Get(key string) string {
	val, _ := e.Lookup(key)
	return val
}

// Set sets the value of the variable named by the key, keeping the
// variable's existing position if it was already set.
func (e *Env) Set(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry := fmt.Sprintf("%s=%s", key, value)
	if i, ok := e.index[key]; ok {
		e.names[i] = entry
		return
	}
	e.index[key] = len(e.names)
	e.names = append(e.names, entry)
}

// Unset removes the variable named by the key. Removing a variable
// that isn't set is not an error.
func (e *Env) Unset(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[key]
	if !ok {
		return
	}
	e.names = append(e.names[:i], e.names[i+1:]...)
	delete(e.index, key)
	for k, v := range e.index {
		if v > i {
			e.index[k] = v - 1
		}
	}
}

// Environ returns a copy of the environment as "key=value" entries in
// insertion order. The copy is safe for the caller to hold across
// later mutations, which is what child processes rely on.
func (e *Env) Environ() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Expand replaces ${var} or $var in s with the values of the
// environment. References to undefined variables become "".
func (e *Env) Expand(s string) string {
	return os.Expand(s, e.Get)
}
