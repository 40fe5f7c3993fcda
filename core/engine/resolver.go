package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Resolver locates the executable file for a command name.
type Resolver struct {
	Fs afero.Fs

	// Dir anchors relative candidates; empty means the process's
	// working directory.
	Dir string
}

// Resolve searches for the executable named by name. If name contains
// a slash it is tried directly and the search dirs are not consulted.
// Otherwise each directory is tried in order and the first existing
// candidate wins; whether that candidate can actually be executed is
// only discovered at spawn time.
//
// Resolution can only fail: a nil error means a path was found, never
// that anything ran. Errors are *StatusError values carrying the
// shell status (127 for not found, including the empty command).
func (r *Resolver) Resolve(name string, searchDirs []string) (string, error) {
	if name == "" {
		return "", notFound(name)
	}

	if strings.Contains(name, "/") {
		if r.exists(name) {
			return name, nil
		}
		return "", notFound(name)
	}

	for _, dir := range searchDirs {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		if r.exists(candidate) {
			return candidate, nil
		}
	}

	return "", notFound(name)
}

func (r *Resolver) exists(path string) bool {
	if r.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(r.Dir, path)
	}
	info, err := r.Fs.Stat(path)
	return err == nil && !info.IsDir()
}

func notFound(name string) *StatusError {
	return &StatusError{
		Status:  StatusNotFound,
		Message: fmt.Sprintf("%s: command not found", name),
	}
}
