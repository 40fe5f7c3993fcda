package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/gosh-shell/gosh/core/environ"
)

func TestSessionPath(t *testing.T) {
	sess := &Session{Env: environ.New()}

	// PATH unset yields no directories at all.
	assert.Nil(t, sess.Path())

	sess.Env.Set("PATH", "/usr/local/bin:/usr/bin:/bin")
	assert.Equal(t, []string{"/usr/local/bin", "/usr/bin", "/bin"}, sess.Path())

	// Set-but-empty PATH is one empty element (meaning ".").
	sess.Env.Set("PATH", "")
	assert.Equal(t, []string{""}, sess.Path())
}

func TestSessionFork(t *testing.T) {
	sess := &Session{Env: environ.New(), Dir: "/home/a", LastStatus: 9}
	sess.Env.Set("SHARED", "before")

	child := sess.Fork()
	child.Env.Set("SHARED", "after")
	child.Env.Set("CHILD_ONLY", "1")
	child.Dir = "/elsewhere"
	child.ExitRequested = true

	// The parent never observes a child's mutations.
	assert.Equal(t, "before", sess.Env.Get("SHARED"))
	_, ok := sess.Env.Lookup("CHILD_ONLY")
	assert.False(t, ok)
	assert.Equal(t, "/home/a", sess.Dir)
	assert.False(t, sess.ExitRequested)

	// The child inherited everything at fork time.
	assert.Equal(t, 9, child.LastStatus)
}

func TestSessionReset(t *testing.T) {
	sess := &Session{Stop: true, LastStatus: 130}

	sess.Reset()

	assert.False(t, sess.Stop, "halt flag is per pipeline")
	assert.Equal(t, 130, sess.LastStatus, "status survives into the next pipeline")
}
