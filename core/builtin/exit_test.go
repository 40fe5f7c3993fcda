package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExit(t *testing.T) {
	t.Run("no-arg-uses-last-status", func(t *testing.T) {
		sess, _, _ := newTestSession()
		sess.LastStatus = 42

		status := runBuiltin(t, sess, stdio(sess), "exit")

		assert.Equal(t, 42, status)
		assert.True(t, sess.ExitRequested)
		assert.Equal(t, 42, sess.ExitCode)
	})

	t.Run("numeric-arg", func(t *testing.T) {
		sess, _, _ := newTestSession()

		status := runBuiltin(t, sess, stdio(sess), "exit", "3")

		assert.Equal(t, 3, status)
		assert.True(t, sess.ExitRequested)
		assert.Equal(t, 3, sess.ExitCode)
	})

	t.Run("wraps-modulo-256", func(t *testing.T) {
		sess, _, _ := newTestSession()

		status := runBuiltin(t, sess, stdio(sess), "exit", "257")

		assert.Equal(t, 1, status)
		assert.Equal(t, 1, sess.ExitCode)
	})

	t.Run("non-numeric-still-exits", func(t *testing.T) {
		sess, _, stderr := newTestSession()

		status := runBuiltin(t, sess, stdio(sess), "exit", "abc")

		assert.Equal(t, 2, status)
		assert.True(t, sess.ExitRequested)
		assert.Contains(t, stderr.String(), "numeric argument required")
	})

	t.Run("too-many-args-does-not-exit", func(t *testing.T) {
		sess, _, stderr := newTestSession()

		status := runBuiltin(t, sess, stdio(sess), "exit", "1", "2")

		assert.Equal(t, 1, status)
		assert.False(t, sess.ExitRequested)
		assert.Contains(t, stderr.String(), "too many arguments")
	})
}

func TestRegistry(t *testing.T) {
	reg := Registry{}

	for _, name := range []string{"pwd", "echo", "cd", "export", "unset", "env", "exit"} {
		assert.True(t, reg.IsBuiltin(name), name)
	}

	// Exact match only, never prefix.
	assert.False(t, reg.IsBuiltin("ech"))
	assert.False(t, reg.IsBuiltin("echoo"))
	assert.False(t, reg.IsBuiltin("ls"))
	assert.False(t, reg.IsBuiltin(""))

	sess, _, _ := newTestSession()
	handled, _ := reg.Run(sess, stdio(sess), []string{"ls"})
	assert.False(t, handled)
	handled, _ = reg.Run(sess, stdio(sess), nil)
	assert.False(t, handled)
}
