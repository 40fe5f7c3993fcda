package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/gosh-shell/gosh/core/engine"
)

func TestEnvPrintsInsertionOrder(t *testing.T) {
	cases := goldenTestSuite{
		"ordered": {
			Args: []string{"env"},
			Setup: func(sess *engine.Session) {
				sess.Env.Set("PATH", "/bin")
				sess.Env.Set("HOME", "/home/test")
				sess.Env.Set("EMPTY", "")
			},
		},
		"empty-environment": {Args: []string{"env"}},
	}

	cases.Run(t)
}

func TestExportPrint(t *testing.T) {
	cases := goldenTestSuite{
		"declare-form": {
			Args: []string{"export"},
			Setup: func(sess *engine.Session) {
				sess.Env.Set("A", "1")
				sess.Env.Set("MSG", "hello world")
			},
		},
		"dash-p": {
			Args: []string{"export", "-p"},
			Setup: func(sess *engine.Session) {
				sess.Env.Set("A", "1")
			},
		},
	}

	cases.Run(t)
}

func TestExportSetsVariables(t *testing.T) {
	sess, _, stderr := newTestSession()

	status := runBuiltin(t, sess, stdio(sess), "export", "A=1", "B=two words")

	assert.Equal(t, 0, status)
	assert.Equal(t, "1", sess.Env.Get("A"))
	assert.Equal(t, "two words", sess.Env.Get("B"))
	assert.Empty(t, stderr.String())
}

func TestExportInvalidIdentifier(t *testing.T) {
	sess, _, stderr := newTestSession()

	status := runBuiltin(t, sess, stdio(sess), "export", "1bad=x", "GOOD=1")

	assert.Equal(t, engine.StatusFailure, status)
	assert.Contains(t, stderr.String(), "`1bad=x': not a valid identifier")
	// Valid assignments in the same invocation still happen.
	assert.Equal(t, "1", sess.Env.Get("GOOD"))
}

func TestExportBareNameIsNoop(t *testing.T) {
	sess, _, _ := newTestSession()
	sess.Env.Set("KEEP", "1")

	status := runBuiltin(t, sess, stdio(sess), "export", "KEEP")

	assert.Equal(t, 0, status)
	assert.Equal(t, "1", sess.Env.Get("KEEP"))
}

func TestUnset(t *testing.T) {
	sess, _, _ := newTestSession()
	sess.Env.Set("A", "1")
	sess.Env.Set("B", "2")

	status := runBuiltin(t, sess, stdio(sess), "unset", "A", "NEVER_SET")

	assert.Equal(t, 0, status)
	_, exists := sess.Env.Lookup("A")
	assert.False(t, exists)
	assert.Equal(t, "2", sess.Env.Get("B"))
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, validIdentifier("PATH"))
	assert.True(t, validIdentifier("_x"))
	assert.True(t, validIdentifier("a1"))
	assert.False(t, validIdentifier(""))
	assert.False(t, validIdentifier("1a"))
	assert.False(t, validIdentifier("with-dash"))
	assert.False(t, validIdentifier("sp ace"))
}
