package builtin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEcho(t *testing.T) {
	cases := []struct {
		name     string
		argv     []string
		expected string
	}{
		{"no-args", []string{"echo"}, "\n"},
		{"plain", []string{"echo", "a", "b"}, "a b\n"},
		{"suppress-newline", []string{"echo", "-n", "a", "b"}, "a b"},
		{"double-flag", []string{"echo", "-n", "-n", "a"}, "a"},
		{"run-of-ns", []string{"echo", "-nnn", "a"}, "a"},
		{"invalid-flag-is-literal", []string{"echo", "-nx", "a"}, "-nx a\n"},
		{"flag-after-arg-is-literal", []string{"echo", "a", "-n"}, "a -n\n"},
		{"bare-dash", []string{"echo", "-", "a"}, "- a\n"},
		{"only-flags", []string{"echo", "-n"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess, stdout, stderr := newTestSession()

			status := runBuiltin(t, sess, stdio(sess), tc.argv...)

			assert.Equal(t, 0, status, "echo always succeeds")
			assert.Equal(t, tc.expected, stdout.String())
			assert.Empty(t, stderr.String())
		})
	}
}

func TestIsNewlineFlag(t *testing.T) {
	assert.True(t, isNewlineFlag("-n"))
	assert.True(t, isNewlineFlag("-nnnn"))
	assert.False(t, isNewlineFlag("-"))
	assert.False(t, isNewlineFlag("-nx"))
	assert.False(t, isNewlineFlag("-e"))
	assert.False(t, isNewlineFlag("n"))
	assert.False(t, isNewlineFlag(""))
}

func TestEchoOutputIsUnbuffered(t *testing.T) {
	// echo must write to the wired stream, not the session's, so a
	// pipeline stage's output reaches the pipe.
	sess, stdout, _ := newTestSession()
	var pipe bytes.Buffer

	runBuiltin(t, sess, stdioTo(sess, &pipe), "echo", "hi")

	assert.Equal(t, "hi\n", pipe.String())
	assert.Empty(t, stdout.String())
}
