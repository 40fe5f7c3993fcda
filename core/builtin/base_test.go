package builtin

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/gosh-shell/gosh/core/engine"
	"github.com/gosh-shell/gosh/core/environ"
)

// newTestSession builds a session with an in-memory filesystem and
// buffered streams.
func newTestSession() (*engine.Session, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	sess := &engine.Session{
		Env:    environ.New(),
		Fs:     afero.NewMemMapFs(),
		Dir:    "/home/test",
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	return sess, &stdout, &stderr
}

// stdio wires a builtin to the session's own streams, like the
// single-command fast path does.
func stdio(sess *engine.Session) engine.IO {
	return engine.IO{In: sess.Stdin, Out: sess.Stdout, Err: sess.Stderr}
}

// stdioTo redirects standard output elsewhere, like a pipeline stage.
func stdioTo(sess *engine.Session, out *bytes.Buffer) engine.IO {
	return engine.IO{In: sess.Stdin, Out: out, Err: sess.Stderr}
}

func runBuiltin(t *testing.T, sess *engine.Session, stdio engine.IO, argv ...string) int {
	t.Helper()

	handled, status := Registry{}.Run(sess, stdio, argv)
	require.True(t, handled, "%q should be a builtin", argv[0])
	return status
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Args  []string
	Setup func(sess *engine.Session)
}

// Run executes each case and compares the combined output against
// the golden file in testdata/golden/<TestName>/<case>.golden.
func (gts goldenTestSuite) Run(t *testing.T) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			sess, _, _ := newTestSession()
			if tc.Setup != nil {
				tc.Setup(sess)
			}

			var combined bytes.Buffer
			stdio := engine.IO{In: sess.Stdin, Out: &combined, Err: &combined}
			runBuiltin(t, sess, stdio, tc.Args...)

			g.Assert(t, tn, combined.Bytes())
		})
	}
}
