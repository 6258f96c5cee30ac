package commands

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslimbs/internal/testutil"
)

// captureStdout runs fn while capturing os.Stdout and returns the output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() {
		_ = w.Close()
		os.Stdout = old
	}()

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String()
}

// withStdin replaces os.Stdin with content for the duration of fn.
func withStdin(t *testing.T, content string, fn func()) {
	t.Helper()
	path := testutil.WriteTempFile(t, "stdin.yaml", content)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	old := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = old }()
	fn()
}

func writePetstore(t *testing.T) string {
	t.Helper()
	return testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreYAML)
}
