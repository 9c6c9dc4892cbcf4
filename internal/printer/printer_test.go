package printer

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr runs fn with os.Stderr redirected to a pipe and returns what
// was written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()

	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})

	t.Run("single suggestion stands alone", func(t *testing.T) {
		out := captureStderr(t, func() {
			_ = Error("Test Error", "Explanation", []string{"Try this fix"})
		})
		assert.Contains(t, out, "Try this fix")
		assert.NotContains(t, out, "Either:")
	})

	t.Run("multiple suggestions become a numbered list", func(t *testing.T) {
		out := captureStderr(t, func() {
			_ = Error("Test Error", "Explanation", []string{"First option", "Second option"})
		})
		assert.Contains(t, out, "Either:")
		assert.Contains(t, out, "1. First option")
		assert.Contains(t, out, "2. Second option")
	})
}

func TestErrorWithContext(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		context := map[string]string{"Searched": "/checkout"}
		err := ErrorWithContext("Test Error", "Explanation", context, []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})

	t.Run("suggestions format like Error's", func(t *testing.T) {
		context := map[string]string{"Module": "/checkout/streaming-kafka"}
		out := captureStderr(t, func() {
			_ = ErrorWithContext("Test Error", "Explanation", context, []string{"First option", "Second option"})
		})
		assert.Contains(t, out, "Module: /checkout/streaming-kafka")
		assert.Contains(t, out, "Either:")
		assert.Contains(t, out, "1. First option")
		assert.Contains(t, out, "2. Second option")
	})
}

// Note: Error and ErrorWithContext print the formatted output to stderr with
// colors; the returned error only carries the title for Cobra's handling.
