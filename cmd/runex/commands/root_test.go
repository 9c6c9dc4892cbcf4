package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageHandling(t *testing.T) {
	t.Run("no arguments", func(t *testing.T) {
		err := runExample(rootCmd, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUsage)
	})

	t.Run("-h", func(t *testing.T) {
		err := runExample(rootCmd, []string{"-h"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUsage)
	})

	t.Run("--help", func(t *testing.T) {
		err := runExample(rootCmd, []string{"--help", "org.apache.spark.examples.SparkPi"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUsage)
	})

	t.Run("--dry-run alone still needs an example", func(t *testing.T) {
		err := runExample(rootCmd, []string{"--dry-run"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUsage)
	})
}

func TestVersionFlag(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-08-26")
	err := runExample(rootCmd, []string{"--version"})
	assert.NoError(t, err)
	assert.Contains(t, rootCmd.Version, "1.2.3")
}
