package buildtool

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	output string
	err    error

	dir  string
	name string
	args []string
}

func (f *fakeRunner) Run(dir string, name string, args ...string) ([]byte, error) {
	f.dir = dir
	f.name = name
	f.args = args
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.output), nil
}

func TestQuery(t *testing.T) {
	t.Run("takes the last non-log line", func(t *testing.T) {
		runner := &fakeRunner{output: "[INFO] Scanning for projects...\n" +
			"[INFO] --- maven-help-plugin:3.2.0:evaluate ---\n" +
			"Downloading from central: https://repo.maven.apache.org/...\n" +
			"2.3.0-SNAPSHOT\n" +
			"[INFO] BUILD SUCCESS\n"}
		q := &Querier{Tool: "mvn", Runner: runner}

		value, err := q.Query("/checkout/streaming-kafka", "project.version")
		require.NoError(t, err)
		assert.Equal(t, "2.3.0-SNAPSHOT", value)

		assert.Equal(t, "/checkout/streaming-kafka", runner.dir)
		assert.Equal(t, "mvn", runner.name)
		assert.Equal(t, []string{"help:evaluate", "-Dexpression=project.version"}, runner.args)
	})

	t.Run("later value lines override earlier ones", func(t *testing.T) {
		runner := &fakeRunner{output: "2.11\n2.12\n"}
		q := &Querier{Tool: "mvn", Runner: runner}

		value, err := q.Query(".", "scala.binary.version")
		require.NoError(t, err)
		assert.Equal(t, "2.12", value)
	})

	t.Run("log-only output is unavailable", func(t *testing.T) {
		runner := &fakeRunner{output: "[INFO] Scanning for projects...\n[INFO] BUILD SUCCESS\n"}
		q := &Querier{Tool: "mvn", Runner: runner}

		_, err := q.Query(".", "project.version")
		require.Error(t, err)
		assert.True(t, IsUnavailable(err))
		assert.Contains(t, err.Error(), "project.version")
	})

	t.Run("undefined property is unavailable", func(t *testing.T) {
		runner := &fakeRunner{output: "null object or invalid expression\n"}
		q := &Querier{Tool: "mvn", Runner: runner}

		_, err := q.Query(".", "no.such.property")
		require.Error(t, err)
		assert.True(t, IsUnavailable(err))
	})

	t.Run("bare null is unavailable", func(t *testing.T) {
		runner := &fakeRunner{output: "null\n"}
		q := &Querier{Tool: "mvn", Runner: runner}

		_, err := q.Query(".", "project.version")
		require.Error(t, err)
		assert.True(t, IsUnavailable(err))
	})

	t.Run("empty output is unavailable", func(t *testing.T) {
		runner := &fakeRunner{output: ""}
		q := &Querier{Tool: "mvn", Runner: runner}

		_, err := q.Query(".", "project.version")
		require.Error(t, err)
		assert.True(t, IsUnavailable(err))
	})

	t.Run("runner failure propagates", func(t *testing.T) {
		runner := &fakeRunner{err: fmt.Errorf("mvn failed: exit status 1")}
		q := &Querier{Tool: "mvn", Runner: runner}

		_, err := q.Query(".", "project.version")
		require.Error(t, err)
		assert.False(t, IsUnavailable(err))
		assert.Contains(t, err.Error(), "exit status 1")
	})
}
