package cli

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	prev := version
	version = v
	t.Cleanup(func() { version = prev })
}

func TestVersion(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	withVersion(t, "1.4.0")

	out, err := execute("version")

	require.NoError(t, err)
	assert.Contains(t, out, "screener version 1.4.0")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersion_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	withVersion(t, "dev")

	out, err := execute("version", "--json")
	require.NoError(t, err)

	var info buildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, runtime.Version(), info.Go)
}

func TestVersion_RejectsArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("version", "extra")
	assert.Error(t, err)
}
