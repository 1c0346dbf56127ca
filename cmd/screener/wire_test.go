package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/ai"
	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/config/file"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/services"
)

func configure(t *testing.T, home string, values map[string]any) {
	t.Helper()
	store, err := file.NewConfigStore(home)
	require.NoError(t, err)
	settings := services.NewSettingsService(store, ai.NewConfigValidator())
	for k, v := range values {
		require.NoError(t, settings.Set(k, v), k)
	}
}

func TestBuildApp_Defaults(t *testing.T) {
	home := t.TempDir()

	a, err := buildApp(context.Background(), home)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.services.Ingest)
	assert.NotNil(t, a.services.Query)
	assert.NotNil(t, a.services.Intent)
	assert.NotNil(t, a.services.Scheduling)
	assert.NotNil(t, a.services.Settings)
	assert.Len(t, a.services.Background, 2, "prompt watcher and session pruning")
	assert.DirExists(t, filepath.Join(home, "prompts"))
}

func TestBuildApp_IngestWithoutEmbedderFails(t *testing.T) {
	a, err := buildApp(context.Background(), t.TempDir())
	require.NoError(t, err)
	defer a.Close()

	_, err = a.services.Ingest.Ingest(context.Background(), "ws1", []domain.Candidate{{ID: "r1", Text: "Go developer"}})

	assert.Error(t, err)
}

func TestBuildApp_SQLite(t *testing.T) {
	home := t.TempDir()
	data := filepath.Join(home, "db")
	configure(t, home, map[string]any{
		"storage.backend": "sqlite",
		"storage.path":    data,
		"session.backend": "sqlite",
	})

	a, err := buildApp(context.Background(), home)
	require.NoError(t, err)
	defer a.Close()

	assert.FileExists(t, filepath.Join(data, "screener.db"))

	require.NoError(t, a.services.Query.StoreJobDescription(context.Background(), "ws1", "Go engineer"))
	assert.NoError(t, a.services.Query.ClearHistory(context.Background(), "ws1", "global"))
}

func TestBuildApp_RedisFallsBackToMemory(t *testing.T) {
	home := t.TempDir()
	configure(t, home, map[string]any{
		"session.backend": "redis",
		"redis.url":       "127.0.0.1:1",
	})

	a, err := buildApp(context.Background(), home)
	require.NoError(t, err)
	defer a.Close()

	turns, err := a.services.Query.History(context.Background(), "ws1", "global")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestBuildApp_InvalidSettings(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"),
		[]byte("[scheduler]\nwork_start = \"18:00\"\nwork_end = \"09:00\"\n"), 0o600))

	_, err := buildApp(context.Background(), home)

	assert.Error(t, err)
}

func TestResolveHome(t *testing.T) {
	dir, err := resolveHome("/tmp/custom")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", dir)

	dir, err = resolveHome("")
	require.NoError(t, err)
	assert.Equal(t, ".screener", filepath.Base(dir))
}
