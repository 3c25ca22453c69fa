package database

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"farm-advisory/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.db")
	cfg := config.StorageConfig{Driver: config.DriverSQLite, Path: path, Namespace: "farm", Timeout: time.Second}

	backend, err := Open(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	require.NoError(t, backend.Repo.Put("farmSettings", `{"theme":"dark"}`))
	require.NoError(t, backend.Close())

	// a second open sees the data written by the first
	backend, err = Open(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	defer backend.Close()

	v, ok, err := backend.Repo.Get("farmSettings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"theme":"dark"}`, v)
}

func TestOpen_Memory(t *testing.T) {
	backend, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverMemory, Namespace: "farm"}, discardLogger())
	require.NoError(t, err)
	assert.NoError(t, backend.Close())

	require.NoError(t, backend.Repo.Put("k", "v"))
	keys, err := backend.Repo.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "mongo"}, discardLogger())
	assert.Error(t, err)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	cfg := config.StorageConfig{
		Driver:    config.DriverRedis,
		RedisAddr: "127.0.0.1:1",
		Namespace: "farm",
		Timeout:   500 * time.Millisecond,
	}
	_, err := Open(context.Background(), cfg, discardLogger())
	assert.Error(t, err)
}
