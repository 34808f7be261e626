package store

import (
	"context"
	"path/filepath"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/recordkit/recordsvc/internal/config"
	"github.com/stretchr/testify/require"
)

func TestFactory_FileBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Store: config.StoreConfig{Backend: config.BackendFile, DataDir: dir}}
	f, err := NewFactory(context.Background(), cfg)
	require.NoError(t, err)
	defer f.Close(context.Background())

	b := f.Backend("configs")
	ib, ok := b.(*InstrumentedBackend)
	require.True(t, ok)
	fb, ok := ib.Unwrap().(*FileBackend)
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "configs.json"), fb.Path())
}

func TestFactory_MemoryBackendIsShared(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: config.BackendMemory}}
	f, err := NewFactory(context.Background(), cfg)
	require.NoError(t, err)

	a := f.Backend("users").(*InstrumentedBackend).Unwrap()
	b := f.Backend("users").(*InstrumentedBackend).Unwrap()
	require.Same(t, a, b)
	require.NotSame(t, a, f.Backend("configs").(*InstrumentedBackend).Unwrap())
}

func TestFactory_RedisBackend(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	cfg := &config.Config{
		Store: config.StoreConfig{Backend: config.BackendRedis},
		Redis: config.RedisConfig{Host: m.Host(), Port: m.Port(), KeyPrefix: "doc:"},
	}
	ctx := context.Background()
	f, err := NewFactory(ctx, cfg)
	require.NoError(t, err)
	defer f.Close(ctx)

	b := f.Backend("configs")
	require.NoError(t, b.Write(ctx, []byte(`{}`)))
	require.True(t, m.Exists("doc:configs"))
}

func TestFactory_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "etcd"}}
	_, err := NewFactory(context.Background(), cfg)
	require.Error(t, err)
}
