package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSeedKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
welcome_msg: hello
api_version: "2.0.0"
features:
  beta: true
  regions: [eu, us]
retries: 3
`), 0o644))

	entries, err := LoadSeed(path)
	require.NoError(t, err)
	require.Equal(t, []string{"welcome_msg", "api_version", "features", "retries"}, keys(entries))
	require.JSONEq(t, `"hello"`, string(entries[0].Value))
	require.JSONEq(t, `"2.0.0"`, string(entries[1].Value))
	require.JSONEq(t, `{"beta":true,"regions":["eu","us"]}`, string(entries[2].Value))
	require.JSONEq(t, `3`, string(entries[3].Value))
}

func TestLoadSeedRejectsNonMapping(t *testing.T) {
	_, err := parseSeed([]byte("- a\n- b\n"))
	require.Error(t, err)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadSeedEmptyFile(t *testing.T) {
	entries, err := parseSeed(nil)
	require.NoError(t, err)
	require.Empty(t, entries)
}
