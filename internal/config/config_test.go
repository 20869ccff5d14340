package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Attack.MaxLength)
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[attack]
algorithm = "sha1"
markov = true
max-length = 20
walk-lengths = [3, 4]

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Attack.Algorithm)
	assert.Equal(t, "sha1", *cfg.Attack.Algorithm)
	require.NotNil(t, cfg.Attack.Markov)
	assert.True(t, *cfg.Attack.Markov)
	assert.Equal(t, 20, *cfg.Attack.MaxLength)
	assert.Equal(t, []int{3, 4}, cfg.Attack.WalkLengths)
	assert.Nil(t, cfg.Attack.Variations)
	assert.Equal(t, "debug", *cfg.Log.Level)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[attack]\nturbo = true\n"), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	assert.Equal(t, filepath.Join("/cfg", "crackle", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "crackle", "crackle.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/state", "crackle", "crackle.log"), DefaultLogPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "words.txt"), ExpandPath("~/words.txt"))
	assert.Equal(t, "/abs/words.txt", ExpandPath("/abs/words.txt"))
}
