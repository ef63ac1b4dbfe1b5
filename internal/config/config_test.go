package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/decrypter/internal/vigenere"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decrypter.yaml")
	data := []byte("input: message.txt\nkey: lemon\nstrict: true\nworkers: 4\nlogging:\n  level: debug\n  json: true\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "message.txt", cfg.Input)
	assert.Equal(t, "lemon", cfg.Key)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1, 2"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "decrypter.yaml")

	cfg := DefaultConfig()
	cfg.Archive = "out.huf"
	cfg.Seed = 7
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("DECRYPTER_INPUT", "env.txt")
		t.Setenv("DECRYPTER_KEY", "Secret")
		t.Setenv("DECRYPTER_STRICT", "true")
		t.Setenv("DECRYPTER_WORKERS", "3")
		t.Setenv("DECRYPTER_LOG_LEVEL", "WARN")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "env.txt", cfg.Input)
		assert.Equal(t, "Secret", cfg.Key)
		assert.True(t, cfg.Strict)
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("bad boolean", func(t *testing.T) {
		t.Setenv("DECRYPTER_STRICT", "sometimes")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad integer", func(t *testing.T) {
		t.Setenv("DECRYPTER_WORKERS", "many")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Key = "not a key"
	assert.ErrorIs(t, cfg.Validate(), vigenere.ErrInvalidKey)

	cfg = DefaultConfig()
	cfg.Workers = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Input = ""
	assert.Error(t, cfg.Validate())
}
