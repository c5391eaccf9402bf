package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4, cfg.Journal.Quota)
	assert.Equal(t, 8, cfg.Journal.OfferedTopics)
	assert.Len(t, cfg.Spirit.Animals, 4)
	assert.Equal(t, []string{"execution", "strategy", "resilience", "connection"}, cfg.Spirit.Traits)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Journal.Quota, cfg.Journal.Quota)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Journal.Quota = 6
	cfg.Spirit.Model = "gemini-2.0-flash"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.Journal.Quota)
	assert.Equal(t, "gemini-2.0-flash", loaded.Spirit.Model)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("GEMINI_API_KEY sets the spirit key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "test-key", cfg.Spirit.APIKey)
	})

	t.Run("LANTERN_DATA_DIR overrides the data dir", func(t *testing.T) {
		t.Setenv("LANTERN_DATA_DIR", "/tmp/lantern-test")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "/tmp/lantern-test", cfg.Data.Dir)
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects zero quota", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Journal.Quota = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects empty animal enumeration", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Spirit.Animals = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects duplicate animals", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Spirit.Animals = append(cfg.Spirit.Animals, cfg.Spirit.Animals[0])
		assert.Error(t, cfg.Validate())
	})
}

func TestFindAnimal(t *testing.T) {
	cfg := DefaultConfig()

	spec, ok := cfg.FindAnimal("Owl")
	require.True(t, ok)
	assert.Equal(t, "The Big Picture", spec.Title)

	_, ok = cfg.FindAnimal("Dragon")
	assert.False(t, ok)
}

func TestGetImageTimeoutFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Export.ImageTimeout = "not-a-duration"
	assert.Equal(t, DefaultConfig().GetImageTimeout(), cfg.GetImageTimeout())
}
