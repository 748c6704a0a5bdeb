package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/notation"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NOTATION_LOG_LEVEL", "")
	t.Setenv("NOTATION_HISTORY_FILE", "")
	t.Setenv("NOTATION_HISTORY_DB", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "all_operations_log.txt", cfg.History.File)
	assert.Empty(t, cfg.History.Database)
	assert.Equal(t, notation.DefaultMaxLen, cfg.Engine.MaxLen)
	assert.False(t, cfg.Engine.Sqrt)
	require.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "notation.yaml")

	cfg := DefaultConfig()
	cfg.Logging.Level = "debug"
	cfg.History.Database = "history.db"
	cfg.Engine.Sqrt = true
	cfg.Engine.MaxLen = 80
	cfg.Display.Color = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_Missing(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Partial(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "notation.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  sqrt: true\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Engine.Sqrt)
	assert.Equal(t, notation.DefaultMaxLen, cfg.Engine.MaxLen)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	cases := []struct {
		name string
		data string
	}{
		{"syntax", "logging: [\n"},
		{"level", "logging:\n  level: loud\n"},
		{"format", "logging:\n  format: xml\n"},
		{"max-len", "engine:\n  max_len: 0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "notation.yaml")
			require.NoError(t, os.WriteFile(path, []byte(c.data), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("all", func(t *testing.T) {
		t.Setenv("NOTATION_LOG_LEVEL", "warn")
		t.Setenv("NOTATION_HISTORY_FILE", "/tmp/ops.txt")
		t.Setenv("NOTATION_HISTORY_DB", "/tmp/ops.db")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "/tmp/ops.txt", cfg.History.File)
		assert.Equal(t, "/tmp/ops.db", cfg.History.Database)
	})

	t.Run("empty keeps file values", func(t *testing.T) {
		clearEnv(t)
		cfg := &Config{History: HistoryConfig{File: "mine.txt"}}
		cfg.applyEnvOverrides()
		assert.Equal(t, "mine.txt", cfg.History.File)
	})

	t.Run("load applies overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NOTATION_LOG_LEVEL", "error")
		path := filepath.Join(t.TempDir(), "notation.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Logging.Level)
	})
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Sqrt = true
	cfg.Engine.MaxLen = 3
	opts := cfg.Options()
	require.NoError(t, notation.Validate("s9", opts...))
	assert.Error(t, notation.Validate("1+2+3", opts...))
}
