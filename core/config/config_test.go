package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "game", cfg.Convert.Bucket)
	assert.True(t, cfg.Convert.Norename)
	assert.False(t, cfg.Convert.KeepFullPath)
	assert.Zero(t, cfg.Batch.Workers)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CONVERT_EXCLUDE", "md5, sha256,")
	t.Setenv("BATCH_WORKERS", "4")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"md5", "sha256"}, cfg.Convert.ExcludeFields())
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestExcludeFieldsEmpty(t *testing.T) {
	assert.Nil(t, ConvertConfig{}.ExcludeFields())
}
