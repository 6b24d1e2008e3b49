package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ThemeSystem, cfg.Theme)
	assert.Equal(t, LangEnglish, cfg.Language)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.False(t, cfg.AutoClean)
	assert.True(t, cfg.ConfirmDelete)
}

func TestTrashView(t *testing.T) {
	cfg := &Config{RetentionDays: 7, AutoClean: true}

	trash := cfg.Trash()
	assert.Equal(t, 7, trash.RetentionDays)
	assert.True(t, trash.AutoClean)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Theme = ThemeDark
	cfg.Language = LangChinese
	cfg.RetentionDays = 14
	cfg.AutoClean = true
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, loaded.Theme)
	assert.Equal(t, LangChinese, loaded.Language)
	assert.Equal(t, 14, loaded.RetentionDays)
	assert.True(t, loaded.AutoClean)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.RetentionDays)
}
