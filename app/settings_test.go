package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reloadEnabled(env *testEnv) bool {
	file := env.builder.Popup("File")
	return env.native.IsEnabled(file, 1)
}

func TestSettingsRestoreMissingFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.Restore())
	assert.False(t, reloadEnabled(env))
}

func TestSettingsStoreAndRestore(t *testing.T) {
	env := newTestEnv(t)
	env.dispatch(t, ITEM_SHOW_INFO)
	env.dispatch(t, ITEM_TOP_MOST)
	require.NoError(t, env.settings.Store(true))
	assert.True(t, reloadEnabled(env))

	data, err := os.ReadFile(filepath.Join(env.dir, "test.ini"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Show info=0")
	assert.Contains(t, string(data), "Always on top=1")
	assert.Contains(t, string(data), "Remote control=1")

	other := newTestEnv(t)
	fresh := NewSettings(other.host, filepath.Join(env.dir, "test.ini"), zerolog.Nop())
	fresh.reg = other.reg
	require.NoError(t, fresh.Restore())

	assert.False(t, other.display.ShowInfo)
	assert.True(t, other.display.TopMost)
	assert.True(t, other.host.topMost)
	assert.Empty(t, other.host.info)
}

func TestSettingsMenuSaveDeclinesOverwrite(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "test.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Menu]\nShow info=0\n"), 0644))

	env.dispatch(t, ITEM_SAVE)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[Menu]\nShow info=0\n", string(data))
}

func TestSettingsMenuReload(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, "test.ini"), []byte("[Menu]\nShow info=0\n"), 0644))
	env.dispatch(t, ITEM_RELOAD)
	assert.False(t, env.display.ShowInfo)
	assert.Equal(t, []string{"Settings reloaded"}, env.host.notes)
}

func TestSettingsMenuReloadBadPath(t *testing.T) {
	env := newTestEnv(t)
	env.settings.name = "settings.txt"
	env.dispatch(t, ITEM_RELOAD)
	require.Len(t, env.host.alerts, 1)
	assert.Contains(t, env.host.alerts[0], "not an initialization file")
}

func TestSettingsCopy(t *testing.T) {
	env := newTestEnv(t)
	env.dispatch(t, ITEM_COPY)
	assert.Contains(t, env.host.clipboard, "[Menu]")
	assert.Contains(t, env.host.clipboard, "Show info=1")
	assert.NotContains(t, env.host.clipboard, ITEM_SAVE)
}

func TestSettingsWithoutMenu(t *testing.T) {
	s := NewSettings(&fakeHost{}, "x", zerolog.Nop())
	assert.Error(t, s.Restore())
	assert.Error(t, s.Store(true))
	_, err := s.Snapshot()
	assert.Error(t, err)
}
