package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winmenu.log")
	log, closer, err := New(path, false)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("component", "menu").Msg("settings saved")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "menu", entry["component"])
	assert.Equal(t, "settings saved", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewBadPath(t *testing.T) {
	_, closer, err := New(filepath.Join(t.TempDir(), "missing", "x.log"), true)
	assert.Error(t, err)
	assert.NoError(t, closer.Close())
}
