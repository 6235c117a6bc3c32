package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osplugin.log")
	log, level, err := New(Options{Level: "warn", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", zap.String("instanceId", "inst-1"))
	level.SetLevel(zapcore.DebugLevel)
	log.Debug("now visible")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "inst-1", entry["instanceId"])
	assert.Equal(t, "warn", entry["level"])
	assert.Contains(t, lines[1], "now visible")
}
