package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, "info", "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("query answered", zap.String("intent", "greeting"))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "query answered", entry["msg"])
	assert.Equal(t, "greeting", entry["intent"])
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, "debug", "console")
	require.NoError(t, err)

	logger.Debug("seeded", zap.Int("items", 18))
	assert.Contains(t, buf.String(), "seeded")
	assert.Contains(t, buf.String(), `{"items": 18}`)
}

func TestInvalidLevel(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)

	_, err = NewWriter(&bytes.Buffer{}, "loud", "console")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	logger, err := New("warn", "console")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}
