package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/dinebot/pkg/dinebot/internalerr"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Zero(t, cfg.Engine.SimilarityThreshold)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dinebot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 0.0.0.0
  port: 9000
  shutdown_timeout: 3s
logging:
  level: debug
  format: console
engine:
  similarity_threshold: 0.75
data:
  menu_path: /srv/menu.yaml
  db_path: /srv/dinebot.db
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr())
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.InDelta(t, 0.75, cfg.Engine.SimilarityThreshold, 1e-9)
	assert.Equal(t, "/srv/menu.yaml", cfg.Data.MenuPath)
	assert.Equal(t, "/srv/dinebot.db", cfg.Data.DBPath)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("DINEBOT_SERVER_PORT", "9191")
	t.Setenv("DINEBOT_DATA_DB_PATH", "/tmp/env.db")
	t.Setenv("DINEBOT_ENGINE_SIMILARITY_THRESHOLD", "0.8")

	cfg, err := load([]byte("server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "/tmp/env.db", cfg.Data.DBPath)
	assert.InDelta(t, 0.8, cfg.Engine.SimilarityThreshold, 1e-9)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("DINEBOT_SERVER_PORT"))
	assert.Equal(t, "data.restaurant_path", envKey("DINEBOT_DATA_RESTAURANT_PATH"))
	assert.Equal(t, "debug", envKey("DINEBOT_DEBUG"))
}

func TestValidate(t *testing.T) {
	tests := map[string]string{
		"port":      "server:\n  port: 70000\n",
		"format":    "logging:\n  format: xml\n",
		"threshold": "engine:\n  similarity_threshold: 1.5\n",
		"malformed": "server: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := load([]byte(doc))
			assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
