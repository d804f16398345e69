package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaultGraphMaxSessions, cfg.Graph.MaxConnections)
	assert.Equal(t, defaultProgressInterval, cfg.Graph.ProgressInterval)
	assert.Equal(t, defaultArrowPort, cfg.Arrow.Port)
	assert.True(t, cfg.Arrow.TLS)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.ErrorIs(t, cfg.Validate(), ErrNoEndpoint)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("GRAPH_URI", "neo4j://localhost:7687")
	t.Setenv("GRAPH_USERNAME", "neo4j")
	t.Setenv("GRAPH_MAX_CONNECTIONS", "4")
	t.Setenv("ARROW_HOST", "session.example.com")
	t.Setenv("ARROW_TLS", "false")
	t.Setenv("ARROW_POLL_INTERVAL", "1s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "neo4j://localhost:7687", cfg.Graph.URI)
	assert.Equal(t, "neo4j", cfg.Graph.Username)
	assert.Equal(t, 4, cfg.Graph.MaxConnections)
	assert.Equal(t, "session.example.com", cfg.Arrow.Host)
	assert.False(t, cfg.Arrow.TLS)
	assert.Equal(t, time.Second, cfg.Arrow.PollInterval)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileWithEnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdsctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
graph:
  uri: neo4j://file:7687
  database: analytics
arrow:
  host: file-host
  port: 9000
logging:
  level: debug
`), 0o600))
	t.Setenv("GRAPH_DATABASE", "override")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "neo4j://file:7687", cfg.Graph.URI)
	assert.Equal(t, "override", cfg.Graph.Database)
	assert.Equal(t, 9000, cfg.Arrow.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{Arrow: ArrowConfig{Host: "h", Port: 70000}}
	assert.ErrorContains(t, cfg.Validate(), "out of range")

	cfg = Config{Graph: GraphConfig{URI: "neo4j://x"}, Logging: LoggingConfig{Format: "xml"}}
	assert.ErrorContains(t, cfg.Validate(), "logging format")

	cfg = Config{Graph: GraphConfig{URI: "neo4j://x", MaxConnections: -1}}
	assert.Error(t, cfg.Validate())
}
