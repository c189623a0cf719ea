package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "json", cfg.Storage.Type)
	assert.Equal(t, 10*time.Second, cfg.Session.PendingTimeout)
	require.Len(t, cfg.Maps, 3)
	assert.Equal(t, MapConfig{ID: "map1", Name: "Green Plains", Width: 32, Height: 32, Terrain: "grass"}, cfg.Maps[0])
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	doc := `
server:
  host: 127.0.0.1
  port: "9000"
storage:
  type: postgres
session:
  pending_timeout: 250ms
maps:
  - id: arena
    width: 5
    height: 4
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, "postgres", cfg.Storage.Type)
	assert.Equal(t, 250*time.Millisecond, cfg.Session.PendingTimeout)
	assert.Equal(t, 5*time.Second, cfg.Session.AskTimeout)
	assert.Equal(t, []MapConfig{{ID: "arena", Name: "arena", Width: 5, Height: 4, Terrain: "grass"}}, cfg.Maps)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/cf")
	t.Setenv("DB_FILE", "other.json")
	t.Setenv("PENDING_TIMEOUT", "3")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Type)
	assert.Equal(t, "postgres://localhost/cf", cfg.Storage.DatabaseURL)
	assert.Equal(t, "other.json", cfg.Storage.File)
	assert.Equal(t, 3*time.Second, cfg.Session.PendingTimeout)

	t.Setenv("PENDING_TIMEOUT", "soon")
	assert.Error(t, cfg.ApplyEnv())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Maps = append(cfg.Maps, MapConfig{ID: "map1", Width: 2, Height: 2})
	assert.ErrorContains(t, cfg.Validate(), "duplicate")

	cfg = Default()
	cfg.Maps[0].Width = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Storage.Type = "mongo"
	assert.Error(t, cfg.Validate())
}
