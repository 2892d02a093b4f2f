package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLoadDefaults checks the built-in defaults when neither file nor
// environment provide values.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "touchbase", cfg.DBName)
}

// TestLoadEnvOverrides checks that environment variables beat the defaults.
func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("DBHOST", "db.internal:3306")
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "db.internal:3306", cfg.DBHost)
}

// TestLoadYAMLOverridesEnv checks that a config file overlays both defaults
// and environment values.
func TestLoadYAMLOverridesEnv(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("addr: \":7070\"\njwt_secret: filesecret\n"), 0o600)
	assert.NoError(t, err)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "filesecret", cfg.JWTSecret)
	// Untouched keys keep their env/default values.
	assert.Equal(t, "touchbase", cfg.DBName)
}

// TestLoadMissingFile checks that a bad path is reported instead of silently
// ignored.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
