package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalYAML = `
port: 9000
env: development
media:
  backend: cloudinary
  cloudinary:
    cloud_name: demo
    api_key: key
    api_secret: secret
`

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, MediaBackendCloudinary, cfg.Media.Backend)
	assert.Equal(t, "demo", cfg.Media.Cloudinary.CloudName)
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("PORT", "8123")
	t.Setenv("MEDIA_BACKEND", "cloudinary")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "envcloud")
	t.Setenv("CLOUDINARY_API_KEY", "k")
	t.Setenv("CLOUDINARY_API_SECRET", "s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "envcloud", cfg.Media.Cloudinary.CloudName)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "override")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Port)
	assert.Equal(t, "override", cfg.Media.Cloudinary.CloudName)
}

func TestLoadRejectsIncompleteMedia(t *testing.T) {
	_, err := Load(writeConfig(t, "media:\n  backend: cloudinary\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "media:\n  backend: dropbox\n"))
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db.internal", User: "trust", Password: "pw", Name: "trust_site"}
	dsn := db.DSNValue()
	assert.Contains(t, dsn, "trust:pw@tcp(db.internal:")
	assert.Contains(t, dsn, "/trust_site?")

	explicit := DatabaseConfig{DSN: "user:pass@tcp(1.2.3.4:3306)/x"}
	assert.Equal(t, "user:pass@tcp(1.2.3.4:3306)/x", explicit.DSNValue())
}
