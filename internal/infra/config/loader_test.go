package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/aviniti/blueprint/internal/app/config"
)

func TestLoadSettingsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadSettings(dir)
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.ConfigSource)
	assert.Equal(t, filepath.Join(dir, ".blueprint"), cfg.Home)
	assert.Equal(t, appconfig.StorageLocal, cfg.Storage)
	assert.Equal(t, "warn", cfg.StderrLevel)
	assert.Equal(t, 750*time.Millisecond, cfg.BackgroundDelay)
	assert.Equal(t, filepath.Join(cfg.Home, "blueprint.db"), cfg.DBPath)
}

func TestLoadSettingsFromYAML(t *testing.T) {
	dir := t.TempDir()
	doc := []byte(`
home: /srv/blueprint
storage: s3
s3_bucket: blueprints-prod
s3_region: eu-west-1
stderr_level: debug
background_delay_ms: 100
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setting.yml"), doc, 0o644))

	cfg, err := LoadSettings(dir)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.ConfigSource)
	assert.Equal(t, "/srv/blueprint", cfg.Home)
	assert.Equal(t, appconfig.StorageS3, cfg.Storage)
	assert.Equal(t, "blueprints-prod", cfg.S3Bucket)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
	assert.Equal(t, "debug", cfg.StderrLevel)
	assert.Equal(t, 100*time.Millisecond, cfg.BackgroundDelay)
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BLUEPRINT_HOME", "/env/home")
	t.Setenv("BLUEPRINT_STDERR_LEVEL", "info")

	cfg, err := LoadSettings(dir)
	require.NoError(t, err)

	assert.Equal(t, "/env/home", cfg.Home)
	assert.Equal(t, "info", cfg.StderrLevel)
}

func TestLoadSettingsYAMLBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setting.yml"), []byte("home: /yaml/home\n"), 0o644))
	t.Setenv("BLUEPRINT_HOME", "/env/home")

	cfg, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "/yaml/home", cfg.Home)
}

func TestLoadSettingsRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setting.yml"), []byte("storage: ftp\n"), 0o644))
	_, err := LoadSettings(dir)
	assert.Error(t, err)

	dir2 := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir2, "setting.yml"), []byte("{invalid yaml"), 0o644))
	_, err = LoadSettings(dir2)
	assert.Error(t, err)
}
