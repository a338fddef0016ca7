// Package config loads application settings from setting.yml with
// environment variable overrides
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aviniti/blueprint/internal/app/config"
)

// RawSettings mirrors the setting.yml structure. Pointer fields
// distinguish "absent" from "explicitly zero".
type RawSettings struct {
	Home *string `yaml:"home"`

	CatalogueEndpoint *string `yaml:"catalogue_endpoint"`
	CatalogueAPIKey   *string `yaml:"catalogue_api_key"`
	CatalogueModel    *string `yaml:"catalogue_model"`

	Storage  *string `yaml:"storage"`
	S3Bucket *string `yaml:"s3_bucket"`
	S3Prefix *string `yaml:"s3_prefix"`
	S3Region *string `yaml:"s3_region"`

	DBPath    *string `yaml:"db_path"`
	RulesPath *string `yaml:"rules_path"`

	StderrLevel       *string `yaml:"stderr_level"`
	BackgroundDelayMS *int    `yaml:"background_delay_ms"`
}

// LoadSettings resolves the application configuration.
// Priority: setting.yml > BLUEPRINT_* environment variables > defaults.
func LoadSettings(baseDir string) (*config.AppConfig, error) {
	settings := &RawSettings{}
	configSource := "default"
	settingPath := ""

	yamlPath := filepath.Join(baseDir, "setting.yml")
	if data, err := os.ReadFile(yamlPath); err == nil {
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse %s: %w", yamlPath, err)
		}
		configSource = "yaml"
		settingPath = yamlPath
	}

	applyEnv(settings)
	applyDefaults(settings, baseDir)

	cfg := &config.AppConfig{
		Home:              *settings.Home,
		CatalogueEndpoint: *settings.CatalogueEndpoint,
		CatalogueAPIKey:   *settings.CatalogueAPIKey,
		CatalogueModel:    *settings.CatalogueModel,
		Storage:           config.StorageBackend(*settings.Storage),
		S3Bucket:          *settings.S3Bucket,
		S3Prefix:          *settings.S3Prefix,
		S3Region:          *settings.S3Region,
		DBPath:            *settings.DBPath,
		RulesPath:         *settings.RulesPath,
		StderrLevel:       *settings.StderrLevel,
		BackgroundDelay:   time.Duration(*settings.BackgroundDelayMS) * time.Millisecond,
		ConfigSource:      configSource,
		SettingPath:       settingPath,
	}
	if cfg.Storage != config.StorageLocal && cfg.Storage != config.StorageS3 {
		return nil, fmt.Errorf("invalid storage backend %q (want local or s3)", cfg.Storage)
	}
	return cfg, nil
}

// applyEnv fills fields still unset from BLUEPRINT_* variables
func applyEnv(settings *RawSettings) {
	setStr := func(target **string, key string) {
		if *target == nil {
			if v := os.Getenv(key); v != "" {
				*target = &v
			}
		}
	}
	setStr(&settings.Home, "BLUEPRINT_HOME")
	setStr(&settings.CatalogueEndpoint, "BLUEPRINT_CATALOGUE_ENDPOINT")
	setStr(&settings.CatalogueAPIKey, "BLUEPRINT_CATALOGUE_API_KEY")
	setStr(&settings.CatalogueModel, "BLUEPRINT_CATALOGUE_MODEL")
	setStr(&settings.Storage, "BLUEPRINT_STORAGE")
	setStr(&settings.S3Bucket, "BLUEPRINT_S3_BUCKET")
	setStr(&settings.S3Prefix, "BLUEPRINT_S3_PREFIX")
	setStr(&settings.S3Region, "BLUEPRINT_S3_REGION")
	setStr(&settings.DBPath, "BLUEPRINT_DB_PATH")
	setStr(&settings.RulesPath, "BLUEPRINT_RULES_PATH")
	setStr(&settings.StderrLevel, "BLUEPRINT_STDERR_LEVEL")
}

func applyDefaults(settings *RawSettings, baseDir string) {
	def := func(target **string, v string) {
		if *target == nil {
			*target = &v
		}
	}
	def(&settings.Home, filepath.Join(baseDir, ".blueprint"))
	def(&settings.CatalogueEndpoint, "")
	def(&settings.CatalogueAPIKey, "")
	def(&settings.CatalogueModel, "")
	def(&settings.Storage, string(config.StorageLocal))
	def(&settings.S3Bucket, "")
	def(&settings.S3Prefix, "")
	def(&settings.S3Region, "")
	def(&settings.DBPath, filepath.Join(*settings.Home, "blueprint.db"))
	def(&settings.RulesPath, "")
	def(&settings.StderrLevel, "warn")
	if settings.BackgroundDelayMS == nil {
		v := 750
		settings.BackgroundDelayMS = &v
	}
}
