// Package config defines the application configuration model
package config

import "time"

// StorageBackend selects where rendered blueprints are uploaded
type StorageBackend string

const (
	StorageLocal StorageBackend = "local"
	StorageS3    StorageBackend = "s3"
)

// AppConfig is the resolved application configuration. Values come from
// setting.yml, then BLUEPRINT_* environment variables, then defaults.
type AppConfig struct {
	// Home is the base directory for local state (session slot, local
	// blueprint store, database)
	Home string

	// Catalogue analysis service
	CatalogueEndpoint string
	CatalogueAPIKey   string
	CatalogueModel    string

	// Blueprint storage
	Storage  StorageBackend
	S3Bucket string
	S3Prefix string
	S3Region string

	// DBPath is the SQLite database for intake records; empty disables them
	DBPath string

	// RulesPath optionally replaces the built-in dependency rules
	RulesPath string

	// StderrLevel controls log verbosity: off, error, warn, info, debug
	StderrLevel string

	// BackgroundDelay is the pause before the speculative report render
	BackgroundDelay time.Duration

	// ConfigSource records where the settings came from: "yaml" or "default"
	ConfigSource string
	SettingPath  string
}
