// Package container provides dependency injection and lifecycle management
// for the bill review service.
package container

import (
	"fmt"
	"time"
)

// Store modes
const (
	StoreModeLocal  = "local"
	StoreModeRemote = "remote"
)

// Config holds all configuration for the Container.
type Config struct {
	Database DatabaseConfig
	Storage  StorageConfig
	Store    StoreConfig
	Server   ServerConfig
	Review   ReviewConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Path to SQLite database file
	Path string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// StorageConfig holds proof file storage settings.
type StorageConfig struct {
	// ProofDir is the base directory for uploaded proof images
	ProofDir string

	// PublicBaseURL prefixes the fileUrl returned by the local store
	PublicBaseURL string
}

// StoreConfig selects which bill store the services talk to.
type StoreConfig struct {
	// Mode is "local" (sqlite + filesystem, store API served here) or "remote"
	Mode string

	// RemoteURL is the base URL of the remote store API
	RemoteURL string

	// Timeout for remote store calls
	Timeout time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
}

// ReviewConfig holds admin review settings.
type ReviewConfig struct {
	// BatchLimit bounds concurrent store updates of a batch decision
	BatchLimit int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:            "data/bills.db",
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: 0,
		},
		Storage: StorageConfig{
			ProofDir:      "data/proofs",
			PublicBaseURL: "http://localhost:8080",
		},
		Store: StoreConfig{
			Mode:    StoreModeLocal,
			Timeout: 15 * time.Second,
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxUploadBytes: 10 << 20,
		},
		Review: ReviewConfig{
			BatchLimit: 4,
		},
	}
}

// IsLocal reports whether this process hosts the bill store.
func (c *Config) IsLocal() bool {
	return c.Store.Mode == StoreModeLocal
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	// history is kept in the local database in both modes
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	switch c.Store.Mode {
	case StoreModeLocal:
		if c.Storage.ProofDir == "" {
			return fmt.Errorf("proof directory is required")
		}
		if c.Storage.PublicBaseURL == "" {
			return fmt.Errorf("public base URL is required")
		}
	case StoreModeRemote:
		if c.Store.RemoteURL == "" {
			return fmt.Errorf("remote store URL is required")
		}
	default:
		return fmt.Errorf("unknown store mode %q", c.Store.Mode)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Review.BatchLimit < 1 {
		return fmt.Errorf("review batch limit must be at least 1")
	}

	return nil
}
