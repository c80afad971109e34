package config

import (
	"github.com/garyjia/bill-review/internal/container"
)

// ToContainerConfig converts the application Config to a container.Config.
func (c *Config) ToContainerConfig() *container.Config {
	return &container.Config{
		Database: container.DatabaseConfig{
			Path:            c.Database.Path,
			MaxOpenConns:    c.Database.MaxOpenConns,
			MaxIdleConns:    c.Database.MaxIdleConns,
			ConnMaxLifetime: c.Database.ConnMaxLifetime,
		},
		Storage: container.StorageConfig{
			ProofDir:      c.Storage.ProofDir,
			PublicBaseURL: c.Storage.PublicBaseURL,
		},
		Store: container.StoreConfig{
			Mode:      c.Store.Mode,
			RemoteURL: c.Store.RemoteURL,
			Timeout:   c.Store.Timeout,
		},
		Server: container.ServerConfig{
			Host:           c.Server.Host,
			Port:           c.Server.Port,
			ReadTimeout:    c.Server.ReadTimeout,
			WriteTimeout:   c.Server.WriteTimeout,
			MaxUploadBytes: c.Server.MaxUploadBytes,
		},
		Review: container.ReviewConfig{
			BatchLimit: c.Review.BatchLimit,
		},
	}
}
