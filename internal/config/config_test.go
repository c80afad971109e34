package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StoreModeLocal, cfg.Store.Mode)
	assert.Equal(t, "data/bills.db", cfg.Database.Path)
	assert.Equal(t, 4, cfg.Review.BatchLimit)
	assert.Equal(t, 15*time.Second, cfg.Store.Timeout)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  port: 9090
  read_timeout: 5s
store:
  mode: remote
  remote_url: https://store.internal
  timeout: 3s
review:
  batch_limit: 8
logger:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, StoreModeRemote, cfg.Store.Mode)
	assert.Equal(t, "https://store.internal", cfg.Store.RemoteURL)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 8, cfg.Review.BatchLimit)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "server:\n  port: 9090\n")
	t.Setenv("BILL_SERVER_PORT", "7070")
	t.Setenv("BILL_STORE_MODE", "remote")
	t.Setenv("BILL_STORE_URL", "http://store:8080")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://store:8080", cfg.Store.RemoteURL)
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "BILL_REVIEW_BATCH_LIMIT=2\nBILL_DATABASE_PATH=/tmp/bills-test.db\n")
	// values already set in the environment win over the file
	t.Setenv("BILL_DATABASE_PATH", "/var/lib/bills.db")
	t.Cleanup(func() { _ = os.Unsetenv("BILL_REVIEW_BATCH_LIMIT") })

	cfg, err := Load("", envFile, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Review.BatchLimit)
	assert.Equal(t, "/var/lib/bills.db", cfg.Database.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Path: "bills.db"},
			Storage:  StorageConfig{ProofDir: "proofs", PublicBaseURL: "http://localhost:8080"},
			Store:    StoreConfig{Mode: StoreModeLocal},
			Review:   ReviewConfig{BatchLimit: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid local", mutate: func(c *Config) {}},
		{name: "valid remote", mutate: func(c *Config) { c.Store = StoreConfig{Mode: StoreModeRemote, RemoteURL: "http://store"} }},
		{name: "unknown mode", mutate: func(c *Config) { c.Store.Mode = "s3" }, wantErr: "store.mode"},
		{name: "remote without url", mutate: func(c *Config) { c.Store.Mode = StoreModeRemote }, wantErr: "store.remote_url"},
		{name: "local without database", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: "database.path"},
		{name: "local without proof dir", mutate: func(c *Config) { c.Storage.ProofDir = "" }, wantErr: "storage.proof_dir"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "bad batch limit", mutate: func(c *Config) { c.Review.BatchLimit = 0 }, wantErr: "review.batch_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
