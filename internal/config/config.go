package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Store modes
const (
	StoreModeLocal  = "local"
	StoreModeRemote = "remote"
)

// EnvPrefix prefixes every environment override, e.g. BILL_SERVER_PORT
const EnvPrefix = "BILL"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Store    StoreConfig    `mapstructure:"store"`
	Review   ReviewConfig   `mapstructure:"review"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// StorageConfig holds proof file storage configuration
type StorageConfig struct {
	ProofDir      string `mapstructure:"proof_dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// StoreConfig selects the bill store: the embedded sqlite store or a remote store API
type StoreConfig struct {
	Mode      string        `mapstructure:"mode"`
	RemoteURL string        `mapstructure:"remote_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ReviewConfig holds admin review configuration
type ReviewConfig struct {
	BatchLimit int `mapstructure:"batch_limit"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads the optional .env file, then the yaml file at configPath, then environment overrides.
// An empty configPath uses defaults and environment only.
func Load(configPath string, envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	bindEnvVars(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFiles exports the variables of each file without overriding the environment; missing files are skipped
func loadEnvFiles(files []string) error {
	for _, file := range files {
		if err := gotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.max_upload_bytes", 10<<20)

	v.SetDefault("database.path", "data/bills.db")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 0)

	v.SetDefault("storage.proof_dir", "data/proofs")
	v.SetDefault("storage.public_base_url", "http://localhost:8080")

	v.SetDefault("store.mode", StoreModeLocal)
	v.SetDefault("store.timeout", 15*time.Second)

	v.SetDefault("review.batch_limit", 4)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars maps every key to BILL_<SECTION>_<KEY>
func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// short aliases used by deployment scripts
	_ = v.BindEnv("store.remote_url", EnvPrefix+"_STORE_REMOTE_URL", "BILL_STORE_URL")
	_ = v.BindEnv("logger.level", EnvPrefix+"_LOGGER_LEVEL", "LOG_LEVEL")
}

// Validate checks mode specific requirements
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Review.BatchLimit < 1 {
		return fmt.Errorf("review.batch_limit must be at least 1")
	}

	switch c.Store.Mode {
	case StoreModeLocal:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required in local store mode")
		}
		if c.Storage.ProofDir == "" {
			return fmt.Errorf("storage.proof_dir is required in local store mode")
		}
		if _, err := url.ParseRequestURI(c.Storage.PublicBaseURL); err != nil {
			return fmt.Errorf("storage.public_base_url is invalid: %w", err)
		}
	case StoreModeRemote:
		u, err := url.ParseRequestURI(c.Store.RemoteURL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("store.remote_url must be an absolute URL in remote store mode")
		}
	default:
		return fmt.Errorf("store.mode must be %q or %q, got %q", StoreModeLocal, StoreModeRemote, c.Store.Mode)
	}

	return nil
}
