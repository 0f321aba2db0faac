package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Remote  RemoteConfig  `yaml:"remote"`
	Email   EmailConfig   `yaml:"email"`
	Sync    SyncConfig    `yaml:"sync"`
	Logging LoggingConfig `yaml:"logging"`
	App     AppConfig     `yaml:"app"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DataConfig holds the local store location
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// RemoteConfig holds the default remote store credentials. Credentials
// saved through the API override these.
type RemoteConfig struct {
	URL     string `yaml:"url"`
	AnonKey string `yaml:"anon_key"`
}

// EmailConfig holds the email provider identifiers used when the
// business settings carry none.
type EmailConfig struct {
	ServiceID  string `yaml:"service_id"`
	TemplateID string `yaml:"template_id"`
	PublicKey  string `yaml:"public_key"`
	FromName   string `yaml:"from_name"`
	ReplyTo    string `yaml:"reply_to"`
}

// SyncConfig holds sync tuning knobs
type SyncConfig struct {
	Debounce         time.Duration `yaml:"debounce"`
	BootstrapTimeout time.Duration `yaml:"bootstrap_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level            string `yaml:"level"`
	Format           string `yaml:"format"`
	Output           string `yaml:"output"`
	EnableCaller     bool   `yaml:"enable_caller"`
	EnableStackTrace bool   `yaml:"enable_stack_trace"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// Load reads and parses the configuration file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Data.Dir == "" {
		c.Data.Dir = "./data"
	}
	if c.Sync.Debounce <= 0 {
		c.Sync.Debounce = 1500 * time.Millisecond
	}
	if c.Sync.BootstrapTimeout <= 0 {
		c.Sync.BootstrapTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "SparkleSpace Organizing"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.Data.Dir == "" {
		return fmt.Errorf("data dir is required")
	}

	// Remote credentials may legitimately be empty: the app then runs
	// local-only until credentials arrive through the API.
	if (c.Remote.URL == "") != (c.Remote.AnonKey == "") {
		return fmt.Errorf("remote url and anon_key must be set together")
	}

	if c.Sync.Debounce < 100*time.Millisecond {
		return fmt.Errorf("sync debounce must be at least 100ms")
	}

	return nil
}
