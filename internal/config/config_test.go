package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				// Verify some key fields are populated
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "./data", cfg.Data.Dir)
				assert.Equal(t, "https://demo.supabase.co", cfg.Remote.URL)
				assert.Equal(t, "service_demo", cfg.Email.ServiceID)
				assert.Equal(t, 1500*time.Millisecond, cfg.Sync.Debounce)
				assert.Equal(t, "sparkle-server", cfg.App.Name)
			}
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load("testdata/minimal_config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, 1500*time.Millisecond, cfg.Sync.Debounce)
	assert.Equal(t, 10*time.Second, cfg.Sync.BootstrapTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "SparkleSpace Organizing", cfg.Email.FromName)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			Data:   DataConfig{Dir: "./data"},
			Remote: RemoteConfig{
				URL:     "https://demo.supabase.co",
				AnonKey: "anon-key",
			},
			Sync: SyncConfig{Debounce: 1500 * time.Millisecond},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name: "remote credentials may both be empty",
			mutate: func(c *Config) {
				c.Remote = RemoteConfig{}
			},
		},
		{
			name: "invalid server port",
			mutate: func(c *Config) {
				c.Server.Port = 0
			},
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name: "missing data dir",
			mutate: func(c *Config) {
				c.Data.Dir = ""
			},
			wantErr:   true,
			errString: "data dir is required",
		},
		{
			name: "remote url without anon key",
			mutate: func(c *Config) {
				c.Remote.AnonKey = ""
			},
			wantErr:   true,
			errString: "must be set together",
		},
		{
			name: "debounce too short",
			mutate: func(c *Config) {
				c.Sync.Debounce = 10 * time.Millisecond
			},
			wantErr:   true,
			errString: "debounce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
