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
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "interniq_db", cfg.Database.Database)
				assert.True(t, cfg.RabbitMQ.Enabled)
				assert.Equal(t, "interniq.events", cfg.RabbitMQ.Exchange.Name)
				assert.Equal(t, "interniq.activity", cfg.RabbitMQ.Queue.Name)
				assert.Equal(t, "interniq-api", cfg.App.Name)
				assert.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL)
				assert.Equal(t, 3, cfg.Tracker.IncrementRetries)
				assert.Equal(t, 50*time.Millisecond, cfg.Tracker.IncrementBackoff)
				assert.Equal(t, 32, cfg.Worker.MaxJobs)
			}
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("INTERNIQ_SERVER_PORT", "9090")
	t.Setenv("INTERNIQ_DATABASE_HOST", "db.internal")
	t.Setenv("INTERNIQ_DATABASE_NAME", "tracker")
	t.Setenv("INTERNIQ_JWT_SECRET", "override-secret-value")
	t.Setenv("INTERNIQ_RABBITMQ_ENABLED", "false")
	t.Setenv("INTERNIQ_TOKEN_TTL", "1h")
	t.Setenv("INTERNIQ_ALLOWED_ORIGINS", "https://a.interniq.dev,https://b.interniq.dev")

	cfg, err := Load("testdata/valid_config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "tracker", cfg.Database.Database)
	assert.Equal(t, "override-secret-value", cfg.Auth.JWTSecret)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://a.interniq.dev", "https://b.interniq.dev"}, cfg.Server.AllowedOrigins)

	// Untouched values keep their file settings
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "interniq.events", cfg.RabbitMQ.Exchange.Name)
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	t.Setenv("INTERNIQ_SERVER_PORT", "not-a-number")

	cfg, err := Load("testdata/valid_config.yaml")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to apply environment overrides")
}

// validAPIConfig returns a config that passes ValidateAPIConfig
func validAPIConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "interniq_db",
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:  true,
			Host:     "localhost",
			Port:     5672,
			Exchange: ExchangeConfig{Name: "interniq.events"},
			Queue:    QueueConfig{Name: "interniq.activity"},
		},
		Auth: AuthConfig{JWTSecret: "local-development-secret"},
		Worker: WorkerConfig{
			Concurrency:     2,
			MaxJobs:         10,
			JobTimeout:      time.Second,
			ShutdownTimeout: time.Second,
		},
	}
}

func TestConfig_ValidateAPIConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		errString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "sqlite with path",
			mutate: func(c *Config) { c.Database = DatabaseConfig{Driver: "sqlite", Path: "interniq.db"} },
		},
		{
			name:   "rabbitmq disabled skips its checks",
			mutate: func(c *Config) { c.RabbitMQ = RabbitMQConfig{} },
		},
		{
			name:      "invalid server port - too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			errString: "invalid server port",
		},
		{
			name:      "empty database host",
			mutate:    func(c *Config) { c.Database.Host = "" },
			errString: "database host is required",
		},
		{
			name:      "empty database name",
			mutate:    func(c *Config) { c.Database.Database = "" },
			errString: "database name is required",
		},
		{
			name:      "invalid database port",
			mutate:    func(c *Config) { c.Database.Port = 0 },
			errString: "invalid database port",
		},
		{
			name:      "sqlite without path",
			mutate:    func(c *Config) { c.Database = DatabaseConfig{Driver: "sqlite"} },
			errString: "database path is required for sqlite",
		},
		{
			name:      "unsupported driver",
			mutate:    func(c *Config) { c.Database.Driver = "mysql" },
			errString: "unsupported database driver",
		},
		{
			name:      "empty rabbitmq host",
			mutate:    func(c *Config) { c.RabbitMQ.Host = "" },
			errString: "rabbitmq host is required",
		},
		{
			name:      "empty exchange name",
			mutate:    func(c *Config) { c.RabbitMQ.Exchange.Name = "" },
			errString: "rabbitmq exchange name is required",
		},
		{
			name:      "empty queue name",
			mutate:    func(c *Config) { c.RabbitMQ.Queue.Name = "" },
			errString: "rabbitmq queue name is required",
		},
		{
			name:      "short jwt secret",
			mutate:    func(c *Config) { c.Auth.JWTSecret = "short" },
			errString: "jwt_secret must be at least 16 characters",
		},
		{
			name:      "negative increment retries",
			mutate:    func(c *Config) { c.Tracker.IncrementRetries = -1 },
			errString: "increment_retries must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAPIConfig()
			tt.mutate(cfg)

			err := cfg.ValidateAPIConfig()
			if tt.errString != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateWorkerConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		errString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "server port is not required",
			mutate: func(c *Config) {
				c.Server.Port = 0
				c.Auth.JWTSecret = ""
			},
		},
		{
			name:      "rabbitmq disabled",
			mutate:    func(c *Config) { c.RabbitMQ.Enabled = false },
			errString: "rabbitmq must be enabled",
		},
		{
			name:      "zero concurrency",
			mutate:    func(c *Config) { c.Worker.Concurrency = 0 },
			errString: "worker concurrency must be greater than 0",
		},
		{
			name:      "zero max jobs",
			mutate:    func(c *Config) { c.Worker.MaxJobs = 0 },
			errString: "worker max_jobs must be greater than 0",
		},
		{
			name:      "zero job timeout",
			mutate:    func(c *Config) { c.Worker.JobTimeout = 0 },
			errString: "worker job_timeout must be greater than 0",
		},
		{
			name:      "zero shutdown timeout",
			mutate:    func(c *Config) { c.Worker.ShutdownTimeout = 0 },
			errString: "worker shutdown_timeout must be greater than 0",
		},
		{
			name:      "missing database",
			mutate:    func(c *Config) { c.Database.Host = "" },
			errString: "database host is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAPIConfig()
			tt.mutate(cfg)

			err := cfg.ValidateWorkerConfig()
			if tt.errString != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_ValidateIntegration(t *testing.T) {
	t.Run("load and validate valid config", func(t *testing.T) {
		cfg, err := Load("testdata/valid_config.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		require.NoError(t, cfg.ValidateAPIConfig())
		require.NoError(t, cfg.ValidateWorkerConfig())
	})

	t.Run("load config with invalid port", func(t *testing.T) {
		cfg, err := Load("testdata/invalid_port.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.ValidateAPIConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})

	t.Run("load config with missing database", func(t *testing.T) {
		cfg, err := Load("testdata/missing_database.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.ValidateAPIConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database name is required")
	})
}

func TestClientConfig(t *testing.T) {
	cfg, err := Load("testdata/valid_config.yaml")
	require.NoError(t, err)

	db := cfg.Database.ClientConfig()
	assert.Equal(t, "postgres", db.Driver)
	assert.Equal(t, "interniq_db", db.Database)
	assert.Equal(t, 25, db.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, db.ConnMaxLifetime)

	mq := cfg.RabbitMQ.ClientConfig()
	assert.Equal(t, "interniq.events", mq.ExchangeName)
	assert.Equal(t, "interniq.activity", mq.QueueName)
	assert.Equal(t, "activity", mq.RoutingKey)
	assert.Equal(t, 3, mq.PublishRetries)
	assert.Equal(t, 2.0, mq.PublishBackoffMult)
}

func TestPortConstants(t *testing.T) {
	assert.Equal(t, 1, MinPort)
	assert.Equal(t, 65535, MaxPort)
	assert.Equal(t, 16, MinJWTSecretLength)
}
