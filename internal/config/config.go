package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cuongbtq/interniq-be/shared/database"
	"github.com/cuongbtq/interniq-be/shared/rabbitmq"
	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535

	// MinJWTSecretLength is the shortest accepted token signing secret
	MinJWTSecretLength = 16
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Logging  LoggingConfig  `yaml:"logging"`
	App      AppConfig      `yaml:"app"`
	Auth     AuthConfig     `yaml:"auth"`
	Tracker  TrackerConfig  `yaml:"tracker"`
	Worker   WorkerConfig   `yaml:"worker"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" env:"INTERNIQ_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"INTERNIQ_ALLOWED_ORIGINS"`
}

// DatabaseConfig holds database connection configuration. Driver is
// postgres (default) or sqlite; sqlite uses Path instead of the
// host fields.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" env:"INTERNIQ_DATABASE_DRIVER"`
	Host            string        `yaml:"host" env:"INTERNIQ_DATABASE_HOST"`
	Port            int           `yaml:"port" env:"INTERNIQ_DATABASE_PORT"`
	User            string        `yaml:"user" env:"INTERNIQ_DATABASE_USER"`
	Password        string        `yaml:"password" env:"INTERNIQ_DATABASE_PASSWORD"`
	Database        string        `yaml:"database" env:"INTERNIQ_DATABASE_NAME"`
	SSLMode         string        `yaml:"sslmode" env:"INTERNIQ_DATABASE_SSLMODE"`
	Path            string        `yaml:"path" env:"INTERNIQ_DATABASE_PATH"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// RabbitMQConfig holds RabbitMQ connection and exchange/queue configuration.
// When Enabled is false the API drops events and the worker cannot start.
type RabbitMQConfig struct {
	Enabled    bool             `yaml:"enabled" env:"INTERNIQ_RABBITMQ_ENABLED"`
	Host       string           `yaml:"host" env:"INTERNIQ_RABBITMQ_HOST"`
	Port       int              `yaml:"port" env:"INTERNIQ_RABBITMQ_PORT"`
	User       string           `yaml:"user" env:"INTERNIQ_RABBITMQ_USER"`
	Password   string           `yaml:"password" env:"INTERNIQ_RABBITMQ_PASSWORD"`
	VHost      string           `yaml:"vhost"`
	Exchange   ExchangeConfig   `yaml:"exchange"`
	Queue      QueueConfig      `yaml:"queue"`
	RoutingKey string           `yaml:"routing_key"`
	Connection ConnectionConfig `yaml:"connection"`
	Publish    PublishConfig    `yaml:"publish"`
	Consumer   ConsumerConfig   `yaml:"consumer"`
}

// ExchangeConfig holds RabbitMQ exchange configuration
type ExchangeConfig struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Durable    bool   `yaml:"durable"`
	AutoDelete bool   `yaml:"auto_delete"`
}

// QueueConfig holds RabbitMQ queue configuration
type QueueConfig struct {
	Name       string `yaml:"name"`
	Durable    bool   `yaml:"durable"`
	AutoDelete bool   `yaml:"auto_delete"`
	Exclusive  bool   `yaml:"exclusive"`
}

// ConnectionConfig holds RabbitMQ connection settings
type ConnectionConfig struct {
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryInterval     time.Duration `yaml:"retry_interval"`
	Heartbeat         time.Duration `yaml:"heartbeat"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
}

// PublishConfig holds RabbitMQ publish retry settings
type PublishConfig struct {
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryInterval     time.Duration `yaml:"retry_interval"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
}

// ConsumerConfig holds RabbitMQ consumer settings
type ConsumerConfig struct {
	PrefetchCount int `yaml:"prefetch_count"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level" env:"INTERNIQ_LOG_LEVEL"`
	Format       string `yaml:"format" env:"INTERNIQ_LOG_FORMAT"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
	NoColor      bool   `yaml:"no_color"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment" env:"INTERNIQ_ENVIRONMENT"`
}

// AuthConfig holds token and password hashing settings
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret" env:"INTERNIQ_JWT_SECRET"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"INTERNIQ_TOKEN_TTL"`
	Issuer     string        `yaml:"issuer"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

// TrackerConfig holds the applicant count retry policy
type TrackerConfig struct {
	IncrementRetries int           `yaml:"increment_retries"`
	IncrementBackoff time.Duration `yaml:"increment_backoff"`
}

// WorkerConfig holds worker service configuration
type WorkerConfig struct {
	Concurrency       int           `yaml:"concurrency" env:"INTERNIQ_WORKER_CONCURRENCY"`
	MaxJobs           int           `yaml:"max_jobs"`
	JobTimeout        time.Duration `yaml:"job_timeout"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// Load reads and parses the configuration file, then applies INTERNIQ_*
// environment overrides
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return &config, nil
}

// validateDatabase checks the connection settings for the configured driver
func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
		return nil
	case "postgres", "":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < MinPort || c.Database.Port > MaxPort {
		return fmt.Errorf("invalid database port: %d (must be between %d and %d)", c.Database.Port, MinPort, MaxPort)
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	return nil
}

// ValidateDatabaseConfig checks only the database section. Admin tooling
// uses it since it never serves HTTP or consumes events.
func (c *Config) ValidateDatabaseConfig() error {
	return c.validateDatabase()
}

func (c *Config) validateRabbitMQ() error {
	if c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq host is required")
	}

	if c.RabbitMQ.Port < MinPort || c.RabbitMQ.Port > MaxPort {
		return fmt.Errorf("invalid rabbitmq port: %d (must be between %d and %d)", c.RabbitMQ.Port, MinPort, MaxPort)
	}

	if c.RabbitMQ.Exchange.Name == "" {
		return fmt.Errorf("rabbitmq exchange name is required")
	}

	if c.RabbitMQ.Queue.Name == "" {
		return fmt.Errorf("rabbitmq queue name is required")
	}

	return nil
}

// ValidateAPIConfig checks the settings the API service needs
func (c *Config) ValidateAPIConfig() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if c.RabbitMQ.Enabled {
		if err := c.validateRabbitMQ(); err != nil {
			return err
		}
	}

	if len(c.Auth.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("auth jwt_secret must be at least %d characters", MinJWTSecretLength)
	}

	if c.Tracker.IncrementRetries < 0 {
		return fmt.Errorf("tracker increment_retries must not be negative")
	}

	return nil
}

// ValidateWorkerConfig checks the settings the activity worker needs
func (c *Config) ValidateWorkerConfig() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if !c.RabbitMQ.Enabled {
		return fmt.Errorf("rabbitmq must be enabled for the worker service")
	}

	if err := c.validateRabbitMQ(); err != nil {
		return err
	}

	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("worker concurrency must be greater than 0")
	}

	if c.Worker.MaxJobs <= 0 {
		return fmt.Errorf("worker max_jobs must be greater than 0")
	}

	if c.Worker.JobTimeout <= 0 {
		return fmt.Errorf("worker job_timeout must be greater than 0")
	}

	if c.Worker.ShutdownTimeout <= 0 {
		return fmt.Errorf("worker shutdown_timeout must be greater than 0")
	}

	return nil
}

// ClientConfig converts the database section for shared/database
func (d DatabaseConfig) ClientConfig() *database.Config {
	return &database.Config{
		Driver:          d.Driver,
		Host:            d.Host,
		Port:            d.Port,
		User:            d.User,
		Password:        d.Password,
		Database:        d.Database,
		SSLMode:         d.SSLMode,
		Path:            d.Path,
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
		ConnMaxIdleTime: d.ConnMaxIdleTime,
	}
}

// ClientConfig converts the rabbitmq section for shared/rabbitmq
func (r RabbitMQConfig) ClientConfig() *rabbitmq.Config {
	return &rabbitmq.Config{
		Host:               r.Host,
		Port:               r.Port,
		User:               r.User,
		Password:           r.Password,
		VHost:              r.VHost,
		ExchangeName:       r.Exchange.Name,
		ExchangeType:       r.Exchange.Type,
		ExchangeDurable:    r.Exchange.Durable,
		ExchangeAutoDelete: r.Exchange.AutoDelete,
		QueueName:          r.Queue.Name,
		QueueDurable:       r.Queue.Durable,
		QueueAutoDelete:    r.Queue.AutoDelete,
		QueueExclusive:     r.Queue.Exclusive,
		RoutingKey:         r.RoutingKey,
		RetryAttempts:      r.Connection.RetryAttempts,
		RetryInterval:      r.Connection.RetryInterval,
		Heartbeat:          r.Connection.Heartbeat,
		ConnectionTimeout:  r.Connection.ConnectionTimeout,
		PublishRetries:     r.Publish.RetryAttempts,
		PublishRetryDelay:  r.Publish.RetryInterval,
		PublishBackoffMult: r.Publish.BackoffMultiplier,
	}
}
