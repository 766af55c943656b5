// Package config handles application configuration loading and management
package config

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
	"github.com/ahhussein/afterbuy-sdk/pkg/jwt"
	"github.com/ahhussein/afterbuy-sdk/pkg/kafka"
	"github.com/ahhussein/afterbuy-sdk/pkg/postgres"
	"github.com/ahhussein/afterbuy-sdk/pkg/redis"
	"github.com/ahhussein/afterbuy-sdk/pkg/validator"
)

// EnvPrefix is prepended to every environment override, e.g. AFTERBUY_SERVER_PORT
const EnvPrefix = "AFTERBUY"

// Config holds the entire application configuration
type Config struct {
	// Application contains application-level settings
	Application ApplicationConfig `mapstructure:"application"`
	// Server contains HTTP server settings
	Server ServerConfig `mapstructure:"server"`
	// Logging controls the structured logger
	Logging LoggingConfig `mapstructure:"logging"`
	// Upstream contains the Afterbuy account and transport settings
	Upstream UpstreamConfig `mapstructure:"upstream"`
	// Sync controls the sold item synchronisation
	Sync SyncConfig `mapstructure:"sync"`
	// Infrastructure contains infrastructure connection settings
	Infrastructure InfrastructureConfig `mapstructure:"infrastructure"`
	// Security contains security-related settings
	Security SecurityConfig `mapstructure:"security"`
	// Metrics controls the Prometheus endpoint
	Metrics MetricsConfig `mapstructure:"metrics"`

	// Source is the config file that was read, empty when none was found
	Source string `mapstructure:"-"`
}

// ApplicationConfig holds the application-level configuration
type ApplicationConfig struct {
	// Name specifies the name of the application
	Name string `mapstructure:"name"`
	// Version specifies the version of the application
	Version string `mapstructure:"version"`
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	// Port specifies the port number the server will listen on
	Port int `mapstructure:"port" validate:"gte=1,lte=65535"`
	// ReadTimeout defines the maximum duration for reading the entire request, in seconds
	ReadTimeout int `mapstructure:"read_timeout"` // in seconds
	// WriteTimeout defines the maximum duration before timing out writes of the response, in seconds
	WriteTimeout int `mapstructure:"write_timeout"` // in seconds
	// ShutdownTimeout defines how long active connections may finish during shutdown, in seconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // in seconds
}

// LoggingConfig holds the logger configuration
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	// Format is json or text
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

// UpstreamConfig holds the Afterbuy credentials and HTTP settings
type UpstreamConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	UserID          string        `mapstructure:"user_id"`
	UserPassword    string        `mapstructure:"user_password"`
	PartnerID       int           `mapstructure:"partner_id"`
	PartnerPassword string        `mapstructure:"partner_password"`
	ErrorLanguage   string        `mapstructure:"error_language"`
	Timeout         time.Duration `mapstructure:"timeout"`
	// MaxBodySize caps the response body read from Afterbuy, in bytes
	MaxBodySize int64 `mapstructure:"max_body_size"`
}

// Credentials returns the account bundle handed to the Afterbuy client
func (c UpstreamConfig) Credentials() afterbuy.Credentials {
	return afterbuy.Credentials{
		UserID:          c.UserID,
		UserPassword:    c.UserPassword,
		PartnerID:       c.PartnerID,
		PartnerPassword: c.PartnerPassword,
		ErrorLanguage:   c.ErrorLanguage,
	}
}

// SyncConfig holds the sold item sync settings
type SyncConfig struct {
	// InitialLookback is used when no cursor is stored yet
	InitialLookback time.Duration `mapstructure:"initial_lookback" validate:"gt=0"`
	// BatchSize is sent as MaxSoldItems
	BatchSize   int                  `mapstructure:"batch_size" validate:"gte=1,lte=250"`
	DetailLevel afterbuy.DetailLevel `mapstructure:"detail_level" validate:"gte=0"`
	// LockTTL bounds how long a crashed pass blocks the next one
	LockTTL time.Duration `mapstructure:"lock_ttl" validate:"gt=0"`
	// Interval between periodic passes; zero disables the scheduler
	Interval time.Duration `mapstructure:"interval" validate:"gte=0"`
}

// InfrastructureConfig holds the infrastructure configuration
type InfrastructureConfig struct {
	// Postgres contains PostgreSQL-specific settings
	Postgres postgres.Config `mapstructure:"postgres"`
	// Redis contains Redis configuration
	Redis redis.Config `mapstructure:"redis"`
	// Kafka contains Kafka configuration
	Kafka KafkaConfig `mapstructure:"kafka"`
	// IsUseMigrate specifies whether to run database migrations on start
	IsUseMigrate bool `mapstructure:"is_use_migrate"`
}

// KafkaConfig holds the Kafka producer configuration and topic names
type KafkaConfig struct {
	kafka.Config `mapstructure:",squash"`
	// Topics contains specific topic names for different message types
	Topics KafkaTopics `mapstructure:"topics"`
}

// KafkaTopics holds specific topic names for different message types
type KafkaTopics struct {
	// SoldOrders receives one event per stored order, empty disables publishing
	SoldOrders string `mapstructure:"sold_orders"`
}

// PublishingEnabled reports whether sold order events are sent. Kafka is
// off until brokers are configured.
func (c KafkaConfig) PublishingEnabled() bool {
	return len(c.Brokers) > 0 && c.Topics.SoldOrders != ""
}

// SecurityConfig holds the security configuration
type SecurityConfig struct {
	// JWT contains JWT token configuration
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig holds the JWT configuration
type JWTConfig struct {
	jwt.TokenConfig `mapstructure:",squash"`
	// Revocation keeps revoked token ids in Redis
	Revocation bool `mapstructure:"revocation"`
}

// MetricsConfig holds the Prometheus settings
type MetricsConfig struct {
	// Enabled mounts /metrics on the service router
	Enabled bool `mapstructure:"enabled"`
}

// secrets have no default, so they are bound explicitly to make env overrides visible to Unmarshal
var secrets = []string{
	"upstream.user_id",
	"upstream.user_password",
	"upstream.partner_id",
	"upstream.partner_password",
	"infrastructure.postgres.user",
	"infrastructure.postgres.password",
	"infrastructure.kafka.sasl_username",
	"infrastructure.kafka.sasl_password",
	"security.jwt.access_token_secret",
}

// LoadConfig loads the application configuration from various sources
// It looks for afterbuy.yaml in the usual config directories
// If no config file is found, it uses environment variables and default values
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("afterbuy")
	v.SetConfigType("yaml")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")
	v.AddConfigPath("configs")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Println("Config file not found, using environment variables and defaults")
	}

	return unmarshal(v)
}

// LoadConfigFile loads the configuration from an explicit file; the file must exist
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	for _, key := range secrets {
		_ = v.BindEnv(key)
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.name", "Afterbuy Service")
	v.SetDefault("application.version", "1.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)     // seconds
	v.SetDefault("server.write_timeout", 30)    // seconds
	v.SetDefault("server.shutdown_timeout", 30) // seconds
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	// No defaults for Afterbuy credentials - they must be provided
	v.SetDefault("upstream.endpoint", afterbuy.DefaultEndpoint)
	v.SetDefault("upstream.error_language", "DE")
	v.SetDefault("upstream.timeout", "30s")
	v.SetDefault("upstream.max_body_size", 32<<20)
	v.SetDefault("sync.initial_lookback", "24h")
	v.SetDefault("sync.batch_size", afterbuy.DefaultMaxSoldItems)
	v.SetDefault("sync.detail_level", int(afterbuy.DetailLevelFull))
	v.SetDefault("sync.lock_ttl", "5m")
	v.SetDefault("sync.interval", "5m")
	v.SetDefault("infrastructure.is_use_migrate", true)
	v.SetDefault("infrastructure.postgres.host", "localhost")
	v.SetDefault("infrastructure.postgres.port", 5432)
	// No defaults for user and password - they must be provided
	v.SetDefault("infrastructure.postgres.dbname", "afterbuy")
	v.SetDefault("infrastructure.postgres.schema", "public")
	v.SetDefault("infrastructure.postgres.sslmode", "disable")
	v.SetDefault("infrastructure.postgres.max_idle_conns", 10)
	v.SetDefault("infrastructure.postgres.max_open_conns", 50)
	v.SetDefault("infrastructure.postgres.conn_max_idle_time", "5m")
	v.SetDefault("infrastructure.postgres.conn_max_lifetime", "1h")
	v.SetDefault("infrastructure.postgres.connect_timeout", "5s")
	v.SetDefault("infrastructure.postgres.debug", false)
	v.SetDefault("infrastructure.redis.addrs", []string{"localhost:6379"})
	v.SetDefault("infrastructure.redis.username", "")
	v.SetDefault("infrastructure.redis.password", "")
	v.SetDefault("infrastructure.redis.db", 0)
	v.SetDefault("infrastructure.redis.pool_size", 10)
	v.SetDefault("infrastructure.kafka.brokers", []string{})
	v.SetDefault("infrastructure.kafka.client_id", "afterbuy-service")
	v.SetDefault("infrastructure.kafka.produce_timeout", "10s")
	v.SetDefault("infrastructure.kafka.topics.sold_orders", "afterbuy.sold_orders")
	// No default for the JWT secret - it must be provided via config or env
	v.SetDefault("security.jwt.access_token_expiry", "1h")
	v.SetDefault("security.jwt.issuer", jwt.DefaultIssuer)
	v.SetDefault("security.jwt.revocation", true)
	v.SetDefault("metrics.enabled", true)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	config.Source = v.ConfigFileUsed()

	// Validate required secrets
	if config.Upstream.UserID == "" || config.Upstream.UserPassword == "" {
		return nil, errors.New("afterbuy user id and password are required")
	}
	if config.Upstream.PartnerID == 0 || config.Upstream.PartnerPassword == "" {
		return nil, errors.New("afterbuy partner id and password are required")
	}
	if config.Security.JWT.AccessTokenSecret == "" {
		return nil, errors.New("JWT access token secret is required")
	}
	if config.Infrastructure.Postgres.User == "" {
		return nil, errors.New("database user is required")
	}
	if config.Infrastructure.Postgres.Password == "" {
		return nil, errors.New("database password is required")
	}

	if fields := validator.ValidateStruct(config); len(fields) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", joinFields(fields))
	}

	return &config, nil
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, key := range keys {
		messages = append(messages, key+": "+fields[key])
	}
	return strings.Join(messages, "; ")
}
