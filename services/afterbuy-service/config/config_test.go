package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AFTERBUY_UPSTREAM_USER_ID", "shop-user")
	t.Setenv("AFTERBUY_UPSTREAM_USER_PASSWORD", "shop-pass")
	t.Setenv("AFTERBUY_UPSTREAM_PARTNER_ID", "1234")
	t.Setenv("AFTERBUY_UPSTREAM_PARTNER_PASSWORD", "partner-pass")
	t.Setenv("AFTERBUY_SECURITY_JWT_ACCESS_TOKEN_SECRET", "secret")
	t.Setenv("AFTERBUY_INFRASTRUCTURE_POSTGRES_USER", "afterbuy")
	t.Setenv("AFTERBUY_INFRASTRUCTURE_POSTGRES_PASSWORD", "pg-pass")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "afterbuy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Empty(t, cfg.Source)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, afterbuy.DefaultEndpoint, cfg.Upstream.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Sync.InitialLookback)
	assert.Equal(t, afterbuy.DefaultMaxSoldItems, cfg.Sync.BatchSize)
	assert.Equal(t, afterbuy.DetailLevelFull, cfg.Sync.DetailLevel)
	assert.Equal(t, 5*time.Minute, cfg.Sync.LockTTL)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Infrastructure.Redis.Addrs)
	assert.Empty(t, cfg.Infrastructure.Kafka.Brokers)
	assert.Equal(t, "afterbuy.sold_orders", cfg.Infrastructure.Kafka.Topics.SoldOrders)
	assert.False(t, cfg.Infrastructure.Kafka.PublishingEnabled(), "Kafka is off without brokers")
	assert.Equal(t, time.Hour, cfg.Infrastructure.Postgres.ConnMaxLifetime)
	assert.Equal(t, time.Hour, cfg.Security.JWT.AccessTokenExpiry)
	assert.True(t, cfg.Security.JWT.Revocation)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AFTERBUY_SERVER_PORT", "9090")
	t.Setenv("AFTERBUY_SYNC_INTERVAL", "0s")
	t.Setenv("AFTERBUY_INFRASTRUCTURE_KAFKA_SASL_USERNAME", "producer")
	t.Setenv("AFTERBUY_INFRASTRUCTURE_KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Zero(t, cfg.Sync.Interval)
	assert.Equal(t, "producer", cfg.Infrastructure.Kafka.SASLUsername)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Infrastructure.Kafka.Brokers)
	assert.True(t, cfg.Infrastructure.Kafka.PublishingEnabled())
	assert.Equal(t, afterbuy.Credentials{
		UserID:          "shop-user",
		UserPassword:    "shop-pass",
		PartnerID:       1234,
		PartnerPassword: "partner-pass",
		ErrorLanguage:   "DE",
	}, cfg.Upstream.Credentials())
}

func TestLoadConfig_RequiredSecrets(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		message string
	}{
		{name: "user id", unset: "AFTERBUY_UPSTREAM_USER_ID", message: "afterbuy user id and password are required"},
		{name: "partner password", unset: "AFTERBUY_UPSTREAM_PARTNER_PASSWORD", message: "afterbuy partner id and password are required"},
		{name: "jwt secret", unset: "AFTERBUY_SECURITY_JWT_ACCESS_TOKEN_SECRET", message: "JWT access token secret is required"},
		{name: "database user", unset: "AFTERBUY_INFRASTRUCTURE_POSTGRES_USER", message: "database user is required"},
		{name: "database password", unset: "AFTERBUY_INFRASTRUCTURE_POSTGRES_PASSWORD", message: "database password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	setRequiredEnv(t)
	path := writeConfig(t, `
application:
  name: afterbuy-gateway
upstream:
  error_language: EN
  timeout: 10s
sync:
  batch_size: 100
  detail_level: 6
infrastructure:
  redis:
    addrs: ["redis-1:6379", "redis-2:6379"]
  kafka:
    brokers: ["kafka:9092"]
    topics:
      sold_orders: orders.synced
security:
  jwt:
    issuer: gateway
    revocation: false
`)

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "afterbuy-gateway", cfg.Application.Name)
	assert.Equal(t, "EN", cfg.Upstream.ErrorLanguage)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 100, cfg.Sync.BatchSize)
	assert.Equal(t, afterbuy.DetailLevelArticles|afterbuy.DetailLevelBuyer, cfg.Sync.DetailLevel)
	assert.Equal(t, []string{"redis-1:6379", "redis-2:6379"}, cfg.Infrastructure.Redis.Addrs)
	assert.Equal(t, "orders.synced", cfg.Infrastructure.Kafka.Topics.SoldOrders)
	assert.True(t, cfg.Infrastructure.Kafka.PublishingEnabled())
	assert.Equal(t, "gateway", cfg.Security.JWT.Issuer)
	assert.False(t, cfg.Security.JWT.Revocation)
	assert.Equal(t, "secret", cfg.Security.JWT.AccessTokenSecret, "env still supplies secrets")
}

func TestKafkaConfig_PublishingEnabled(t *testing.T) {
	tests := []struct {
		name    string
		brokers []string
		topic   string
		want    bool
	}{
		{name: "brokers and topic", brokers: []string{"kafka:9092"}, topic: "orders", want: true},
		{name: "no brokers", topic: "orders"},
		{name: "no topic", brokers: []string{"kafka:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := KafkaConfig{Topics: KafkaTopics{SoldOrders: tt.topic}}
			cfg.Brokers = tt.brokers
			assert.Equal(t, tt.want, cfg.PublishingEnabled())
		})
	}
}

func TestLoadConfigFile_InvalidValues(t *testing.T) {
	setRequiredEnv(t)
	path := writeConfig(t, `
sync:
  batch_size: 500
logging:
  format: xml
`)

	_, err := LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "Sync.BatchSize")
	assert.Contains(t, err.Error(), "Logging.Format")
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
