package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"GRPC_PORT", "HTTP_PORT", "DEFAULT_SCORECARD", "BATCH_CONCURRENCY", "RATE_LIMIT", "KAFKA_BROKERS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, 9091, cfg.GRPCPort)
	assert.Equal(t, 8091, cfg.HTTPPort)
	assert.Equal(t, ":9091", cfg.GRPCAddr())
	assert.Equal(t, ":8091", cfg.HTTPAddr())
	assert.Equal(t, "demographic-financial", cfg.DefaultScorecard)
	assert.Equal(t, 8, cfg.BatchConcurrency)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, 200, cfg.RateBurst)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.Kafka.Client().Enabled())
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("BATCH_CONCURRENCY", "not-a-number")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_TLS", "true")
	t.Setenv("KAFKA_MAX_ATTEMPTS", "5")
	t.Setenv("GRPC_REFLECTION", "1")
	t.Setenv("GRPC_TLS_CLIENT_CA_FILE", "/etc/farmscore/ca.pem")
	t.Setenv("DEFAULT_SCORECARD", "farm-operations")

	cfg := Load()

	assert.Equal(t, 7000, cfg.GRPCPort)
	assert.Equal(t, 8, cfg.BatchConcurrency, "invalid ints fall back to the default")
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.TLS)
	assert.True(t, cfg.GRPC.Reflection)
	assert.Equal(t, "/etc/farmscore/ca.pem", cfg.GRPC.TLSClientCAFile)
	assert.Equal(t, "farm-operations", cfg.DefaultScorecard)

	client := cfg.Kafka.Client()
	assert.True(t, client.Enabled())
	assert.Equal(t, "farmscore", client.ConsumerGroup)
	assert.Equal(t, 5, client.MaxAttempts)
}

func TestValidate(t *testing.T) {
	valid := Load()

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero port", func(c *Config) { c.HTTPPort = 0 }},
		{"empty default scorecard", func(c *Config) { c.DefaultScorecard = "" }},
		{"zero concurrency", func(c *Config) { c.BatchConcurrency = 0 }},
		{"cert without key", func(c *Config) { c.GRPC.TLSCertFile = "cert.pem"; c.GRPC.TLSKeyFile = "" }},
		{"client CA without server TLS", func(c *Config) { c.GRPC.TLSClientCAFile = "ca.pem" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
