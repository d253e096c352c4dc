package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	pkgkafka "github.com/BrianGithinji-BMG/Credit--Scoring/pkg/kafka"
)

type LogConfig struct {
	Level  string
	Format string
}

type KafkaConfig struct {
	Brokers       []string
	EventsTopic   string
	RequestTopic  string
	ResultTopic   string
	ConsumerGroup string
	TLS           bool
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	MaxAttempts   int
}

// Client converts the settings into the shared Kafka client configuration.
func (k KafkaConfig) Client() pkgkafka.Config {
	return pkgkafka.Config{
		Brokers:       k.Brokers,
		ConsumerGroup: k.ConsumerGroup,
		TLS:           k.TLS,
		SASLEnabled:   k.SASLEnabled,
		SASLMechanism: k.SASLMechanism,
		SASLUsername:  k.SASLUsername,
		SASLPassword:  k.SASLPassword,
		MaxAttempts:   k.MaxAttempts,
	}
}

type GRPCConfig struct {
	TLSCertFile     string
	TLSKeyFile      string
	TLSClientCAFile string
	Reflection      bool
}

type Config struct {
	GRPCPort         int
	HTTPPort         int
	Log              LogConfig
	DefaultScorecard string
	ScorecardDir     string
	BatchConcurrency int
	RateLimit        int
	RateBurst        int
	Kafka            KafkaConfig
	GRPC             GRPCConfig
	OTLPEndpoint     string
	ServiceName      string
}

// Validate reports settings the daemon cannot start with.
func (c Config) Validate() error {
	if c.GRPCPort <= 0 || c.HTTPPort <= 0 {
		return fmt.Errorf("ports must be positive (grpc=%d http=%d)", c.GRPCPort, c.HTTPPort)
	}
	if c.DefaultScorecard == "" {
		return fmt.Errorf("DEFAULT_SCORECARD must not be empty")
	}
	if c.BatchConcurrency <= 0 {
		return fmt.Errorf("BATCH_CONCURRENCY must be positive, got %d", c.BatchConcurrency)
	}
	if (c.GRPC.TLSCertFile == "") != (c.GRPC.TLSKeyFile == "") {
		return fmt.Errorf("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	if c.GRPC.TLSClientCAFile != "" && c.GRPC.TLSCertFile == "" {
		return fmt.Errorf("GRPC_TLS_CLIENT_CA_FILE requires GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE")
	}
	return nil
}

func Load() Config {
	rateLimit := getEnvInt("RATE_LIMIT", 100)
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9091),
		HTTPPort: getEnvInt("HTTP_PORT", 8091),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		DefaultScorecard: getEnv("DEFAULT_SCORECARD", "demographic-financial"),
		ScorecardDir:     getEnv("SCORECARD_DIR", ""),
		BatchConcurrency: getEnvInt("BATCH_CONCURRENCY", 8),
		RateLimit:        rateLimit,
		RateBurst:        getEnvInt("RATE_BURST", rateLimit*2),
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			EventsTopic:   getEnv("KAFKA_EVENTS_TOPIC", "farmscore.assessments"),
			RequestTopic:  getEnv("KAFKA_REQUEST_TOPIC", ""),
			ResultTopic:   getEnv("KAFKA_RESULT_TOPIC", "farmscore.results"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "farmscore"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			MaxAttempts:   getEnvInt("KAFKA_MAX_ATTEMPTS", 3),
		},
		GRPC: GRPCConfig{
			TLSCertFile:     getEnv("GRPC_TLS_CERT_FILE", ""),
			TLSKeyFile:      getEnv("GRPC_TLS_KEY_FILE", ""),
			TLSClientCAFile: getEnv("GRPC_TLS_CLIENT_CA_FILE", ""),
			Reflection:      getEnvBool("GRPC_REFLECTION", false),
		},
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  "farmscore",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
