package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPgx = "pgx"
	DriverPq  = "postgres"
)

type Config struct {
	HTTPPort       string
	GRPCHealthPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	RedisAddr      string
	IdempotencyTTL time.Duration

	KafkaBrokers          string
	KafkaOrderEventsTopic string

	OutboxRelaySchedule string
	OutboxBatchSize     int

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel string
}

// ConfigFromEnv reads the configuration through getenv, applying defaults for
// optional keys.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	env := envReader{getenv: getenv}

	cfg := Config{
		HTTPPort:              env.string("HTTP_PORT", "8080"),
		GRPCHealthPort:        env.string("GRPC_HEALTH_PORT", "8081"),
		DBDriver:              env.string("DB_DRIVER", DriverPgx),
		DBHost:                env.string("DB_HOST", "localhost"),
		DBPort:                env.string("DB_PORT", "5432"),
		DBUser:                env.string("DB_USER", ""),
		DBPassword:            env.string("DB_PASSWORD", ""),
		DBName:                env.string("DB_NAME", ""),
		DBSslMode:             env.string("DB_SSLMODE", "disable"),
		JWTSecret:             env.string("JWT_SECRET", ""),
		RedisAddr:             env.string("REDIS_ADDR", ""),
		IdempotencyTTL:        env.duration("IDEMPOTENCY_TTL", 24*time.Hour),
		KafkaBrokers:          env.string("KAFKA_BROKERS", ""),
		KafkaOrderEventsTopic: env.string("KAFKA_ORDER_EVENTS_TOPIC", "checkout.orders"),
		OutboxRelaySchedule:   env.string("OUTBOX_RELAY_SCHEDULE", "*/5 * * * * *"),
		OutboxBatchSize:       env.int("OUTBOX_BATCH_SIZE", 100),
		RateLimitRPS:          env.float("RATE_LIMIT_RPS", 0),
		RateLimitBurst:        env.int("RATE_LIMIT_BURST", 20),
		LogLevel:              env.string("LOG_LEVEL", "info"),
	}

	if cfg.DBDriver != DriverPgx && cfg.DBDriver != DriverPq {
		env.fail("DB_DRIVER", fmt.Errorf("must be %q or %q", DriverPgx, DriverPq))
	}
	if cfg.DBUser == "" {
		env.fail("DB_USER", errors.New("is required"))
	}
	if cfg.DBName == "" {
		env.fail("DB_NAME", errors.New("is required"))
	}
	if cfg.JWTSecret == "" {
		env.fail("JWT_SECRET", errors.New("is required"))
	}
	if cfg.OutboxBatchSize <= 0 {
		env.fail("OUTBOX_BATCH_SIZE", errors.New("must be positive"))
	}

	return cfg, errors.Join(env.errs...)
}

// DSN is a postgres URL understood by both pgx and lib/pq.
func (c Config) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return dsn.String()
}

type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) fail(key string, err error) {
	r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
}

func (r *envReader) string(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) int(key string, def int) int {
	v := r.string(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

func (r *envReader) float(key string, def float64) float64 {
	v := r.string(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return f
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.string(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return d
}
