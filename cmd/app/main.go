package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout/cmd"
	grpcadapter "checkout/internal/adapters/in/grpc"
	httpadapter "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/kafka"
	"checkout/internal/adapters/out/postgres"
	redisadapter "checkout/internal/adapters/out/redis"
	"checkout/internal/core/ports"
	"checkout/internal/jobs"

	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	healthProbeInterval = 5 * time.Second
	shutdownTimeout     = 10 * time.Second
)

func main() {
	configs := getConfigs()

	logger, err := newLogger(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	sqlDB, gormDB := mustConnectDB(configs)
	defer func() { _ = sqlDB.Close() }()

	publisher := newPublisher(configs, logger)
	var eventPublisher ports.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
		defer func() { _ = publisher.Close() }()
	}

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		eventPublisher,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := startHealthServer(ctx, sqlDB, configs.GRPCHealthPort, logger)
	defer health.Stop()

	jobManager := startJobs(&app, configs, eventPublisher != nil, logger)
	defer jobManager.StopAll()

	e := newWebServer(&app, configs, logger)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown", zap.Error(err))
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.ConfigFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}

// mustConnectDB opens the pool with the configured driver (pgx or lib/pq),
// hands it to gorm and migrates the schema.
func mustConnectDB(configs cmd.Config) (*sql.DB, *gorm.DB) {
	sqlDB, err := sql.Open(configs.DBDriver, configs.DSN())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return sqlDB, gormDB
}

func newPublisher(configs cmd.Config, logger *zap.Logger) *kafka.OutboxPublisher {
	brokers := kafka.ParseBrokers(configs.KafkaBrokers)
	if len(brokers) == 0 {
		logger.Warn("KAFKA_BROKERS is not set, order events stay in the outbox")
		return nil
	}
	return kafka.NewOutboxPublisher(kafka.NewWriter(brokers, configs.KafkaOrderEventsTopic))
}

func newIdempotencyStore(configs cmd.Config, logger *zap.Logger) ports.IdempotencyStore {
	if configs.RedisAddr == "" {
		logger.Warn("REDIS_ADDR is not set, Idempotency-Key headers are ignored")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	return redisadapter.NewIdempotencyStore(rdb)
}

func startHealthServer(ctx context.Context, db *sql.DB, port string, logger *zap.Logger) *grpcadapter.HealthServer {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		log.Fatalf("Error listening on gRPC health port %s: %v", port, err)
	}

	server := grpcadapter.NewHealthServer(db, healthProbeInterval, logger)
	go server.Watch(ctx)
	go func() {
		if err := server.Serve(lis); err != nil {
			logger.Error("gRPC health server stopped", zap.Error(err))
		}
	}()
	return server
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config, relayEnabled bool, logger *zap.Logger) *jobs.JobManager {
	var scheduled []jobs.Job
	if relayEnabled {
		relay, err := jobs.NewOutboxRelayJob(
			app.CreateRelayOutboxCommandHandler(),
			configs.OutboxRelaySchedule,
			configs.OutboxBatchSize,
			logger,
		)
		if err != nil {
			log.Fatalf("Error creating outbox relay job: %v", err)
		}
		scheduled = append(scheduled, relay)
	}

	jobManager := jobs.NewJobManager(scheduled...)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	return jobManager
}

func newWebServer(app *cmd.CompositionRoot, configs cmd.Config, logger *zap.Logger) *echo.Echo {
	metrics := httpadapter.NewMetrics()

	e, err := httpadapter.NewRouter(app.CreateHTTPServer(metrics), httpadapter.RouterConfig{
		Logger:           logger,
		Metrics:          metrics,
		JWTSecret:        []byte(configs.JWTSecret),
		RateLimit:        rate.Limit(configs.RateLimitRPS),
		RateBurst:        configs.RateLimitBurst,
		IdempotencyStore: newIdempotencyStore(configs, logger),
		IdempotencyTTL:   configs.IdempotencyTTL,
	})
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}
	return e
}
