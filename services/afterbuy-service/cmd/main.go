// Package main is the entry point for the afterbuy service
// It wires the Afterbuy client, the sold order sync and the HTTP gateway
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
	"github.com/ahhussein/afterbuy-sdk/pkg/httpclient"
	"github.com/ahhussein/afterbuy-sdk/pkg/jwt"
	"github.com/ahhussein/afterbuy-sdk/pkg/kafka"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/pkg/postgres"
	"github.com/ahhussein/afterbuy-sdk/pkg/redis"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/config"
	httpDelivery "github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/delivery/http"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain/model"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/metrics"
	pgRepository "github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/repository/postgres"
	redisRepository "github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/repository/redis"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/usecase"
)

// main performs the following steps:
// 1. Loads .env and the configuration
// 2. Initializes the logger
// 3. Connects PostgreSQL, Redis and optionally Kafka
// 4. Builds the Afterbuy client, repositories, use cases and handlers
// 5. Starts the HTTP server and the periodic sync
// 6. Shuts everything down on SIGINT or SIGTERM
func main() {
	configFile := flag.String("config", "", "path to a config file, overrides the default search paths")
	issueToken := flag.String("issue-token", "", "print an access token for the given client id and exit")
	scopes := flag.String("scopes", strings.Join(httpDelivery.AllScopes, ","), "comma separated scopes for -issue-token")
	flag.Parse()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "failed to load .env:", err)
		os.Exit(1)
	}

	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if *configFile != "" {
		cfg, err = config.LoadConfigFile(*configFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	// configure logger
	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid log level:", err)
		os.Exit(1)
	}
	appLogger := logger.NewWithOptions(
		logger.WithStdout(),
		logger.WithLevel(level),
		logger.WithFormat(cfg.Logging.Format),
		logger.WithService(cfg.Application.Name),
	)
	if cfg.Source != "" {
		appLogger.Info("Configuration loaded", "file", cfg.Source)
	}

	// Redis backs both the sync cursor and token revocation
	ctx := context.Background()
	redisClient, err := redis.NewWithConfig(ctx, cfg.Infrastructure.Redis)
	if err != nil {
		appLogger.Error("Failed to initialize Redis client", "error", err)
		os.Exit(1)
	}

	// Initialize JWT client
	var jwtClient jwt.JWTClient
	if cfg.Security.JWT.Revocation {
		jwtClient, err = jwt.NewWithRevocation(jwt.NewRedisStore(redisClient), cfg.Security.JWT.Options()...)
	} else {
		jwtClient, err = jwt.NewWithConfig(cfg.Security.JWT.TokenConfig)
	}
	if err != nil {
		appLogger.Error("Failed to initialize JWT client", "error", err)
		os.Exit(1)
	}

	if *issueToken != "" {
		token, err := jwtClient.GenerateAccessToken(*issueToken, splitScopes(*scopes)...)
		if err != nil {
			appLogger.Error("Failed to issue token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		_ = redisClient.Close()
		return
	}

	// Initialize PostgreSQL client
	postgresClient, err := postgres.NewPostgresClient(ctx, cfg.Infrastructure.Postgres)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.Infrastructure.IsUseMigrate {
		// Run database migrations
		if err := postgresClient.Migrate(&model.SoldOrder{}); err != nil {
			appLogger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	// Kafka is optional; without brokers or a topic the sync only stores orders
	var publisher usecase.EventPublisher
	var kafkaClient kafka.KafkaClient
	if cfg.Infrastructure.Kafka.PublishingEnabled() {
		kafkaClient, err = kafka.NewWithConfig(cfg.Infrastructure.Kafka.Config)
		if err != nil {
			appLogger.Error("Failed to initialize Kafka client", "error", err)
			os.Exit(1)
		}
		publisher = kafkaClient
	} else {
		appLogger.Info("Kafka publishing disabled")
	}

	// Initialize the Afterbuy client
	transport := httpclient.New(
		httpclient.WithTimeout(cfg.Upstream.Timeout),
		httpclient.WithMaxBodySize(cfg.Upstream.MaxBodySize),
	)
	afterbuyClient := afterbuy.New(cfg.Upstream.Credentials(), transport,
		afterbuy.WithLogger(appLogger),
		afterbuy.WithEndpoint(cfg.Upstream.Endpoint),
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// Initialize repositories
	orderRepo := pgRepository.NewSoldOrderRepository(postgresClient.GetDB(), appLogger)
	syncCursor := redisRepository.NewSyncCursor(redisClient)

	// Initialize use cases
	catalogUseCase := usecase.NewCatalogUseCase(afterbuyClient, m, appLogger)
	orderUseCase := usecase.NewOrderUseCase(afterbuyClient, orderRepo, syncCursor, publisher, usecase.SyncConfig{
		InitialLookback: cfg.Sync.InitialLookback,
		BatchSize:       cfg.Sync.BatchSize,
		DetailLevel:     cfg.Sync.DetailLevel,
		LockTTL:         cfg.Sync.LockTTL,
		Topic:           cfg.Infrastructure.Kafka.Topics.SoldOrders,
	}, m, appLogger)

	// Initialize handlers
	checks := map[string]httpDelivery.Pinger{
		"postgres": postgresClient,
		"redis":    redisClient,
	}
	if kafkaClient != nil {
		checks["kafka"] = kafkaClient
	}
	catalogHandler := httpDelivery.NewCatalogHandler(catalogUseCase, appLogger)
	orderHandler := httpDelivery.NewOrderHandler(orderUseCase, appLogger)
	healthHandler := httpDelivery.NewHealthHandler(checks, appLogger)
	authHandler := httpDelivery.NewAuthHandler(jwtClient, appLogger)

	// Initialize router
	router := httpDelivery.NewRouter(catalogHandler, orderHandler, healthHandler, authHandler, jwtClient, m, appLogger)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router.SetupRoutes(),
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Create channel to listen for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a separate goroutine
	go func() {
		appLogger.Info("Service starting", "name", cfg.Application.Name, "version", cfg.Application.Version, "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	syncCtx, stopSync := context.WithCancel(context.Background())
	syncDone := make(chan struct{})
	go func() {
		defer close(syncDone)
		usecase.RunPeriodicSync(syncCtx, orderUseCase, cfg.Sync.Interval, appLogger)
	}()

	// Block until a signal is received
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	stopSync()

	// Shutdown the server gracefully
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	select {
	case <-syncDone:
	case <-shutdownCtx.Done():
		appLogger.Warn("Sync did not stop before the shutdown timeout")
	}

	if kafkaClient != nil {
		if err := kafkaClient.Flush(shutdownCtx); err != nil {
			appLogger.Warn("Error flushing Kafka producer", "error", err)
		}
		if err := kafkaClient.Close(); err != nil {
			appLogger.Warn("Error closing Kafka client", "error", err)
		}
	}

	if err := redisClient.Close(); err != nil {
		appLogger.Warn("Error closing Redis connection", "error", err)
	}

	// Close database connection
	if err := postgresClient.Close(); err != nil {
		appLogger.Warn("Error closing database connection", "error", err)
	}

	appLogger.Info("Server exited")
}

func splitScopes(raw string) []string {
	var scopes []string
	for _, scope := range strings.Split(raw, ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			scopes = append(scopes, scope)
		}
	}
	return scopes
}
