package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-backoffice/internal/api"
	"ms-backoffice/internal/auth"
	"ms-backoffice/internal/cache"
	"ms-backoffice/internal/config"
	"ms-backoffice/internal/dashboard"
	"ms-backoffice/internal/format"
	"ms-backoffice/internal/kafka"
	"ms-backoffice/internal/logger"
	"ms-backoffice/internal/store"
	"ms-backoffice/internal/tickets/qr"
)

func connectDatabase(cfg config.DatabaseConfig, logger *logger.Logger) *bun.DB {
	if cfg.DSN == "" {
		logger.Fatal("CONFIG", "POSTGRES_DSN not set")
	}

	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		logger.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			logger.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}
		logger.Error("DATABASE", fmt.Sprintf("PostgreSQL ping failed: %v", err))
		sqldb.Close()
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	logger.Info("DATABASE", "✅ PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

// newVerifier prefers OIDC, then a shared HS256 secret. It returns nil when
// auth is disabled.
func newVerifier(ctx context.Context, cfg config.AuthConfig, logger *logger.Logger) auth.Verifier {
	if !cfg.Enabled {
		logger.Warn("AUTH", "Authentication disabled by AUTH_ENABLED=false")
		return nil
	}
	if cfg.Issuer != "" {
		v, err := auth.NewOIDCVerifier(ctx, cfg.Issuer, cfg.ClientID)
		if err != nil {
			logger.Fatal("AUTH", fmt.Sprintf("OIDC discovery failed for %s: %v", cfg.Issuer, err))
		}
		logger.Info("AUTH", fmt.Sprintf("Verifying tokens issued by %s", cfg.Issuer))
		return v
	}
	v, err := auth.NewHMACVerifier(cfg.JWTSecret)
	if err != nil {
		logger.Fatal("AUTH", "AUTH_ENABLED is set but neither OIDC_ISSUER nor AUTH_JWT_SECRET is configured")
	}
	logger.Info("AUTH", "Verifying HS256 tokens with AUTH_JWT_SECRET")
	return v
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println(".env file not found, using environment variables")
	}
	cfg := config.Load()

	logger, err := logger.NewLogger(cfg.Log.Service, cfg.Log.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("APP", "Starting back-office service initialization")
	ctx := context.Background()

	bunDB := connectDatabase(cfg.Database, logger)
	defer bunDB.Close()

	formatter := format.New(
		format.WithLocale(format.ParseLocale(cfg.Display.Locale)),
		format.WithLocation(cfg.Display.Location()),
	)
	logger.Info("CONFIG", fmt.Sprintf("Display locale %s, timezone %s", formatter.Locale(), formatter.Location()))

	var opts []dashboard.Option

	if cfg.Redis.Enabled {
		var redisClient *redis.Client
		redisClient, err = cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("REDIS", fmt.Sprintf("Dashboard cache disabled: %v", err))
		} else {
			defer redisClient.Close()
			opts = append(opts, dashboard.WithSnapshots(cache.NewSnapshotCache(redisClient, cfg.Redis.SnapshotTTL)))
		}
	}

	if cfg.Kafka.Enabled {
		logger.Info("KAFKA", fmt.Sprintf("Using Kafka brokers: %v", cfg.Kafka.Brokers))
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{cfg.Kafka.Topics.Exports}, logger); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.Exports, logger)
		defer producer.Close()
		opts = append(opts, dashboard.WithPublisher(producer))
		logger.Info("KAFKA", "Export audit producer initialized successfully")
	}

	if cfg.QR.SecretKey != "" {
		generator, err := qr.NewQRGenerator(cfg.QR.SecretKey)
		if err != nil {
			logger.Fatal("CONFIG", fmt.Sprintf("Invalid QR_SECRET_KEY: %v", err))
		}
		opts = append(opts, dashboard.WithQRGenerator(generator))
	} else {
		logger.Warn("CONFIG", "QR_SECRET_KEY not set, ticket QR codes are disabled")
	}

	service := dashboard.NewService(store.New(bunDB), formatter, logger, opts...)
	handler := api.NewHandler(service, logger)

	logger.Info("HTTP", "Setting up router and middleware")
	router := api.NewRouter(handler, api.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Verifier:       newVerifier(ctx, cfg.Auth, logger),
		RequestTimeout: cfg.Database.QueryTimeout,
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 Back-office service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "✅ Back-office service shutdown complete")
	}
}
