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

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/quicktools-app/quicktools/internal/auth"
	"github.com/quicktools-app/quicktools/internal/config"
	"github.com/quicktools-app/quicktools/internal/engine"
	"github.com/quicktools-app/quicktools/internal/engine/handlers"
	"github.com/quicktools-app/quicktools/internal/registry"
	"github.com/quicktools-app/quicktools/internal/server"
	"github.com/quicktools-app/quicktools/internal/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// .env is optional; real env always wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	logger := mustBuildLogger(cfg.LogLevel)
	defer logger.Sync() //nolint:errcheck // best-effort flush

	logger.Info("starting quicktools server",
		zap.String("port", cfg.Port),
	)

	// Engine
	eng, err := engine.New(handlers.All(), engine.SystemRand(), logger)
	if err != nil {
		logger.Fatal("failed to build engine", zap.Error(err))
	}

	// Storage — ClickHouse or LogWriter fallback
	var writer storage.EventWriter
	if cfg.ClickHouseDSN != "" {
		chWriter, err := storage.NewClickHouseWriter(cfg.ClickHouseDSN, logger)
		if err != nil {
			logger.Warn("clickhouse connection failed, falling back to log writer",
				zap.Error(err),
			)
			writer = storage.NewLogWriter(logger)
		} else {
			writer = chWriter
			logger.Info("clickhouse writer connected")
		}
	} else {
		writer = storage.NewLogWriter(logger)
		logger.Info("no CLICKHOUSE_DSN set, using log writer")
	}
	defer writer.Close()

	// One shared Postgres pool serves both the authenticator and the catalog.
	var db *sql.DB
	if cfg.PostgresDSN != "" {
		db = mustOpenPostgres(cfg.PostgresDSN, logger)
		defer func() { _ = db.Close() }()
		logger.Info("postgres connected")
	}

	// Auth — Postgres if DSN provided, otherwise static keys
	var authenticator auth.Authenticator
	if db != nil {
		authenticator = auth.NewPostgresAuthenticator(auth.PostgresAuthConfig{
			DB:       db,
			CacheTTL: time.Duration(cfg.AuthCacheTTL) * time.Second,
			FailOpen: true,
			Logger:   logger,
		})
	} else {
		authenticator = auth.NewStaticAuthenticator(cfg.APIKeys)
		if len(cfg.APIKeys) == 0 {
			logger.Info("no API keys configured, accepting anonymous requests")
		}
	}

	// Catalog — Postgres if DSN provided, otherwise the embedded catalog
	var catalog registry.Catalog
	if db != nil {
		catalog = registry.NewPostgresCatalog(registry.PostgresCatalogConfig{
			DB:       db,
			CacheTTL: time.Duration(cfg.ToolCacheTTL) * time.Second,
			Logger:   logger,
		})
	} else {
		static, err := registry.NewStaticCatalog()
		if err != nil {
			logger.Fatal("failed to load embedded catalog", zap.Error(err))
		}
		catalog = static
		logger.Info("using embedded catalog")
	}

	// Warn on catalog drift: descriptors whose engine has no handler are
	// tolerated at compute time, but worth surfacing at startup.
	if tools, err := catalog.All(context.Background()); err == nil {
		for _, t := range tools {
			if !eng.Known(t.EngineID) {
				logger.Warn("catalog references unimplemented engine",
					zap.String("slug", t.Slug),
					zap.String("engine_id", t.EngineID),
				)
			}
		}
	}

	srv := server.New(catalog, eng, authenticator, writer, logger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		srv.SetReady(false)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}()

	logger.Info("quicktools server listening", zap.String("addr", httpServer.Addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("http server failed", zap.Error(err))
	}
}

func mustOpenPostgres(dsn string, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Fatal("failed to open postgres", zap.Error(err))
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(context.Background()); err != nil {
		logger.Fatal("failed to ping postgres", zap.Error(err))
	}
	return db
}

func mustBuildLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}
