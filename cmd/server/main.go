package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/capsort/capsort/internal/config"
	"github.com/capsort/capsort/internal/crypto"
	"github.com/capsort/capsort/internal/server"
	"github.com/capsort/capsort/internal/server/auth"
	"github.com/capsort/capsort/internal/server/mailer"
	"github.com/capsort/capsort/internal/server/middleware"
	"github.com/capsort/capsort/internal/server/storage/redisstore"
	"github.com/capsort/capsort/internal/server/storage/sqlstore"
	"github.com/capsort/capsort/internal/server/token"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, err := sqlstore.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		return err
	}

	store, err := sqlstore.New(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()
	logger.Info("storage ready", slog.String("driver", string(dialect)))

	// Секрет передается в token.Service один раз и дальше не хранится в конфиге
	tokens := token.NewService(token.Config{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		SessionTTL: cfg.JWTExpiresIn,
		ResetTTL:   cfg.ResetTokenTTL,
	})
	cfg.JWTSecret = ""

	sender, err := newSender(cfg, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	opts := []auth.Option{auth.WithObserver(metrics)}

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() {
			_ = redisClient.Close()
		}()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}

		opts = append(opts, auth.WithResetLedger(redisstore.NewResetLedger(redisClient)))
		logger.Info("reset tokens are single-use", slog.String("redis", cfg.RedisAddr))
	} else {
		logger.Warn("REDIS_ADDR not set, reset tokens stay valid until expiry")
	}

	authService := auth.NewService(
		logger,
		store,
		crypto.NewPasswordHasher(cfg.BcryptCost),
		tokens,
		sender,
		auth.Config{FrontendURL: cfg.FrontendURL},
		opts...,
	)

	if cfg.AdminEmail != "" {
		created, err := authService.ProvisionAdmin(ctx, auth.AdminSeed{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			FullName: cfg.AdminName,
		})
		if err != nil {
			return fmt.Errorf("failed to provision admin: %w", err)
		}
		if created {
			logger.Info("admin account created", slog.String("email", cfg.AdminEmail))
		}
	}

	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow, logger)
	defer limiter.Stop()

	trustedProxies, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		return err
	}
	if len(trustedProxies) == 0 {
		logger.Info("no trusted proxies, client IP is taken from the connection")
	}

	router := server.NewRouter(server.Deps{
		Logger:      logger,
		Auth:        authService,
		Tokens:      tokens,
		Store:       store,
		Metrics:     metrics,
		Gatherer:    reg,
		RateLimiter: limiter,
		Version:     Version,
		CORSOrigins: cfg.CORSOrigins,

		TrustedProxies: trustedProxies,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Capsort server listening", slog.String("addr", cfg.HTTPAddr), slog.String("version", Version))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	// Дожидаемся фоновой отправки писем
	authService.Wait()
	logger.Info("server stopped")

	return nil
}

// newLogger создает slog.Logger по LOG_FORMAT и LOG_LEVEL
func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newSender выбирает SMTP relay или логирующий sender для разработки
func newSender(cfg config.Config, logger *slog.Logger) (mailer.Sender, error) {
	if !cfg.SMTPEnabled() {
		logger.Warn("SMTP_HOST not set, reset emails will only be logged")
		return mailer.NewLogSender(logger), nil
	}

	sender, err := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure SMTP: %w", err)
	}

	return sender, nil
}

func printVersion() {
	fmt.Printf("Capsort Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
