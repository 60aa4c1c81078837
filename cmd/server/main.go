package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/Tanishqstar/sentiment-command-center/internal/cache"
	"github.com/Tanishqstar/sentiment-command-center/internal/config"
	"github.com/Tanishqstar/sentiment-command-center/internal/database"
	"github.com/Tanishqstar/sentiment-command-center/internal/platform/logging"
	"github.com/Tanishqstar/sentiment-command-center/internal/platform/retry"
	"github.com/Tanishqstar/sentiment-command-center/internal/redis"
	"github.com/Tanishqstar/sentiment-command-center/internal/sentiment"
	"github.com/Tanishqstar/sentiment-command-center/internal/server"
	"github.com/Tanishqstar/sentiment-command-center/internal/websocket"
)

// startupRetryPolicy covers transient connection failures while the
// backing services come up, e.g. during a compose start.
var startupRetryPolicy = retry.Policy{
	MaxAttempts:      5,
	InitialBackoff:   time.Second,
	RateLimitBackoff: time.Second,
	OnRetry: func(attempt int, err error, backoff time.Duration) {
		slog.Warn("Startup connection failed, retrying", "attempt", attempt, "backoff", backoff, "error", err)
	},
}

func alwaysRetry(error) retry.Action { return retry.Retry }

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := retry.Do(ctx, startupRetryPolicy, alwaysRetry, func() (*pgxpool.Pool, error) {
		return database.Connect(ctx, cfg.DatabaseURL)
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(cfg *config.Config) *redis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to create Redis client", "error", err)
		os.Exit(1)
	}

	err = retry.DoVoid(ctx, startupRetryPolicy, alwaysRetry, func() error {
		return client.Ping(ctx)
	})
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	return client
}

func runGracefulShutdown(srv *server.Server, hub *websocket.Hub, stopFns ...func()) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()
		for _, stop := range stopFns {
			stop()
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(cfg)
	defer func() { _ = redisClient.Close() }()

	// Writes publish a zero-payload change signal so every instance
	// refetches; the circuit breaker shields the cache from a dead store.
	publisher := redis.NewChangePublisher(redisClient.Underlying())
	repo := database.NewFeedbackRepo(pool, publisher)
	store := database.NewBreakerStore(repo)

	classifier := sentiment.NewClassifier()
	feedbackCache := cache.New(store, classifier, clock)

	bgCtx, cancelBg := context.WithCancel(context.Background())
	feedbackCache.Start(bgCtx)
	stopReconcile := feedbackCache.StartReconcileTimer(cfg.ReconcileInterval)

	subscriber := redis.NewChangeSubscriber(redisClient.Underlying(), feedbackCache)
	go subscriber.Start(bgCtx)

	hub := websocket.NewHub(cfg.MaxWebSocketConnections)
	unsubscribeHub := feedbackCache.Subscribe(hub.NotifyChanged)

	srv := server.NewServer(cfg, feedbackCache, hub, pool, redisClient)

	done := runGracefulShutdown(srv, hub, unsubscribeHub, stopReconcile, cancelBg)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
