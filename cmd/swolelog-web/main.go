package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaronromeo/swolelog/internal/config"
	"github.com/aaronromeo/swolelog/internal/draft"
	"github.com/aaronromeo/swolelog/internal/exercise"
	"github.com/aaronromeo/swolelog/internal/form"
	"github.com/aaronromeo/swolelog/internal/httpapi"
	"github.com/aaronromeo/swolelog/internal/logging"
	"github.com/aaronromeo/swolelog/internal/metrics"
	"github.com/aaronromeo/swolelog/internal/web"
	"github.com/aaronromeo/swolelog/internal/workout"
	"github.com/aaronromeo/swolelog/internal/workoutsapi"
	"github.com/cli/browser"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; the environment wins over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("Error loading .env file: ", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, logCloser := logging.Setup(logging.SetupParams{Debug: cfg.Debug, LogFile: cfg.LogFile})
	defer logCloser.Close() //nolint:errcheck

	ctx := context.Background()

	store, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	variant, err := workout.NewVariant(cfg.FormVariant, exercise.Default)
	if err != nil {
		log.Fatal(err)
	}

	api := workoutsapi.New(
		workoutsapi.WithURL(cfg.WorkoutsAPIURL),
		workoutsapi.WithRetries(cfg.SubmitRetries),
		workoutsapi.WithTimeout(cfg.SubmitTimeout),
		workoutsapi.WithLogger(logger),
	)

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("swolelog", "web", promRegistry)

	tmpls, err := web.Load()
	if err != nil {
		log.Fatal(err)
	}

	app := httpapi.NewServer(httpapi.Deps{
		Controller: form.NewController(store, variant, api, metricsManager, logger),
		Catalog:    exercise.Default,
		Templates:  tmpls,
		Metrics:    metricsManager,
		Gatherer:   promRegistry,
		Logger:     logger,
	})

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("listening",
			"addr", cfg.Addr,
			"variant", variant.Name(),
			"draft_store", cfg.DraftStore,
			"workouts_api", cfg.WorkoutsAPIURL,
		)
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatal(err)
		}
	}()

	if cfg.OpenBrowser {
		if err := browser.OpenURL(localURL(cfg.Addr)); err != nil {
			logger.Warn("failed to open browser", "error", err)
		}
	}

	receivedSig := <-chOsInterrupt
	logger.Warn("signal received, shutting down", "signal", receivedSig.String())
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (draft.Store, func(), error) {
	if cfg.DraftStore != config.StoreRedis {
		return draft.NewMemoryStore(cfg.DraftCacheMB, cfg.DraftTTL), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	logger.Debug("redis ping", "reply", rdbStatus.Val())
	return draft.NewRedisStore(rdb, cfg.DraftTTL), func() { _ = rdb.Close() }, nil
}

// localURL turns a listen address like ":8080" into a browsable URL.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
