package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aaronromeo/swolelog/internal/exercise"
	"github.com/aaronromeo/swolelog/internal/form"
	"github.com/aaronromeo/swolelog/internal/metrics"
	"github.com/aaronromeo/swolelog/internal/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Controller *form.Controller
	Catalog    *exercise.Catalog
	Templates  *web.Templates
	Metrics    *metrics.Manager
	Gatherer   prometheus.Gatherer
	Logger     *slog.Logger
}

func NewServer(deps Deps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true, ReadTimeout: 30 * time.Second, WriteTimeout: 60 * time.Second})
	app.Use(recover.New())
	app.Use(requestLogger(deps.Logger, deps.Metrics))

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	registerForm(app, deps)
	registerDrafts(app, deps)
	return app
}

// requestLogger logs each request once it has been handled and counts it by method and status.
func requestLogger(logger *slog.Logger, m *metrics.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = http.StatusInternalServerError
			}
		}
		if m != nil {
			m.CounterRequests.WithLabelValues(c.Method(), strconv.Itoa(status)).Inc()
		}

		level := slog.LevelDebug
		if status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.Log(c.UserContext(), level, "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
		)
		return err
	}
}
