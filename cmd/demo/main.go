package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/inappbrowser"
	"github.com/dmitrymomot/inappbrowser/pkg/analytics"
	"github.com/dmitrymomot/inappbrowser/pkg/config"
	"github.com/dmitrymomot/inappbrowser/pkg/httpserver"
	"github.com/dmitrymomot/inappbrowser/pkg/logger"
	"github.com/dmitrymomot/inappbrowser/pkg/redis"
)

type appConfig struct {
	Env        string `env:"ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL"`
	ConfigFile string `env:"CONFIG_FILE"`

	CollectorURL string `env:"COLLECTOR_URL"`
	CollectorKey string `env:"COLLECTOR_KEY"`
	Stream       string `env:"REDIS_STREAM" envDefault:"inapp:events"`
	StreamMaxLen int64  `env:"REDIS_STREAM_MAXLEN" envDefault:"100000"`

	HTTP  httpserver.Config
	Redis redis.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "inappbrowser-demo"),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestID),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("demo stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	var browserCfg inappbrowser.Config
	if cfg.ConfigFile != "" {
		if err := config.LoadFile(cfg.ConfigFile, &browserCfg); err != nil {
			return err
		}
	}
	if err := config.Load(&browserCfg); err != nil {
		return err
	}

	metrics, err := analytics.NewMetricsSink(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	sinks := []analytics.Sink{analytics.NewLogSink(log), metrics}
	var checks []httpserver.Check

	if cfg.CollectorURL != "" {
		var opts []analytics.HTTPOption
		if cfg.CollectorKey != "" {
			opts = append(opts, analytics.WithHeader("Authorization", "Bearer "+cfg.CollectorKey))
		}
		sinks = append(sinks, analytics.NewHTTPSink(cfg.CollectorURL, opts...))
	}

	if cfg.Redis.URL != "" {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		sinks = append(sinks, analytics.NewRedisSink(client, cfg.Stream, cfg.StreamMaxLen))
		checks = append(checks, httpserver.Check{
			Name: "redis",
			Fn:   func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}

	events := analytics.NewQueue(analytics.Multi(sinks...), analytics.WithQueueLogger(log))
	defer func() {
		// the server has stopped by now; give buffered events a moment
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), analytics.DefaultDeliveryTimeout)
		defer cancel()
		if err := events.Close(flushCtx); err != nil {
			log.Warn("analytics queue not drained", logger.Error(err))
		}
	}()

	r := newRouter(log, browserCfg, events, checks...)
	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}

func newRouter(log *slog.Logger, browserCfg inappbrowser.Config, sink analytics.Sink, checks ...httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthHandler(log))
	r.Get("/readyz", httpserver.HealthHandler(log, checks...))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(inappbrowser.Middleware(browserCfg,
			inappbrowser.WithLogger(log),
			inappbrowser.WithSink(sink),
		))
		r.Method(http.MethodGet, "/", pageHandler("Welcome", "This page asks in-app browsers to reopen it in the default browser."))
		r.Get("/article/{slug}", func(w http.ResponseWriter, r *http.Request) {
			pageHandler(chi.URLParam(r, "slug"), "An article worth reading in a real browser.").ServeHTTP(w, r)
		})
		r.Method(http.MethodGet, "/admin", pageHandler("Admin", "Add /admin to exclude_paths to keep the overlay away from here."))
	})

	return r
}

func requestID(ctx context.Context) (slog.Attr, bool) {
	if id := middleware.GetReqID(ctx); id != "" {
		return logger.RequestID(id), true
	}
	return slog.Attr{}, false
}
