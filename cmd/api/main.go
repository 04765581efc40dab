// Package main is the entrypoint for the InterviewIQ API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/interviewiq/interviewiq/internal/cache"
	"github.com/interviewiq/interviewiq/internal/config"
	"github.com/interviewiq/interviewiq/internal/handler"
	"github.com/interviewiq/interviewiq/internal/history"
	"github.com/interviewiq/interviewiq/internal/llm"
	"github.com/interviewiq/interviewiq/internal/metrics"
	"github.com/interviewiq/interviewiq/internal/middleware"
	"github.com/interviewiq/interviewiq/internal/repository"
	"github.com/interviewiq/interviewiq/internal/server"
	"github.com/interviewiq/interviewiq/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	recorder := metrics.NewInMemory()

	chatClient := llm.NewChatClient(llm.Options{
		BaseURL:    cfg.OpenAIBaseURL,
		APIKey:     cfg.OpenAIAPIKey,
		Model:      cfg.AIModel,
		MaxTokens:  cfg.LLMMaxTokens,
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
	}, logger)

	var publisher service.EventPublisher
	if cfg.HistoryEnabled {
		publisher = history.NewPublisher(cacheClient.Client(), logger, recorder)
	}

	coachService := service.NewCoachService(chatClient, cacheClient, publisher, recorder, logger, cfg.AIModel, cfg.CacheTTL)
	interviewService := service.NewInterviewService(chatClient, publisher, recorder, logger, cfg.AIModel)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(recorder)
	coachHandler := handler.NewCoachHandler(coachService, logger)
	interviewHandler := handler.NewInterviewHandler(interviewService, logger)
	historyHandler := handler.NewHistoryHandler(repo, logger)

	r := setupRouter(h, healthHandler, metricsHandler, coachHandler, interviewHandler, historyHandler, cacheClient, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	if cfg.HistoryEnabled {
		worker := history.NewWorker(cacheClient.Client(), repo, logger, history.NewConsumerID(), recorder)
		workerCtx, workerCancel := context.WithCancel(ctx)

		go func() {
			if err := worker.Run(workerCtx); err != nil {
				logger.Error("history worker stopped", "error", err)
			}
		}()

		srv.OnShutdown("history_worker", func(ctx context.Context) error {
			workerCancel()
			return worker.Shutdown(ctx)
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"model", cfg.AIModel,
		"provider", redactURL(cfg.OpenAIBaseURL),
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	coachHandler *handler.CoachHandler,
	interviewHandler *handler.InterviewHandler,
	historyHandler *handler.HistoryHandler,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	corsCfg := middleware.DefaultCORSConfig()
	if origins := cfg.GetCORSAllowedOrigins(); origins != nil {
		corsCfg.AllowedOrigins = origins
	}
	r.Use(middleware.CORS(corsCfg))

	// Health and observability endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	// Root info endpoint
	r.Get("/", h.Hello)

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:            logger,
		Cache:             cacheClient,
		Enabled:           cfg.RateLimitEnabled,
		RequestsPerMinute: cfg.RateLimitRPM,
		Burst:             cfg.RateLimitBurst,
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BodyLimit(cfg.MaxRequestBodySize))
		r.Use(middleware.RateLimitIP(rateLimitCfg))

		// Coaching endpoints (each costs an upstream completion)
		r.Post("/jd/analyze", coachHandler.AnalyzeJD)
		r.Post("/resume/match", coachHandler.MatchResume)
		r.Post("/prep-plan", coachHandler.PrepPlan)
		r.Post("/mock-interview", interviewHandler.MockInterview)

		// Stored analysis history
		r.Get("/analyses", historyHandler.List)
		r.Get("/analyses/{id}", historyHandler.Get)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
