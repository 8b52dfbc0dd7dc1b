package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/brpaz/echozap"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/metabolic-health/coach/analytics"
	"github.com/metabolic-health/coach/config"
	"github.com/metabolic-health/coach/entries"
	"github.com/metabolic-health/coach/errors"
	"github.com/metabolic-health/coach/flags"
	"github.com/metabolic-health/coach/localdate"
	"github.com/metabolic-health/coach/logger"
	"github.com/metabolic-health/coach/store"
)

var (
	ServerTimeoutAmount = 20 * time.Second
)

func Start(e *echo.Echo, cfg *config.Config, lifecycle fx.Lifecycle, logger *zap.SugaredLogger) {
	address := fmt.Sprintf(":%d", cfg.HttpPort)
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(address); err != nil && err != http.ErrServerClosed {
					logger.Errorw("server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

// SetReady takes the repository so its index hook is registered, and runs, first.
func SetReady(healthCheck *HealthCheck, db *mongo.Database, _ entries.Repository, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := store.Ping(ctx, db.Client()); err != nil {
				return err
			}

			healthCheck.SetReady(true)
			return nil
		},
	})
}

func NewServer(handler *Handler, healthCheck *HealthCheck, logger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// Skip request ids, validation, timeouts and access logs for the readiness probe
	skipper := RouteSkipper([]string{"/ready"})
	requestValidator, err := NewRequestValidator(skipper)
	if err != nil {
		return nil, err
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Skipper:   skipper,
		Generator: uuid.NewString,
	}))
	e.Use(WithSkipper(skipper, echozap.ZapLogger(logger)))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Skipper: skipper,
		Timeout: ServerTimeoutAmount,
	}))
	e.Use(requestValidator)

	e.HTTPErrorHandler = errors.NewHTTPErrorHandler(logger.Sugar())

	e.GET("/ready", healthCheck.Ready)
	RegisterHandlers(e, handler)

	return e, nil
}

func NewConfig() (*config.Config, error) {
	cfg := config.New()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("could not load service configuration: %w", err)
	}
	return cfg, nil
}

func NewResolver(cfg *config.Config) (*localdate.Resolver, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return localdate.NewResolver(loc, cfg.TimezoneCacheSize)
}

// Dependencies is the service graph shared by the server and the command line tools.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Suggar,
			NewConfig,
			store.NewConfig,
			store.NewClient,
			store.NewDatabase,
			store.NewReadSession,
			entries.NewRepository,
			flags.NewConfig,
			flags.NewDetector,
			NewResolver,
			analytics.SettingsFromConfig,
			analytics.NewEngine,
			analytics.SystemClock,
			analytics.NewService,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func MainLoop() {
	fx.New(
		append(Dependencies(),
			fx.Invoke(SetReady),
			fx.Invoke(Start),
		)...,
	).Run()
}
