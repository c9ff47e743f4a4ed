package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/amethyst-live/identity/core/authflow"
	"github.com/amethyst-live/identity/core/config"
	"github.com/amethyst-live/identity/core/logger"
	"github.com/amethyst-live/identity/core/registry"
	"github.com/amethyst-live/identity/core/schema"
	"github.com/amethyst-live/identity/core/session"
	"github.com/amethyst-live/identity/core/user"
	mongodb "github.com/amethyst-live/identity/integration/database/mongo"
	"github.com/amethyst-live/identity/middleware"
)

type appConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Server      string `env:"SERVER_ID" envDefault:"identity-1"`
	MongoURL    string `env:"MONGODB_URL,required"`
	Database    string `env:"MONGODB_DATABASE" envDefault:"identity"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)

	var log *slog.Logger
	if cfg.Environment == "production" {
		log = logger.New(logger.WithProduction("identityd"))
	} else {
		log = logger.New(logger.WithDevelopment("identityd"))
	}

	reg := registry.New(registry.WithLogger(log))
	opts := &schema.Options{
		Server:     cfg.Server,
		Connection: cfg.MongoURL,
		Database:   cfg.Database,
	}

	sessions, err := session.NewSchema(ctx, reg, opts)
	if err != nil {
		log.ErrorContext(ctx, "session schema init failed", logger.Error(err))
		os.Exit(1)
	}
	users, err := user.NewSchema(ctx, reg, opts)
	if err != nil {
		log.ErrorContext(ctx, "user schema init failed", logger.Error(err))
		os.Exit(1)
	}

	var google authflow.GoogleConfig
	config.MustLoad(&google)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())

	flow := authflow.New(user.ProviderGoogle, authflow.NewGoogleClient(google),
		sessions, users, authflow.WithLogger(log))
	flow.Register(e)

	e.GET("/me", handleMe,
		middleware.SessionWithConfig(middleware.SessionConfig{
			Store:  sessions,
			Logger: log,
			Create: true,
		}),
		middleware.AuthenticateWithConfig(middleware.AuthConfig{
			Users:        users,
			Logger:       log,
			AllowSession: true,
			AllowToken:   true,
			Require:      true,
		}),
	)

	client, err := reg.Connection(ctx, "schema", cfg.MongoURL)
	if err != nil {
		log.ErrorContext(ctx, "connection lookup failed", logger.Error(err))
		os.Exit(1)
	}
	check := mongodb.Healthcheck(client)
	e.GET("/health", func(c echo.Context) error {
		if err := check(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	log.InfoContext(ctx, "listening", slog.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.ErrorContext(ctx, "server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func handleMe(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.UserFromContext(c))
}
