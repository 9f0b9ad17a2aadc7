package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"

	"microbus/app"
	"microbus/demo"
	"microbus/internal/frameworkconfig"
	"microbus/logger"
)

// module wires framework config, logger, Sentry, the demo component
// registry and the application controller into one fx graph.
var module = fx.Options(
	fx.Provide(newLogger, newApp),
	fx.Invoke(initSentry, registerLifecycle),
)

func newLogger(cfg *frameworkconfig.Config) logger.Logger {
	return logger.New(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Version: version})
}

func newApp(cfg *frameworkconfig.Config, log logger.Logger) *app.App {
	a := app.New(cfg.QueueCapacity, log)

	for _, spec := range demo.Registry(cfg.Profile, log) {
		a.AddComponent(spec)
	}

	return a
}

// initSentry configures the process-wide Sentry hub used by the component
// runtime's panic recovery. An empty DSN yields Sentry's own no-op client,
// so this is safe to call unconditionally.
func initSentry(cfg *frameworkconfig.Config, log logger.Logger) error {
	if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Release: version}); err != nil {
		log.Warn().Err(err).Msg("sentry init failed; panics will only be logged")
	}

	return nil
}

func registerLifecycle(lc fx.Lifecycle, a *app.App) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return a.Start()
		},
		OnStop: func(ctx context.Context) error {
			a.Stop()
			sentry.Flush(2 * time.Second)

			return nil
		},
	})
}
