package main

import (
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"microbus/internal/frameworkconfig"
	"microbus/logger"
)

// runRun loads the framework config, applies any --profile override, and
// runs the fx graph (logger, Sentry, demo registry, app controller) until
// SIGINT/SIGTERM, mirroring runner.go's signal-driven shutdown but through
// fx's own Start/Done/Stop cycle rather than a hand-rolled signal.Notify
// loop.
func runRun(opts *options) int {
	cfg, err := frameworkconfig.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Profile != "" {
		cfg.Profile = opts.Profile
	}

	fxApp := fx.New(
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg),
		module,
	)

	fxApp.Run()

	if err := fxApp.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func createFxLogger(cfg *frameworkconfig.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stdout}
		}

		return fxevent.NopLogger
	}
}
