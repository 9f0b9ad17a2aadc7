package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/fx"

	"microbus/app"
	"microbus/internal/frameworkconfig"
	"microbus/internal/inspector"
)

// runInspect starts the same fx graph as run, then attaches the inspector
// TUI to the application's bus in the foreground. The TUI owns the
// terminal until the user quits, at which point the app is stopped the
// same way run.go would stop it on a signal.
func runInspect(opts *options) int {
	cfg, err := frameworkconfig.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Profile != "" {
		cfg.Profile = opts.Profile
	}

	var a *app.App

	fxApp := fx.New(
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg),
		module,
		fx.Populate(&a),
	)

	ctx := context.Background()

	// Subscribe before starting the app: once Start succeeds it seals the
	// bus, and a subscription taken out afterward would be permanently
	// empty.
	m := inspector.New(a.BusHandle())

	if err := fxApp.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	err = inspector.RunModel(m)

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if stopErr := fxApp.Stop(stopCtx); stopErr != nil {
		fmt.Fprintf(os.Stderr, "Error stopping: %v\n", stopErr)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}
