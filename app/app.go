// Package app implements the application controller: the entry point that
// owns the bus, accumulates business configuration and component
// declarations before start, and drives every component through its
// lifecycle as one cooperative unit.
//
// Configuration is only accepted before Start; starting with zero
// registered components is an explicit error; Stop is unilateral, with
// no retry or force-kill of a hung component.
package app

import (
	"fmt"
	"sync"

	"microbus/barrier"
	"microbus/bus"
	"microbus/component"
	"microbus/config"
	microerrors "microbus/errors"
	"microbus/logger"
	"microbus/stopsignal"
)

// App is the application controller. The zero value is not usable; build
// one with New.
type App struct {
	mu sync.Mutex

	bus        *bus.Bus
	cfgBuilder *config.Builder
	specs      []component.Spec
	log        logger.Logger

	started bool
	stop    *stopsignal.Flag
	barrier *barrier.StartupBarrier
	wg      sync.WaitGroup
}

// New constructs an App whose bus uses queueCapacity as the default
// channel capacity for every subscription.
func New(queueCapacity int, log logger.Logger) *App {
	if log == nil {
		log = logger.Noop()
	}

	log = log.WithComponent("APP")

	return &App{
		bus:        bus.New(queueCapacity, log),
		cfgBuilder: config.NewBuilder(log),
		log:        log,
	}
}

// AddComponent registers a component declaration. Order of registration
// has no runtime meaning beyond log ordering: every component starts
// concurrently and is gated on the same startup barrier.
func (a *App) AddComponent(spec component.Spec) *App {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.specs = append(a.specs, spec)

	return a
}

// Configure stores a business configuration value of type T, to be read
// back by components via InitWithConfig. Calling Configure after Start
// is a no-op, logged as a warning.
func Configure[T any](a *App, cfg T) *App {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		a.log.Warn().Msg("Configure called after Start; ignoring")
		return a
	}

	config.Put(a.cfgBuilder, cfg)

	return a
}

// Start freezes configuration, builds the startup barrier, and spawns one
// task per registered component, then waits on the barrier. If any
// component fails to start, Start stops the rest and returns
// ErrStartFailed wrapping the cause. On success it seals the bus — safe
// at this point because every component arrives at the barrier only
// after completing its own subscribe phase, so a released barrier means
// every subscription already exists. It returns ErrNoComponents if
// nothing was registered, and is idempotent once started.
func (a *App) Start() error {
	a.mu.Lock()

	if a.started {
		a.mu.Unlock()
		return nil
	}

	if len(a.specs) == 0 {
		a.mu.Unlock()
		return fmt.Errorf("%w: %w", microerrors.ErrStartFailed, microerrors.ErrNoComponents)
	}

	store := a.cfgBuilder.Freeze()
	specs := append([]component.Spec(nil), a.specs...)

	a.barrier = barrier.New(len(specs), a.log)
	a.stop = stopsignal.New()
	a.started = true

	stop := a.stop
	bar := a.barrier

	a.mu.Unlock()

	for _, spec := range specs {
		spec := spec

		rc := &component.Context{
			Bus:     a.bus,
			Stop:    stop,
			Barrier: bar,
			Config:  store,
		}

		a.wg.Add(1)

		go func() {
			defer a.wg.Done()

			if err := component.Run(spec, rc, a.log); err != nil {
				a.log.Error().Str("component", spec.Name).Err(err).Msg("component exited with error")
			}
		}()
	}

	if failed, cause := bar.WaitAll(); failed {
		a.Stop()
		return fmt.Errorf("%w: %w", microerrors.ErrStartFailed, cause)
	}

	a.bus.Seal()

	return nil
}

// Stop triggers the shared stop signal and waits for every component task
// to return. It does not retry or force-kill a component that ignores the
// stop signal; a hung component hangs Stop, by design — see DESIGN.md.
func (a *App) Stop() {
	a.mu.Lock()

	if !a.started {
		a.mu.Unlock()
		return
	}

	stop := a.stop
	a.mu.Unlock()

	stop.Trigger()
	a.wg.Wait()

	a.mu.Lock()
	a.started = false
	a.mu.Unlock()
}

// BusHandle exposes the application's bus, e.g. for an out-of-band
// subscriber like the inspector TUI.
func (a *App) BusHandle() *bus.Bus {
	return a.bus
}

// IsStarted reports whether Start has completed without a matching Stop.
func (a *App) IsStarted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.started
}
