package component

import (
	"context"
	"fmt"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/looplab/fsm"

	"microbus/bus"
	microerrors "microbus/errors"
	"microbus/logger"
)

// Phase names a component can be observed in, published as part of every
// LifecycleEvent. Waiting(k) from the startup barrier is not a component
// phase; it lives entirely inside the barrier package.
const (
	PhaseConstruct = "construct"
	PhaseInit      = "init"
	PhaseSubscribe = "subscribe"
	PhaseBarrier   = "barrier"
	PhaseOnce      = "once"
	PhaseRunning   = "running"
	PhaseStopping  = "stopping"
	PhaseStopped   = "stopped"
	PhaseFailed    = "failed"
)

// LifecycleEvent is published on the bus at every phase transition of
// every running component. It is an ordinary bus message: subscribing to
// it (for the inspector, or for a test asserting on startup order)
// requires no special access beyond bus.Subscribe[LifecycleEvent].
type LifecycleEvent struct {
	Component string
	Phase     string
	Err       error
}

func newPhaseMachine(component string, rc *Context) *fsm.FSM {
	events := fsm.Events{
		{Name: "init", Src: []string{PhaseConstruct}, Dst: PhaseInit},
		{Name: "subscribe", Src: []string{PhaseInit}, Dst: PhaseSubscribe},
		{Name: "barrier", Src: []string{PhaseSubscribe}, Dst: PhaseBarrier},
		{Name: "once", Src: []string{PhaseBarrier}, Dst: PhaseOnce},
		{Name: "run", Src: []string{PhaseOnce}, Dst: PhaseRunning},
		{Name: "stop", Src: []string{PhaseRunning, PhaseOnce, PhaseBarrier}, Dst: PhaseStopping},
		{Name: "stopped", Src: []string{PhaseStopping}, Dst: PhaseStopped},
		{
			Name: "fail",
			Src: []string{
				PhaseConstruct, PhaseInit, PhaseSubscribe, PhaseBarrier, PhaseOnce, PhaseRunning, PhaseStopping,
			},
			Dst: PhaseFailed,
		},
	}

	callbacks := fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			if rc.Bus == nil {
				return
			}

			var err error
			if len(e.Args) > 0 {
				err, _ = e.Args[0].(error)
			}

			bus.Publish(rc.Bus, LifecycleEvent{Component: component, Phase: e.Dst, Err: err})
		},
	}

	return fsm.NewFSM(PhaseConstruct, events, callbacks)
}

// Run carries one component instance through construction, init,
// subscribe, the startup barrier, once-actives, steady state, and stop.
// It blocks until the component's handler and active workers have all
// exited.
//
// A non-nil return means init, subscribe, or the barrier itself failed;
// the caller (the application controller) is responsible for treating
// that as a failed start. Failure during steady state or stop is logged
// and does not propagate — by the time workers are running the component
// has already started successfully.
func Run(spec Spec, rc *Context, log logger.Logger) error {
	if log == nil {
		log = logger.Noop()
	}

	log = log.WithComponent(spec.Name)

	rc = rc.Fork()
	rc.Component = spec.Name

	machine := newPhaseMachine(spec.Name, rc)
	self := spec.New()

	fail := func(err error) error {
		_ = machine.Event(context.Background(), "fail", err)
		log.Error().Err(err).Msg("component startup failed")
		rc.Barrier.MarkFailed(context.Background(), err)

		return err
	}

	_ = machine.Event(context.Background(), "init")

	for _, in := range spec.Inits {
		ret := invokeSafe(spec.Name, log, func() Return { return in.invoke(self, rc) })
		if err := ret.publish(rc.Bus); err != nil {
			return fail(fmt.Errorf("%w: %s: %w", microerrors.ErrInitFailed, spec.Name, err))
		}
	}

	_ = machine.Event(context.Background(), "subscribe")

	subs := make([]any, len(spec.Handlers))
	for i, h := range spec.Handlers {
		subs[i] = h.subscribe(rc.Bus)
	}

	_ = machine.Event(context.Background(), "barrier")
	rc.Barrier.Arrive(context.Background())

	if failed, cause := rc.Barrier.WaitAll(); failed {
		_ = machine.Event(context.Background(), "fail", cause)
		return cause
	}

	_ = machine.Event(context.Background(), "once")

	for _, a := range spec.Actives {
		if a.Kind != ActiveOnce {
			continue
		}

		ret := invokeSafe(spec.Name, log, func() Return { return a.invoke(self, rc) })
		onReturnLogged(spec.Name, log, rc.Bus, ret)
	}

	_ = machine.Event(context.Background(), "run")

	var wg sync.WaitGroup

	stopCh := rc.Stop.C()

	for i, h := range spec.Handlers {
		wg.Add(1)

		sub := subs[i]
		handler := h

		go func() {
			defer wg.Done()
			defer recoverPanic(spec.Name, log)

			handler.worker(self, rc, sub, stopCh, func(ret Return) {
				onReturnLogged(spec.Name, log, rc.Bus, ret)
			})
		}()
	}

	for _, a := range spec.Actives {
		if a.Kind != ActiveLoop {
			continue
		}

		active := a

		wg.Add(1)

		go func() {
			defer wg.Done()
			defer recoverPanic(spec.Name, log)

			for {
				select {
				case <-stopCh:
					return
				default:
				}

				ret := invokeSafe(spec.Name, log, func() Return { return active.invoke(self, rc) })
				onReturnLogged(spec.Name, log, rc.Bus, ret)
			}
		}()
	}

	rc.Stop.WaitUntilSet()
	_ = machine.Event(context.Background(), "stop")

	for _, s := range spec.Stops {
		ret := invokeSafe(spec.Name, log, func() Return { return s.invoke(self, rc) })
		onReturnLogged(spec.Name, log, rc.Bus, ret)
	}

	wg.Wait()
	_ = machine.Event(context.Background(), "stopped")

	return nil
}

func invokeSafe(name string, log logger.Logger, fn func() Return) (ret Return) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			log.Error().Msgf("component %s panicked: %v", name, r)

			ret = Err(fmt.Errorf("%s: panic: %v", name, r))
		}
	}()

	return fn()
}

func recoverPanic(name string, log logger.Logger) {
	if r := recover(); r != nil {
		sentry.CurrentHub().Recover(r)
		log.Error().Msgf("component %s worker panicked: %v", name, r)
	}
}

func onReturnLogged(name string, log logger.Logger, b *bus.Bus, ret Return) {
	if ret == nil {
		return
	}

	if err := ret.publish(b); err != nil {
		log.Warn().Err(fmt.Errorf("%w: %w", microerrors.ErrHandlerError, err)).Msgf("%s returned an error", name)
	}
}
