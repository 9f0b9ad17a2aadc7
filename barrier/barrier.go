// Package barrier implements the startup barrier: the synchronization
// primitive that releases once every component has completed init and
// subscribe, or marks the start attempt failed.
package barrier

import (
	"context"
	"sync"

	"github.com/looplab/fsm"

	"microbus/logger"
)

// States the barrier's underlying state machine can be in. waiting is the
// only non-terminal state; released and failed are absorbing.
const (
	StateWaiting  = "waiting"
	StateReleased = "released"
	StateFailed   = "failed"
)

const (
	eventArrive = "arrive"
	eventFail   = "fail"
)

// StartupBarrier gates once-actives and steady state on every component
// having arrived. total is fixed at construction; waiters are released
// when arrived == total or when any component marks the attempt failed.
type StartupBarrier struct {
	mu      sync.Mutex
	machine *fsm.FSM
	total   int
	arrived int
	err     error
	done    chan struct{}
	log     logger.Logger
}

// New constructs a StartupBarrier that releases once `total` components
// have arrived.
func New(total int, log logger.Logger) *StartupBarrier {
	if log == nil {
		log = logger.Noop()
	}

	b := &StartupBarrier{
		total: total,
		done:  make(chan struct{}),
		log:   log.WithComponent("BARRIER"),
	}

	b.machine = fsm.NewFSM(
		StateWaiting,
		fsm.Events{
			{Name: eventArrive, Src: []string{StateWaiting}, Dst: StateReleased},
			{Name: eventFail, Src: []string{StateWaiting}, Dst: StateFailed},
		},
		fsm.Callbacks{
			"enter_" + StateReleased: func(context.Context, *fsm.Event) {
				b.log.Info().Msgf("startup barrier released: %d/%d components arrived", b.arrived, b.total)
				close(b.done)
			},
			"enter_" + StateFailed: func(context.Context, *fsm.Event) {
				b.log.Warn().Err(b.err).Msg("startup barrier failed")
				close(b.done)
			},
		},
	)

	if total == 0 {
		b.arrive(context.Background())
	}

	return b
}

// Arrive increments the arrived count. If it reaches total the barrier
// transitions to released and wakes every waiter. A no-op once the barrier
// is already terminal.
func (b *StartupBarrier) Arrive(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.arrive(ctx)
}

func (b *StartupBarrier) arrive(ctx context.Context) {
	if b.machine.Current() != StateWaiting {
		return
	}

	b.arrived++

	if b.arrived >= b.total {
		_ = b.machine.Event(ctx, eventArrive)
	}
}

// MarkFailed transitions the barrier to failed and wakes every waiter. A
// no-op once the barrier is already terminal — the first failure wins.
func (b *StartupBarrier) MarkFailed(ctx context.Context, cause error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.machine.Current() != StateWaiting {
		return
	}

	b.err = cause
	_ = b.machine.Event(ctx, eventFail)
}

// WaitAll blocks until the barrier is terminal (released or failed) and
// reports whether it failed, along with the cause if so.
func (b *StartupBarrier) WaitAll() (failed bool, cause error) {
	<-b.done

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.machine.Current() == StateFailed, b.err
}

// Done returns a channel closed once the barrier reaches a terminal state,
// for use in select statements.
func (b *StartupBarrier) Done() <-chan struct{} {
	return b.done
}

// State reports the barrier's current state (StateWaiting, StateReleased,
// or StateFailed).
func (b *StartupBarrier) State() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.machine.Current()
}
