// Package component implements the component runtime: the Context handle
// injected into framework-invoked functions, the Return (RetShape)
// auto-publish dispatch, the generic Builder registration API used to
// declare a component's lifecycle functions, and the per-component task
// that carries one component through construction, init, subscribe,
// startup barrier, once-actives, steady state, and stop.
//
// There is no code generation or reflection-driven trait dispatch here,
// by design: Go has no proc-macro equivalent, so every RetShape is a
// small concrete type behind the Return interface (see retshape.go) and
// every registration is an explicit builder call instead of an attribute
// on a struct.
package component

import (
	"fmt"
	"reflect"

	"microbus/bus"
	"microbus/config"
	microerrors "microbus/errors"
)

// ActiveKind distinguishes a steady-state active loop from a once-only
// active.
type ActiveKind int

const (
	// ActiveLoop runs repeatedly after the startup barrier releases,
	// until the stop signal fires.
	ActiveLoop ActiveKind = iota
	// ActiveOnce runs exactly once, after the startup barrier releases,
	// before the component enters steady state.
	ActiveOnce
)

// InitSpec is one registered init function.
type InitSpec struct {
	invoke func(self any, ctx *Context) Return
}

// StopSpec is one registered stop function.
type StopSpec struct {
	invoke func(self any, ctx *Context) Return
}

// HandlerSpec is one registered message handler: its subscribed type, how
// to subscribe before the barrier, and how to run the receive loop after
// it.
type HandlerSpec struct {
	MessageType reflect.Type
	subscribe   func(b *bus.Bus) any
	worker      func(self any, ctx *Context, sub any, stop <-chan struct{}, onReturn func(Return))
}

// ActiveSpec is one registered active function, once or looping.
type ActiveSpec struct {
	Kind   ActiveKind
	invoke func(self any, ctx *Context) Return
}

// Spec is the fully type-erased description of a component, ready to be
// handed to the runtime. It is produced by calling Build on a Builder.
type Spec struct {
	Name     string
	New      func() any
	Inits    []InitSpec
	Handlers []HandlerSpec
	Actives  []ActiveSpec
	Stops    []StopSpec
}

// Builder accumulates a component's lifecycle functions under a single
// concrete type C, then erases them into a Spec. Registration order is
// preserved within each phase (inits run in declared order; so do stops).
type Builder[C any] struct {
	spec Spec
}

// NewBuilder starts a component declaration named name, constructed by
// calling newFn.
func NewBuilder[C any](name string, newFn func() *C) *Builder[C] {
	return &Builder[C]{
		spec: Spec{
			Name: name,
			New:  func() any { return newFn() },
		},
	}
}

// Init registers a plain init function, called once before the component
// subscribes to anything.
func Init[C any](b *Builder[C], fn func(c *C) Return) *Builder[C] {
	b.spec.Inits = append(b.spec.Inits, InitSpec{
		invoke: func(self any, _ *Context) Return { return fn(self.(*C)) },
	})

	return b
}

// InitCtx registers an init function that also receives the component
// Context (bus, stop, barrier, config handles).
func InitCtx[C any](b *Builder[C], fn func(c *C, ctx *Context) Return) *Builder[C] {
	b.spec.Inits = append(b.spec.Inits, InitSpec{
		invoke: func(self any, ctx *Context) Return { return fn(self.(*C), ctx) },
	})

	return b
}

// InitWithConfig registers an init function that requires a business
// config value of type Cfg to already be present in the frozen store. A
// missing Cfg fails init with ErrMissingConfig, which the runtime treats
// as a startup failure.
func InitWithConfig[C any, Cfg any](b *Builder[C], fn func(c *C, cfg *Cfg) Return) *Builder[C] {
	return InitWithConfigCtx(b, func(c *C, _ *Context, cfg *Cfg) Return { return fn(c, cfg) })
}

// InitWithConfigCtx is InitWithConfig plus the Context.
func InitWithConfigCtx[C any, Cfg any](b *Builder[C], fn func(c *C, ctx *Context, cfg *Cfg) Return) *Builder[C] {
	b.spec.Inits = append(b.spec.Inits, InitSpec{
		invoke: func(self any, ctx *Context) Return {
			cfg, ok := config.Get[Cfg](ctx.Config)
			if !ok {
				var zero Cfg
				return Err(fmt.Errorf("%w: %T", microerrors.ErrMissingConfig, zero))
			}

			return fn(self.(*C), ctx, &cfg)
		},
	})

	return b
}

// Handle registers a message handler for messages of type T, subscribed
// before the startup barrier and run in a dedicated worker goroutine once
// once-actives have completed.
func Handle[C any, T any](b *Builder[C], fn func(c *C, msg *T) Return) *Builder[C] {
	return HandleCtx(b, func(c *C, _ *Context, msg *T) Return { return fn(c, msg) })
}

// HandleCtx is Handle plus the Context.
func HandleCtx[C any, T any](b *Builder[C], fn func(c *C, ctx *Context, msg *T) Return) *Builder[C] {
	b.spec.Handlers = append(b.spec.Handlers, HandlerSpec{
		MessageType: reflect.TypeOf((*T)(nil)).Elem(),
		subscribe: func(bb *bus.Bus) any {
			sub := bus.Subscribe[T](bb)
			return &sub
		},
		worker: func(self any, ctx *Context, subAny any, stop <-chan struct{}, onReturn func(Return)) {
			sub := subAny.(*bus.Subscription[T])
			c := self.(*C)

			for {
				select {
				case <-stop:
					return
				case msg, ok := <-sub.C():
					if !ok {
						return
					}

					onReturn(fn(c, ctx, msg))
				}
			}
		},
	})

	return b
}

// Active registers a steady-state active function: invoked repeatedly,
// once the startup barrier releases, until the stop signal fires.
func Active[C any](b *Builder[C], fn func(c *C) Return) *Builder[C] {
	return ActiveCtx(b, func(c *C, _ *Context) Return { return fn(c) })
}

// ActiveCtx is Active plus the Context.
func ActiveCtx[C any](b *Builder[C], fn func(c *C, ctx *Context) Return) *Builder[C] {
	b.spec.Actives = append(b.spec.Actives, ActiveSpec{
		Kind:   ActiveLoop,
		invoke: func(self any, ctx *Context) Return { return fn(self.(*C), ctx) },
	})

	return b
}

// Once registers a once-only active function, run exactly one time after
// the startup barrier releases, before the component enters steady state.
func Once[C any](b *Builder[C], fn func(c *C) Return) *Builder[C] {
	return OnceCtx(b, func(c *C, _ *Context) Return { return fn(c) })
}

// OnceCtx is Once plus the Context.
func OnceCtx[C any](b *Builder[C], fn func(c *C, ctx *Context) Return) *Builder[C] {
	b.spec.Actives = append(b.spec.Actives, ActiveSpec{
		Kind:   ActiveOnce,
		invoke: func(self any, ctx *Context) Return { return fn(self.(*C), ctx) },
	})

	return b
}

// Stop registers a plain stop hook, called after the stop signal fires.
// Stop hooks run as soon as the runtime sees the stop signal, without
// first waiting for handler or active workers to drain; Run waits for
// those workers only after every stop hook has returned.
func Stop[C any](b *Builder[C], fn func(c *C) Return) *Builder[C] {
	return StopCtx(b, func(c *C, _ *Context) Return { return fn(c) })
}

// StopCtx is Stop plus the Context.
func StopCtx[C any](b *Builder[C], fn func(c *C, ctx *Context) Return) *Builder[C] {
	b.spec.Stops = append(b.spec.Stops, StopSpec{
		invoke: func(self any, ctx *Context) Return { return fn(self.(*C), ctx) },
	})

	return b
}

// Build finalizes the declaration into a type-erased Spec.
func (b *Builder[C]) Build() Spec { return b.spec }
