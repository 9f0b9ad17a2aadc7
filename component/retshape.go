package component

import (
	"microbus/bus"
)

// Return is the common interface for every value a component's init,
// handler, active, or stop function can hand back to the runtime. The
// runtime calls publish exactly once per invocation (except VecErased,
// which fans out internally) to auto-publish whatever the function
// produced.
type Return interface {
	publish(b *bus.Bus) error
}

// Unit returns nothing and publishes nothing.
func Unit() Return { return unitReturn{} }

type unitReturn struct{}

func (unitReturn) publish(*bus.Bus) error { return nil }

// Err wraps a plain error with no publication. Used by functions whose
// only failure mode matters and which never publish on success either
// (the ResultUnit shape).
func Err(err error) Return { return errReturn{err} }

type errReturn struct{ err error }

func (r errReturn) publish(*bus.Bus) error { return r.err }

// Value publishes v unconditionally (the Value shape).
func Value[T any](v T) Return { return valueReturn[T]{v} }

type valueReturn[T any] struct{ v T }

func (r valueReturn[T]) publish(b *bus.Bus) error {
	bus.Publish(b, r.v)
	return nil
}

// OptionValue publishes *v when non-nil and publishes nothing otherwise
// (the Option<Value> shape).
func OptionValue[T any](v *T) Return { return optionValueReturn[T]{v} }

type optionValueReturn[T any] struct{ v *T }

func (r optionValueReturn[T]) publish(b *bus.Bus) error {
	if r.v != nil {
		bus.Publish(b, *r.v)
	}

	return nil
}

// ResultValue publishes v when err is nil, or returns err without
// publishing (the Result<Value> shape).
func ResultValue[T any](v T, err error) Return { return resultValueReturn[T]{v, err} }

type resultValueReturn[T any] struct {
	v   T
	err error
}

func (r resultValueReturn[T]) publish(b *bus.Bus) error {
	if r.err != nil {
		return r.err
	}

	bus.Publish(b, r.v)

	return nil
}

// ResultOption publishes *v when err is nil and v is non-nil, returns err
// when non-nil, and otherwise publishes nothing (the Result<Option<Value>>
// shape).
func ResultOption[T any](v *T, err error) Return { return resultOptionReturn[T]{v, err} }

type resultOptionReturn[T any] struct {
	v   *T
	err error
}

func (r resultOptionReturn[T]) publish(b *bus.Bus) error {
	if r.err != nil {
		return r.err
	}

	if r.v != nil {
		bus.Publish(b, *r.v)
	}

	return nil
}

// Erased publishes a pre-built dynamically-typed event (the Erased shape),
// for components that compute the published type at runtime.
func Erased(ev bus.ErasedEvent) Return { return erasedReturn{ev} }

type erasedReturn struct{ ev bus.ErasedEvent }

func (r erasedReturn) publish(b *bus.Bus) error {
	b.PublishErased(r.ev)
	return nil
}

// OptionErased publishes ev when non-nil (the Option<Erased> shape).
func OptionErased(ev *bus.ErasedEvent) Return { return optionErasedReturn{ev} }

type optionErasedReturn struct{ ev *bus.ErasedEvent }

func (r optionErasedReturn) publish(b *bus.Bus) error {
	if r.ev != nil {
		b.PublishErased(*r.ev)
	}

	return nil
}

// VecErased publishes every event in evs, in order. This is the one shape
// that may publish more than once per invocation — a splitter component
// fanning one input into several differently-typed outputs.
func VecErased(evs []bus.ErasedEvent) Return { return vecErasedReturn{evs} }

type vecErasedReturn struct{ evs []bus.ErasedEvent }

func (r vecErasedReturn) publish(b *bus.Bus) error {
	for _, ev := range r.evs {
		b.PublishErased(ev)
	}

	return nil
}

// AnyValue publishes v by its runtime type, discovered via reflection
// rather than a static type parameter. Go has no owned/shared (box/arc)
// distinction at the type level, so this single shape covers both an
// owned and a shared dynamically-typed publish.
func AnyValue(v any) Return { return anyReturn{v} }

type anyReturn struct{ v any }

func (r anyReturn) publish(b *bus.Bus) error {
	b.PublishAny(r.v)
	return nil
}

// OptionAny publishes v by its runtime type when present is true.
func OptionAny(present bool, v any) Return { return optionAnyReturn{present, v} }

type optionAnyReturn struct {
	present bool
	v       any
}

func (r optionAnyReturn) publish(b *bus.Bus) error {
	if r.present {
		b.PublishAny(r.v)
	}

	return nil
}

// ResultAny publishes v by its runtime type when err is nil, or returns
// err without publishing.
func ResultAny(v any, err error) Return { return resultAnyReturn{v, err} }

type resultAnyReturn struct {
	v   any
	err error
}

func (r resultAnyReturn) publish(b *bus.Bus) error {
	if r.err != nil {
		return r.err
	}

	b.PublishAny(r.v)

	return nil
}
