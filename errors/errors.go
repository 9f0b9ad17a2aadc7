// Package errors holds the sentinel errors that make up the bus's error
// taxonomy. They are kinds, not concrete types: callers compare with
// errors.Is/As, never by string.
package errors

import "errors"

var (
	// ErrStartFailed is returned by App.Start when at least one component's
	// init failed or a required config was missing.
	ErrStartFailed = errors.New("app start aborted: init/build failed")

	// ErrInitFailed wraps a component's init error before it is surfaced
	// through the startup barrier's failed flag.
	ErrInitFailed = errors.New("component init failed")

	// ErrMissingConfig is returned when an init function asks the config
	// store for a type that was never put there.
	ErrMissingConfig = errors.New("required config type not found")

	// ErrDowncastMismatch indicates a dynamic publish saw a payload whose
	// runtime type did not match the subscriber index entry it was routed
	// to. This is a programming error in caller code, not a runtime
	// condition to recover from.
	ErrDowncastMismatch = errors.New("downcast mismatch in dynamic publish")

	// ErrHandlerError marks an error returned by a handle/active/stop
	// function. It is logged and swallowed; it never terminates a worker.
	ErrHandlerError = errors.New("handler returned error")

	// ErrNoComponents is returned by App.Start when no component has been
	// registered.
	ErrNoComponents = errors.New("no components registered")

	// ErrInvalidFrameworkConfig wraps any failure to load or validate the
	// framework-level configuration file.
	ErrInvalidFrameworkConfig = errors.New("invalid framework configuration")
)

// As, Is and New are re-exported so callers never need to import the
// standard library errors package alongside this one.
var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
