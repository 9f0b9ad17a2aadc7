//go:generate mockgen -source=logger.go -destination=logger_mock.go -package=logger

// Package logger wraps zerolog behind a small interface so the rest of the
// module depends on a seam, not a concrete logging library.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
	FatalLevel = "fatal"
	PanicLevel = "panic"
	TraceLevel = "trace"

	ConsoleFormat = "console"
	JSONFormat    = "json"

	TimeFormat = "02.01.2006 15:04:05"
)

// Logger is the logging surface every core package depends on.
type Logger interface {
	Debug() Event
	Info() Event
	Warn() Event
	Error() Event
	// WithComponent returns a logger that tags every event with the given
	// component name, the way each core package wants its own identity in
	// the log stream.
	WithComponent(name string) Logger
}

// Event is a single structured log line under construction.
type Event interface {
	Msg(msg string)
	Msgf(format string, v ...interface{})
	Str(key, value string) Event
	Int(key string, value int) Event
	Dur(key string, value time.Duration) Event
	Err(err error) Event
}

// Options configures a Logger built by New.
type Options struct {
	Level   string
	Format  string
	Output  io.Writer
	Version string
}

type zerologEvent struct {
	event *zerolog.Event
}

func (e *zerologEvent) Msg(msg string) { e.event.Msg(msg) }

func (e *zerologEvent) Msgf(format string, v ...interface{}) { e.event.Msgf(format, v...) }

func (e *zerologEvent) Str(key, value string) Event {
	return &zerologEvent{event: e.event.Str(key, value)}
}

func (e *zerologEvent) Int(key string, value int) Event {
	return &zerologEvent{event: e.event.Int(key, value)}
}

func (e *zerologEvent) Dur(key string, value time.Duration) Event {
	return &zerologEvent{event: e.event.Dur(key, value)}
}

func (e *zerologEvent) Err(err error) Event {
	return &zerologEvent{event: e.event.Err(err)}
}

// NoopEvent discards everything written to it.
type NoopEvent struct{}

func (n *NoopEvent) Msg(string)                       {}
func (n *NoopEvent) Msgf(string, ...interface{})      {}
func (n *NoopEvent) Str(string, string) Event         { return n }
func (n *NoopEvent) Int(string, int) Event            { return n }
func (n *NoopEvent) Dur(string, time.Duration) Event  { return n }
func (n *NoopEvent) Err(error) Event                  { return n }

// zlogger is the zerolog-backed Logger implementation.
type zlogger struct {
	log zerolog.Logger
}

// New builds a Logger from Options: RFC3339 timestamps, a console writer
// with TimeFormat unless JSON was requested, and a stacktrace marshaler
// for wrapped errors.
func New(opts Options) Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339

	level := opts.Level
	if level == "" {
		level = InfoLevel
	}

	format := opts.Format
	if format == "" {
		format = ConsoleFormat
	}

	output := opts.Output
	if output == nil {
		switch format {
		case JSONFormat:
			output = os.Stdout
		default:
			output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: TimeFormat}
		}
	}

	built := zerolog.New(output).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("version", opts.Version).
		Logger()

	return &zlogger{log: built}
}

func (l *zlogger) Debug() Event { return &zerologEvent{event: l.log.Debug()} }
func (l *zlogger) Info() Event  { return &zerologEvent{event: l.log.Info()} }
func (l *zlogger) Warn() Event  { return &zerologEvent{event: l.log.Warn()} }
func (l *zlogger) Error() Event { return &zerologEvent{event: l.log.Error()} }

func (l *zlogger) WithComponent(name string) Logger {
	return &zlogger{log: l.log.With().Str("component", name).Logger()}
}

type noopLogger struct{}

// Noop returns a Logger that discards everything, for tests and for
// callers that never configured a sink.
func Noop() Logger { return noopLogger{} }

func (noopLogger) Debug() Event             { return &NoopEvent{} }
func (noopLogger) Info() Event              { return &NoopEvent{} }
func (noopLogger) Warn() Event              { return &NoopEvent{} }
func (noopLogger) Error() Event             { return &NoopEvent{} }
func (noopLogger) WithComponent(string) Logger { return noopLogger{} }

func parseLevel(level string) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	case PanicLevel:
		return zerolog.PanicLevel
	case TraceLevel:
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}
