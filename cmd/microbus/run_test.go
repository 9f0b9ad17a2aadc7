package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx/fxevent"

	"microbus/internal/frameworkconfig"
	"microbus/logger"
)

func Test_CreateFxLogger_DebugLevelUsesConsoleLogger(t *testing.T) {
	cfg := frameworkconfig.Default()
	cfg.Logging.Level = logger.DebugLevel

	got := createFxLogger(cfg)()
	assert.IsType(t, &fxevent.ConsoleLogger{}, got)
}

func Test_CreateFxLogger_NonDebugLevelUsesNopLogger(t *testing.T) {
	cfg := frameworkconfig.Default()
	cfg.Logging.Level = logger.InfoLevel

	got := createFxLogger(cfg)()
	assert.Equal(t, fxevent.NopLogger, got)
}
