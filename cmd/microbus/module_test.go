package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microbus/internal/frameworkconfig"
	"microbus/logger"
)

func Test_NewLogger_BuildsWithoutPanicking(t *testing.T) {
	cfg := frameworkconfig.Default()

	log := newLogger(cfg)
	require.NotNil(t, log)
}

func Test_NewApp_WithProfileBuildsUnstartedApp(t *testing.T) {
	cfg := frameworkconfig.Default()
	cfg.Profile = "producer"

	a := newApp(cfg, logger.Noop())
	require.NotNil(t, a)
	assert.False(t, a.IsStarted())
}

func Test_InitSentry_EmptyDSNIsNoop(t *testing.T) {
	cfg := frameworkconfig.Default()
	cfg.Sentry.DSN = ""

	err := initSentry(cfg, logger.Noop())
	assert.NoError(t, err)
}
