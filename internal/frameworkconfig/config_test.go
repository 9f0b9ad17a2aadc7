package frameworkconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Default_HasSaneValues(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 64, cfg.QueueCapacity)
	assert.Equal(t, "*", cfg.Profile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.validate())
}

func Test_Load_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Load_ValidYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "microbus.yaml")

	yaml := "queue_capacity: 128\nprofile: producer,collector\nlogging:\n  level: debug\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.QueueCapacity)
	assert.Equal(t, "producer,collector", cfg.Profile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func Test_Load_MalformedYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "microbus.yaml")

	require.NoError(t, os.WriteFile(path, []byte("queue_capacity: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func Test_Load_InvalidQueueCapacityFailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "microbus.yaml")

	require.NoError(t, os.WriteFile(path, []byte("queue_capacity: 0\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func Test_WatchForChanges_SurvivesWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "microbus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queue_capacity: 8\n"), 0o600))

	w, err := WatchForChanges(path, nil)
	require.NoError(t, err)

	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("queue_capacity: 16\n"), 0o600))

	time.Sleep(50 * time.Millisecond)
}
