package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trail.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.False(t, c.Cooperative())
	assert.Equal(t, -1, c.Headless.Dial)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
mode: headless
scheduling: cooperative
latch: true
headless:
  dial: 1940
  duration: 90s
monitor:
  addr: 127.0.0.1:8089
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeHeadless, c.Mode)
	assert.True(t, c.Cooperative())
	assert.True(t, c.Latch)
	assert.Equal(t, 1940, c.Headless.Dial)
	assert.Equal(t, 90*time.Second, c.Headless.Duration)
	assert.Equal(t, "127.0.0.1:8089", c.Monitor.Addr)
	assert.Equal(t, BackendSim, c.Backend, "unset keys keep defaults")
	assert.Equal(t, uint64(5), c.PollMs)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for _, body := range []string{
		"mode: fullscreen\n",
		"backend: arduino\n",
		"scheduling: threaded\n",
		"headless:\n  dial: 12345\n",
		"backend: periph\nperiph:\n  lcd_data: [GPIO5]\n",
		"mode: [\n",
	} {
		_, err := Load(writeFile(t, body))
		assert.Error(t, err, body)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	c := Default()
	c.Mode = ModeTUI
	c.Headless.Duration = 2 * time.Minute
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
