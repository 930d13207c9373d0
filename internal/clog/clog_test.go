package clog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingProvider struct {
	lastLevel, lastMsg string
}

func (p *recordingProvider) Critical(format string, v ...interface{}) { p.lastLevel, p.lastMsg = "critical", format }
func (p *recordingProvider) Error(format string, v ...interface{})    { p.lastLevel, p.lastMsg = "error", format }
func (p *recordingProvider) Warn(format string, v ...interface{})     { p.lastLevel, p.lastMsg = "warn", format }
func (p *recordingProvider) Debug(format string, v ...interface{})    { p.lastLevel, p.lastMsg = "debug", format }

func TestDisabledByDefault(t *testing.T) {
	c := New()
	rec := &recordingProvider{}
	c.SetLogProvider(rec)

	c.Error("should not be recorded")
	assert.Empty(t, rec.lastMsg)
}

func TestLogModeEnablesOutput(t *testing.T) {
	c := New()
	rec := &recordingProvider{}
	c.SetLogProvider(rec)
	c.LogMode(true)

	c.Warn("discarded frame from %d", 5)
	assert.Equal(t, "warn", rec.lastLevel)
	assert.Equal(t, "discarded frame from %d", rec.lastMsg)

	c.LogMode(false)
	rec.lastMsg = ""
	c.Warn("should not be recorded")
	assert.Empty(t, rec.lastMsg)
}

func TestSetLogProviderIgnoresNil(t *testing.T) {
	c := New()
	c.SetLogProvider(nil)
	c.LogMode(true)
	// the default logrus-backed provider is still installed; this just
	// exercises the no-op path without asserting on its output.
	c.Debug("still backed by a provider")
}
