package pbclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cscipb/pakbus/transport"
)

func TestConfigValidRequiresHost(t *testing.T) {
	cfg := Config{}
	err := cfg.Valid()
	require.Error(t, err)
}

func TestConfigValidAppliesDefaults(t *testing.T) {
	cfg := Config{Host: "192.168.1.10"}
	require.NoError(t, cfg.Valid())

	assert.Equal(t, transport.DefaultPort, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint16(512), cfg.Swath)
	assert.Equal(t, 100*time.Millisecond, cfg.ClockMinAdjust)
	assert.Equal(t, 3*time.Second, cfg.ClockMaxAdjust)
}

func TestConfigValidRejectsOutOfRangeSwath(t *testing.T) {
	cfg := Config{Host: "dataloggerhost", Swath: 5000}
	err := cfg.Valid()
	require.Error(t, err)
}

func TestConfigValidRejectsOutOfRangeTimeouts(t *testing.T) {
	cfg := Config{Host: "dataloggerhost", ConnectTimeout: 500 * time.Millisecond}
	require.Error(t, cfg.Valid())

	cfg = Config{Host: "dataloggerhost", RequestTimeout: 200 * time.Second}
	require.Error(t, cfg.Valid())
}

func TestConfigValidNilReceiver(t *testing.T) {
	var cfg *Config
	require.Error(t, cfg.Valid())
}

func TestConfigValidLeavesExplicitValuesAlone(t *testing.T) {
	cfg := Config{
		Host:           "dataloggerhost",
		Port:           7000,
		ConnectTimeout: 10 * time.Second,
		RequestTimeout: 2 * time.Second,
		Swath:          128,
	}
	require.NoError(t, cfg.Valid())
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint16(128), cfg.Swath)
}
