package pbmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cscipb/pakbus/pbframe"
)

func TestDevConfigGetSettingsCmdOmitsRangeWhenUnset(t *testing.T) {
	pkt := DevConfigGetSettingsCmd(0x001, 0x002, 0x01, 0, 0, false)
	body := pkt[pbframe.HeaderSize:]
	assert.Equal(t, []byte{msgGetSetCmd, 0x01}, body)
}

func TestDevConfigGetSettingsCmdIncludesRange(t *testing.T) {
	pkt := DevConfigGetSettingsCmd(0x001, 0x002, 0x01, 10, 20, true)
	body := pkt[pbframe.HeaderSize:]
	assert.Equal(t, []byte{msgGetSetCmd, 0x01, 0x00, 0x0A, 0x00, 0x14}, body)
}

// TestDecodeDevConfigGetSettingsResponse decodes a successful (Outcome
// 0x01) response with DeviceType 0x10, version 1.2, and one two-byte
// setting.
func TestDecodeDevConfigGetSettingsResponse(t *testing.T) {
	body := []byte{0x01, 0x00, 0x10, 1, 2, 0x00}
	body = append(body, 0x00, 0x05, 0x00, 0x02, 0xAA, 0xBB) // one 2-byte setting
	resp, err := DecodeDevConfigGetSettingsResponse(body)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), resp.Outcome)
	assert.Equal(t, uint16(0x10), resp.DeviceType)
	assert.Equal(t, byte(1), resp.MajorVersion)
	assert.Equal(t, byte(2), resp.MinorVersion)
	require.Len(t, resp.Settings, 1)
	assert.Equal(t, uint16(5), resp.Settings[0].SettingId)
	assert.Equal(t, []byte{0xAA, 0xBB}, resp.Settings[0].Value)
}

func TestDevConfigSetSettingsCmdIncludesSecurityCode(t *testing.T) {
	pkt := DevConfigSetSettingsCmd(0x001, 0x002, 0x01, 0x1234, []Setting{
		{SettingId: 5, Value: []byte{0xAA}},
	})
	body := pkt[pbframe.HeaderSize:]
	assert.Equal(t, []byte{msgSetSetCmd, 0x01, 0x12, 0x34, 0x00, 0x05, 0x00, 0x01, 0xAA}, body)
}

func TestDevConfigControlCmdIncludesSecurityCode(t *testing.T) {
	pkt := DevConfigControlCmd(0x001, 0x002, 0x01, 0x1234, 0x04)
	body := pkt[pbframe.HeaderSize:]
	assert.Equal(t, []byte{msgDevCtrlCmd, 0x01, 0x12, 0x34, 0x04}, body)
}
