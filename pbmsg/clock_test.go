package pbmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cscipb/pakbus/pbframe"
	"github.com/cscipb/pakbus/pbtype"
)

func TestClockCmdEncodesAdjustmentAsRawDelta(t *testing.T) {
	pkt := ClockCmd(0x001, 0x002, 0x01, 0x0000, pbtype.TimePair{Sec: -3, Tick: 0})
	body := pkt[pbframe.HeaderSize:]
	require.Len(t, body, 2+2+4+4)
	assert.Equal(t, []byte{msgClockCmd, 0x01, 0x00, 0x00}, body[:4])
	assert.Equal(t, uint32(0xFFFFFFFD), uint32(body[4])<<24|uint32(body[5])<<16|uint32(body[6])<<8|uint32(body[7]))
}

func TestDecodeClockResponse(t *testing.T) {
	body := []byte{0x00, 0x00, 0x00, 0x00, 0x64, 0x00, 0x00, 0x00, 0x00}
	resp, err := DecodeClockResponse(body)
	require.NoError(t, err)
	assert.Equal(t, byte(0), resp.RespCode)
	assert.Equal(t, int32(100), resp.Time.Sec)
}
