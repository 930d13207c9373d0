package pbmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cscipb/pakbus/pbtype"
)

func TestDecodeProgStatSuccess(t *testing.T) {
	types := []pbtype.Type{
		pbtype.ASCIIZ, pbtype.UInt2, pbtype.ASCIIZ, pbtype.ASCIIZ,
		pbtype.Byte, pbtype.ASCIIZ, pbtype.UInt2, pbtype.NSec, pbtype.ASCIIZ,
	}
	values := []interface{}{
		"OS27", uint16(0x1234), "12345", "PowerUp.CR1",
		byte(2), "MyProgram.CR1", uint16(0x5678),
		pbtype.TimePair{Sec: 100, Tick: 0}, "No errors",
	}
	encoded, err := pbtype.Encode(types, values)
	require.NoError(t, err)

	body := append([]byte{0x00}, encoded...)
	stat, err := DecodeProgStat(body)
	require.NoError(t, err)
	assert.Equal(t, byte(0), stat.RespCode)
	assert.Equal(t, "OS27", stat.OSVer)
	assert.Equal(t, "MyProgram.CR1", stat.ProgName)
	assert.Equal(t, uint16(0x5678), stat.ProgSig)
	assert.Equal(t, "No errors", stat.CompResult)
}

func TestDecodeProgStatFailureStopsAtRespCode(t *testing.T) {
	stat, err := DecodeProgStat([]byte{0x03})
	require.NoError(t, err)
	assert.Equal(t, byte(0x03), stat.RespCode)
	assert.Empty(t, stat.OSVer)
}
