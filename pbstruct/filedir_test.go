package pbstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cscipb/pakbus/pbtype"
)

func TestParseFileDirectory(t *testing.T) {
	var raw []byte
	raw = append(raw, 1) // DirVersion

	sizeUpdate, err := pbtype.Encode([]pbtype.Type{pbtype.UInt4, pbtype.ASCIIZ}, []interface{}{uint32(1024), "2024-01-01"})
	require.NoError(t, err)

	raw = append(raw, []byte("CPU:PROG.CR1\x00")...)
	raw = append(raw, sizeUpdate...)
	raw = append(raw, 0x01, 0x00) // one attribute byte, then terminator
	raw = append(raw, 0x00)       // empty name terminates the directory

	dir, err := ParseFileDirectory(raw)
	require.NoError(t, err)
	assert.Equal(t, byte(1), dir.DirVersion)
	require.Len(t, dir.Files, 1)
	assert.Equal(t, "CPU:PROG.CR1", dir.Files[0].Name)
	assert.Equal(t, uint32(1024), dir.Files[0].Size)
	assert.Equal(t, "2024-01-01", dir.Files[0].LastUpdate)
	assert.Equal(t, []byte{0x01}, dir.Files[0].Attribute)
}

func TestParseFileDirectoryEmpty(t *testing.T) {
	dir, err := ParseFileDirectory([]byte{2, 0x00})
	require.NoError(t, err)
	assert.Equal(t, byte(2), dir.DirVersion)
	assert.Empty(t, dir.Files)
}
