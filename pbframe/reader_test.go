package pbframe

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeByteSource feeds a fixed byte slice one Recv(1) at a time.
type fakeByteSource struct {
	buf []byte
	off int
}

func (f *fakeByteSource) Recv(n int) ([]byte, error) {
	if f.off >= len(f.buf) {
		return nil, io.EOF
	}
	end := f.off + n
	if end > len(f.buf) {
		end = len(f.buf)
	}
	b := f.buf[f.off:end]
	f.off = end
	return b, nil
}

func TestFrameReaderReadsOnePacket(t *testing.T) {
	body := []byte{0x01, 0x02, 0x03}
	framed := Encode(body)

	src := &fakeByteSource{buf: framed}
	r := NewFrameReader(src)

	got, err := r.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, body, got)
}

func TestFrameReaderSkipsBackToBackDelimiters(t *testing.T) {
	body1 := []byte{0x01}
	body2 := []byte{0x02}
	// Two frames back to back: the trailing Frame of the first is
	// immediately followed by the leading Frame of the second.
	stream := append(Encode(body1), Encode(body2)...)

	src := &fakeByteSource{buf: stream}
	r := NewFrameReader(src)

	got1, err := r.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, body1, got1)

	got2, err := r.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, body2, got2)
}
