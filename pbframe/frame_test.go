package pbframe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStuffUnstuffRoundTrip checks §8's "unquote(quote(b)) == b and
// quote(b) contains no raw Frame byte" property across random inputs.
func TestStuffUnstuffRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		n := rng.Intn(64)
		b := make([]byte, n)
		rng.Read(b)

		stuffed := StuffBytes(b)
		for _, x := range stuffed {
			assert.NotEqual(t, Frame, x)
		}

		unstuffed, err := Unstuff(stuffed)
		require.NoError(t, err)
		assert.Equal(t, b, unstuffed)
	}
}

// TestSignatureNullifierZeroProperty checks §8's
// "signature(p || nullifier(signature(p))) == 0" property.
func TestSignatureNullifierZeroProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		n := rng.Intn(64)
		p := make([]byte, n)
		rng.Read(p)

		sig0 := Signature(p)
		null := Nullifier(sig0)
		withNull := append(append([]byte(nil), p...), null[0], null[1])
		assert.Equal(t, uint16(0), Signature(withNull))
	}
}

// TestFramingRoundTrip is §8 scenario 1: packet body 0xBD 0xBC 0x01 0x02
// quotes to 0xBC 0xDD 0xBC 0xDC 0x01 0x02, then framing + nullifier
// round-trips back to the original body via Decode.
func TestFramingRoundTrip(t *testing.T) {
	body := []byte{0xBD, 0xBC, 0x01, 0x02}
	stuffed := StuffBytes(body)
	assert.Equal(t, []byte{0xBC, 0xDD, 0xBC, 0xDC, 0x01, 0x02}, stuffed)

	framed := Encode(body)
	require.Equal(t, Frame, framed[0])
	require.Equal(t, Frame, framed[len(framed)-1])

	decoded, err := Decode(framed[1 : len(framed)-1])
	require.NoError(t, err)
	assert.Equal(t, body, decoded)
}

func TestUnstuffRejectsBareFrameByte(t *testing.T) {
	_, err := Unstuff([]byte{0x01, Frame, 0x02})
	var frameErr *ErrFrameCorrupt
	require.ErrorAs(t, err, &frameErr)
}

func TestUnstuffRejectsUnknownEscape(t *testing.T) {
	_, err := Unstuff([]byte{Quote, 0x99})
	var frameErr *ErrFrameCorrupt
	require.ErrorAs(t, err, &frameErr)
}

func TestDecodeRejectsNonzeroSignature(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x02, 0x03, 0x04})
	var frameErr *ErrFrameCorrupt
	require.ErrorAs(t, err, &frameErr)
}
