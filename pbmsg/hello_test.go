package pbmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cscipb/pakbus/pbframe"
)

// TestHelloCmdWireBody is §8 scenario 3's body assertion: built with
// DstNodeId=0x001, SrcNodeId=0x002, IsRouter=0, HopMetric=2,
// VerifyIntv=1800, the body begins 09 TN 00 02 07 08 where TN is the
// transaction byte. (The scenario's literal header words are not
// asserted here — see DESIGN.md for why they don't match this module's
// header packing, which instead follows original_source/python/pakbus.py
// exactly.)
func TestHelloCmdWireBody(t *testing.T) {
	pkt := HelloCmd(0x001, 0x002, 0x42, 0, 2, 1800)
	require.Greater(t, len(pkt), pbframe.HeaderSize)

	body := pkt[pbframe.HeaderSize:]
	assert.Equal(t, []byte{0x09, 0x42, 0x00, 0x02, 0x07, 0x08}, body)
}

func TestHelloCmdLinkStateAndExpMoreCode(t *testing.T) {
	pkt := HelloCmd(0x001, 0x002, 0x01, 0, 0, 0)
	hdr, err := pbframe.UnpackHeader(pkt)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x9), hdr.LinkState)
	assert.Equal(t, uint8(0x1), hdr.ExpMoreCode)
}

func TestByeCmdLinkStateAndExpMoreCode(t *testing.T) {
	pkt := ByeCmd(0x001, 0x002)
	hdr, err := pbframe.UnpackHeader(pkt)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xB), hdr.LinkState)
	assert.Equal(t, uint8(0x0), hdr.ExpMoreCode)
}

func TestDecodeHelloRoundTrip(t *testing.T) {
	pkt := HelloResponsePacket(0x001, 0x002, 0x07, 1, 3, 900)
	body := pkt[pbframe.HeaderSize+2:] // skip MsgType/TranNbr preamble

	resp, err := DecodeHello(0x07, body)
	require.NoError(t, err)
	assert.Equal(t, byte(1), resp.IsRouter)
	assert.Equal(t, byte(3), resp.HopMetric)
	assert.Equal(t, uint16(900), resp.VerifyIntv)
}

func TestDecodePleaseWait(t *testing.T) {
	pw, err := DecodePleaseWait([]byte{0x1A, 0x00, 0x1E})
	require.NoError(t, err)
	assert.Equal(t, byte(0x1A), pw.CmdMsgType)
	assert.Equal(t, uint16(30), pw.WaitSec)
}
