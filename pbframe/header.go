package pbframe

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the wire length of a packed Header: four big-endian
// 16-bit words.
const HeaderSize = 8

// Header is the PakBus link-level header record (§3): four 16-bit words
// carrying routing and protocol-selection fields.
type Header struct {
	LinkState   uint8 // 4 bits
	DstPhyAddr  uint16
	ExpMoreCode uint8 // 2 bits
	Priority    uint8 // 2 bits
	SrcPhyAddr  uint16
	HiProtoCode uint8 // 4 bits: 0x0 PakCtrl, 0x1 BMP5
	DstNodeId   uint16
	HopCnt      uint8 // 4 bits
	SrcNodeId   uint16
}

// NewHeader fills in the common case where the physical address equals the
// node ID (the reference behaviour when the caller doesn't route through
// an intermediate PakBus node).
func NewHeader(dstNodeId, srcNodeId uint16, hiProtoCode uint8) Header {
	return Header{
		LinkState:   0xA,
		DstPhyAddr:  dstNodeId,
		ExpMoreCode: 0x2,
		Priority:    0x1,
		SrcPhyAddr:  srcNodeId,
		HiProtoCode: hiProtoCode,
		DstNodeId:   dstNodeId,
		HopCnt:      0x0,
		SrcNodeId:   srcNodeId,
	}
}

// Pack serialises h into its four-word big-endian wire form.
func (h Header) Pack() []byte {
	b := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(b[0:2], uint16(h.LinkState&0xF)<<12|(h.DstPhyAddr&0xFFF))
	binary.BigEndian.PutUint16(b[2:4], uint16(h.ExpMoreCode&0x3)<<14|uint16(h.Priority&0x3)<<12|(h.SrcPhyAddr&0xFFF))
	binary.BigEndian.PutUint16(b[4:6], uint16(h.HiProtoCode&0xF)<<12|(h.DstNodeId&0xFFF))
	binary.BigEndian.PutUint16(b[6:8], uint16(h.HopCnt&0xF)<<12|(h.SrcNodeId&0xFFF))
	return b
}

// UnpackHeader reverses Pack.
func UnpackHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("pbframe: header too short: need %d bytes, have %d", HeaderSize, len(b))
	}
	w0 := binary.BigEndian.Uint16(b[0:2])
	w1 := binary.BigEndian.Uint16(b[2:4])
	w2 := binary.BigEndian.Uint16(b[4:6])
	w3 := binary.BigEndian.Uint16(b[6:8])
	return Header{
		LinkState:   uint8(w0 >> 12 & 0xF),
		DstPhyAddr:  w0 & 0xFFF,
		ExpMoreCode: uint8(w1 >> 14 & 0x3),
		Priority:    uint8(w1 >> 12 & 0x3),
		SrcPhyAddr:  w1 & 0xFFF,
		HiProtoCode: uint8(w2 >> 12 & 0xF),
		DstNodeId:   w2 & 0xFFF,
		HopCnt:      uint8(w3 >> 12 & 0xF),
		SrcNodeId:   w3 & 0xFFF,
	}, nil
}
