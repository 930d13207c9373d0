// Package pbmsg is the PakBus/BMP5 message catalogue: a request builder
// and/or response decoder for each message type in §4.4, keyed jointly on
// (Proto, MsgType) — the source has two distinct MsgType 0x09 entries
// (Hello command and Collect-Data command) disambiguated only by Proto,
// so dispatch must never key on MsgType alone (§9).
package pbmsg

import (
	"encoding/binary"
	"fmt"

	"github.com/cscipb/pakbus/pbframe"
)

// Proto is the PakBus HiProtoCode: which higher-level protocol a message
// body belongs to.
type Proto uint8

const (
	PakCtrl Proto = 0x0
	BMP5    Proto = 0x1
)

func (p Proto) String() string {
	switch p {
	case PakCtrl:
		return "PakCtrl"
	case BMP5:
		return "BMP5"
	default:
		return fmt.Sprintf("Proto<%d>", uint8(p))
	}
}

// Key identifies a message catalogue entry.
type Key struct {
	Proto   Proto
	MsgType byte
}

// The MsgType codes this catalogue covers (§4.4).
const (
	msgHelloCmd      = 0x09
	msgHelloResp     = 0x89
	msgByeCmd        = 0x0D
	msgGetSetCmd     = 0x0F
	msgGetSetResp    = 0x8F
	msgSetSetCmd     = 0x10
	msgSetSetResp    = 0x90
	msgDevCtrlCmd    = 0x13
	msgDevCtrlResp   = 0x93
	msgClockCmd      = 0x17
	msgClockResp     = 0x97
	msgProgStatCmd   = 0x18
	msgProgStatResp  = 0x98
	msgGetValuesCmd  = 0x1A
	msgGetValuesResp = 0x9A
	msgFileDownCmd   = 0x1C
	msgFileDownResp  = 0x9C
	msgFileUpCmd     = 0x1D
	msgFileUpResp    = 0x9D
	msgFileCtrlCmd   = 0x1E
	msgFileCtrlResp  = 0x9E
	msgCollectCmd    = 0x09 // BMP5, distinct from msgHelloCmd by Proto
	msgCollectResp   = 0x89
	msgPleaseWait    = 0xA1
)

// newHeader builds the header for a request, applying the defaults named
// in §4.4 (ExpMoreCode=0x2, LinkState=0xA, Priority=0x1, HopCnt=0x0, with
// physical addresses defaulting to the logical node ids), so individual
// builders only override what differs (Hello, Bye).
func newHeader(dstNodeId, srcNodeId uint16, proto Proto) pbframe.Header {
	return pbframe.NewHeader(dstNodeId, srcNodeId, uint8(proto))
}

func putUint16(dst []byte, v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return append(dst, b...)
}

func putUint32(dst []byte, v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return append(dst, b...)
}

func putASCIIZ(dst []byte, s string) []byte {
	return append(append(dst, s...), 0x00)
}

// need returns an error naming field if buf has fewer than n bytes left.
func need(buf []byte, n int, field string) error {
	if len(buf) < n {
		return fmt.Errorf("pbmsg: %s: need %d bytes, have %d", field, n, len(buf))
	}
	return nil
}
