package pbmsg

import "github.com/cscipb/pakbus/pbtype"

// ClockCmd builds a Clock command. Adjustment is a delta, not an absolute
// time: the source encodes it as a raw NSec pair with epoch zero, not
// through pbtype.TimeToNSec (§4.6).
func ClockCmd(dstNodeId, srcNodeId uint16, tranNbr byte, securityCode uint16, adjustment pbtype.TimePair) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, BMP5)
	body := []byte{msgClockCmd, tranNbr}
	body = putUint16(body, securityCode)
	body = putUint32(body, uint32(adjustment.Sec))
	body = putUint32(body, uint32(adjustment.Tick))
	return append(hdr.Pack(), body...)
}

// ClockResponse is the decoded Clock response body.
type ClockResponse struct {
	RespCode byte
	Time     pbtype.TimePair
}

// DecodeClockResponse decodes a Clock response body.
func DecodeClockResponse(body []byte) (ClockResponse, error) {
	var resp ClockResponse
	types := []pbtype.Type{pbtype.Byte, pbtype.NSec}
	values, _, err := pbtype.Decode(types, body, 0)
	if err != nil {
		return resp, err
	}
	resp.RespCode = values[0].(byte)
	resp.Time = values[1].(pbtype.TimePair)
	return resp, nil
}
