package pbmsg

import "github.com/cscipb/pakbus/pbtype"

// GetProgStatCmd builds a Get Programming Statistics command.
func GetProgStatCmd(dstNodeId, srcNodeId uint16, tranNbr byte, securityCode uint16) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, BMP5)
	body := []byte{msgProgStatCmd, tranNbr}
	body = putUint16(body, securityCode)
	return append(hdr.Pack(), body...)
}

// ProgStat is the decoded Get Programming Statistics response body. Every
// field past RespCode is only present when RespCode == 0 (§4.4).
type ProgStat struct {
	RespCode   byte
	OSVer      string
	OSSig      uint16
	SerialNbr  string
	PowUpProg  string
	CompState  byte
	ProgName   string
	ProgSig    uint16
	CompTime   pbtype.TimePair
	CompResult string
}

// DecodeProgStat decodes a Get Programming Statistics response body.
func DecodeProgStat(body []byte) (ProgStat, error) {
	if err := need(body, 1, "GetProgStat.RespCode"); err != nil {
		return ProgStat{}, err
	}
	stat := ProgStat{RespCode: body[0]}
	if stat.RespCode != 0 {
		return stat, nil
	}
	types := []pbtype.Type{
		pbtype.ASCIIZ, pbtype.UInt2, pbtype.ASCIIZ, pbtype.ASCIIZ,
		pbtype.Byte, pbtype.ASCIIZ, pbtype.UInt2, pbtype.NSec, pbtype.ASCIIZ,
	}
	values, _, err := pbtype.Decode(types, body[1:], 0)
	if err != nil {
		return stat, err
	}
	stat.OSVer = values[0].(string)
	stat.OSSig = values[1].(uint16)
	stat.SerialNbr = values[2].(string)
	stat.PowUpProg = values[3].(string)
	stat.CompState = values[4].(byte)
	stat.ProgName = values[5].(string)
	stat.ProgSig = values[6].(uint16)
	stat.CompTime = values[7].(pbtype.TimePair)
	stat.CompResult = values[8].(string)
	return stat, nil
}
