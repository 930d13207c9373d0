package pbmsg

import "github.com/cscipb/pakbus/pbtype"

// CollectMode selects which parameters (§4.4's mode table) a Collect Data
// request's P1/P2 carry.
type CollectMode byte

const (
	CollectModeFromRecord   CollectMode = 0x04 // P1:UInt4 = starting record number
	CollectModeMostRecent   CollectMode = 0x05 // P1:UInt4 = number of most recent records
	CollectModeRecordRange  CollectMode = 0x06 // P1,P2:UInt4 = begin/end record numbers
	CollectModeTimeRange    CollectMode = 0x07 // P1,P2:NSec = begin/end times
	CollectModeRecordRange2 CollectMode = 0x08 // P1,P2:UInt4, second record-range form
)

// CollectDataCmd builds a Collect Data command. p1/p2 are interpreted per
// mode: CollectModeTimeRange expects pbtype.TimePair values wrapped in
// the same interface{} slots as the UInt4 modes' uint32 values, so the
// caller passes whichever shape matches mode.
func CollectDataCmd(dstNodeId, srcNodeId uint16, tranNbr byte, securityCode uint16, tableNbr, tableDefSig uint16, mode CollectMode, p1, p2 interface{}, fieldNbrs []uint16) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, BMP5)
	body := []byte{msgCollectCmd, tranNbr}
	body = putUint16(body, securityCode)
	body = append(body, byte(mode))
	body = putUint16(body, tableNbr)
	body = putUint16(body, tableDefSig)

	switch mode {
	case CollectModeFromRecord, CollectModeMostRecent:
		body = putUint32(body, p1.(uint32))
	case CollectModeRecordRange, CollectModeRecordRange2:
		body = putUint32(body, p1.(uint32))
		body = putUint32(body, p2.(uint32))
	case CollectModeTimeRange:
		t1 := p1.(pbtype.TimePair)
		t2 := p2.(pbtype.TimePair)
		body = putUint32(body, uint32(t1.Sec))
		body = putUint32(body, uint32(t1.Tick))
		body = putUint32(body, uint32(t2.Sec))
		body = putUint32(body, uint32(t2.Tick))
	}

	for _, f := range fieldNbrs {
		body = putUint16(body, f)
	}
	body = putUint16(body, 0) // field-number list terminator

	return append(hdr.Pack(), body...)
}

// CollectDataResponse is the decoded Collect Data response envelope:
// RespCode plus the raw record stream, which pbstruct.ParseCollectData
// parses against a table definition (§4.5).
type CollectDataResponse struct {
	RespCode byte
	RecData  []byte
}

// DecodeCollectDataResponse decodes the RespCode/RecData split of a
// Collect Data response body.
func DecodeCollectDataResponse(body []byte) (CollectDataResponse, error) {
	if err := need(body, 1, "CollectData.RespCode"); err != nil {
		return CollectDataResponse{}, err
	}
	return CollectDataResponse{RespCode: body[0], RecData: body[1:]}, nil
}
