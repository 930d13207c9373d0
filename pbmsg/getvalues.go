package pbmsg

import "github.com/cscipb/pakbus/pbtype"

// GetValuesCmd builds a Get Values command for fieldName in tableName,
// decoded on the wire as typ, requesting swath consecutive values.
func GetValuesCmd(dstNodeId, srcNodeId uint16, tranNbr byte, securityCode uint16, tableName string, typ pbtype.Type, fieldName string, swath uint16) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, BMP5)
	body := []byte{msgGetValuesCmd, tranNbr}
	body = putUint16(body, securityCode)
	body = putASCIIZ(body, tableName)
	body = append(body, byte(typ))
	body = putASCIIZ(body, fieldName)
	body = putUint16(body, swath)
	return append(hdr.Pack(), body...)
}

// GetValuesResponse is the decoded Get Values response envelope: the
// RespCode plus the raw value bytes, left for the caller to parse with
// pbtype.Decode against the type and swath it requested (§4.4, §6).
type GetValuesResponse struct {
	RespCode byte
	Raw      []byte
}

// DecodeGetValuesResponse decodes the RespCode/Raw split of a Get Values
// response body.
func DecodeGetValuesResponse(body []byte) (GetValuesResponse, error) {
	if err := need(body, 1, "GetValues.RespCode"); err != nil {
		return GetValuesResponse{}, err
	}
	return GetValuesResponse{RespCode: body[0], Raw: body[1:]}, nil
}

// ParseValues decodes swath consecutive values of typ from raw (§4.6's
// parse_values).
func ParseValues(raw []byte, typ pbtype.Type, swath int, asciiLen int) ([]interface{}, error) {
	types := make([]pbtype.Type, swath)
	for i := range types {
		types[i] = typ
	}
	values, _, err := pbtype.Decode(types, raw, asciiLen)
	return values, err
}
