package pbmsg

import "fmt"

// RespCode is the one-byte result code most BMP5 application responses
// carry: zero means success, nonzero names a specific failure. The text
// table below exists purely for logging, the same role the source's
// int->string maps play (§12).
type RespCode byte

var respCodeText = map[RespCode]string{
	0: "OK",
	1: "PermissionDenied",
	2: "ResourceUnavailable or unsupported Attribute",
	3: "TableNotFound",
	4: "FieldTypeMismatch",
	5: "OtherError",
}

func (c RespCode) String() string {
	if s, ok := respCodeText[c]; ok {
		return s
	}
	return fmt.Sprintf("RespCode<%d>", byte(c))
}

// Outcome is the DevConfig family's one-byte result code (distinct value
// space from RespCode: 0x01 means success here, not 0x00).
type Outcome byte

var outcomeText = map[Outcome]string{
	0x01: "OK",
	0x02: "PermissionDenied",
	0x03: "UnsupportedSetting",
	0x04: "MalformedSetting",
	0x05: "SettingReadOnly",
}

func (o Outcome) String() string {
	if s, ok := outcomeText[o]; ok {
		return s
	}
	return fmt.Sprintf("Outcome<%d>", byte(o))
}
