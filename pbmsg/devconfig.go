package pbmsg

import "encoding/binary"

// Setting is one device configuration setting, shared by the get and set
// settings requests/responses (§4.4).
type Setting struct {
	SettingId  uint16
	Value      []byte
	LargeValue bool
	ReadOnly   bool
}

// SettingOutcome reports the per-setting result of a Set Settings request.
type SettingOutcome struct {
	SettingId uint16
	Outcome   byte
}

// DevConfigGetSettingsCmd builds a DevConfig Get Settings command.
// beginID/endID are inclusive bounds and are sent only when haveRange is
// true; with haveRange false both fields are omitted and every setting is
// requested.
func DevConfigGetSettingsCmd(dstNodeId, srcNodeId uint16, tranNbr byte, beginID, endID uint16, haveRange bool) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, PakCtrl)
	body := []byte{msgGetSetCmd, tranNbr}
	if haveRange {
		body = putUint16(body, beginID)
		body = putUint16(body, endID)
	}
	return append(hdr.Pack(), body...)
}

// DevConfigGetSettingsResponse is the decoded Get Settings response body.
type DevConfigGetSettingsResponse struct {
	Outcome      byte
	DeviceType   uint16
	MajorVersion byte
	MinorVersion byte
	MoreSettings byte
	Settings     []Setting
}

// DecodeDevConfigGetSettingsResponse decodes a Get Settings response body.
func DecodeDevConfigGetSettingsResponse(body []byte) (DevConfigGetSettingsResponse, error) {
	var resp DevConfigGetSettingsResponse
	if err := need(body, 1, "DevConfigGetSettings.Outcome"); err != nil {
		return resp, err
	}
	resp.Outcome = body[0]
	if resp.Outcome != 0x01 {
		return resp, nil
	}
	off := 1
	if err := need(body[off:], 5, "DevConfigGetSettings.header"); err != nil {
		return resp, err
	}
	resp.DeviceType = binary.BigEndian.Uint16(body[off : off+2])
	resp.MajorVersion = body[off+2]
	resp.MinorVersion = body[off+3]
	resp.MoreSettings = body[off+4]
	off += 5
	for off < len(body) {
		if err := need(body[off:], 4, "DevConfigGetSettings.entry"); err != nil {
			return resp, err
		}
		settingId := binary.BigEndian.Uint16(body[off : off+2])
		flags := binary.BigEndian.Uint16(body[off+2 : off+4])
		off += 4
		length := int(flags & 0x3FFF)
		if err := need(body[off:], length, "DevConfigGetSettings.value"); err != nil {
			return resp, err
		}
		resp.Settings = append(resp.Settings, Setting{
			SettingId:  settingId,
			Value:      append([]byte(nil), body[off:off+length]...),
			LargeValue: flags&0x8000 != 0,
			ReadOnly:   flags&0x4000 != 0,
		})
		off += length
	}
	return resp, nil
}

// DevConfigSetSettingsCmd builds a DevConfig Set Settings command for the
// given settings, each encoded as {SettingId, length, raw value bytes}.
func DevConfigSetSettingsCmd(dstNodeId, srcNodeId uint16, tranNbr byte, securityCode uint16, settings []Setting) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, PakCtrl)
	body := []byte{msgSetSetCmd, tranNbr}
	body = putUint16(body, securityCode)
	for _, s := range settings {
		body = putUint16(body, s.SettingId)
		body = putUint16(body, uint16(len(s.Value)))
		body = append(body, s.Value...)
	}
	return append(hdr.Pack(), body...)
}

// DevConfigSetSettingsResponse is the decoded Set Settings response body.
type DevConfigSetSettingsResponse struct {
	Outcome        byte
	SettingOutcome []SettingOutcome
}

// DecodeDevConfigSetSettingsResponse decodes a Set Settings response body.
func DecodeDevConfigSetSettingsResponse(body []byte) (DevConfigSetSettingsResponse, error) {
	var resp DevConfigSetSettingsResponse
	if err := need(body, 1, "DevConfigSetSettings.Outcome"); err != nil {
		return resp, err
	}
	resp.Outcome = body[0]
	if resp.Outcome != 0x01 {
		return resp, nil
	}
	off := 1
	for off < len(body) {
		if err := need(body[off:], 3, "DevConfigSetSettings.entry"); err != nil {
			return resp, err
		}
		resp.SettingOutcome = append(resp.SettingOutcome, SettingOutcome{
			SettingId: binary.BigEndian.Uint16(body[off : off+2]),
			Outcome:   body[off+2],
		})
		off += 3
	}
	return resp, nil
}

// DevConfigControlCmd builds a DevConfig Control command. Action 0x04 is
// "refresh session timer", the reference default.
func DevConfigControlCmd(dstNodeId, srcNodeId uint16, tranNbr byte, securityCode uint16, action byte) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, PakCtrl)
	body := []byte{msgDevCtrlCmd, tranNbr}
	body = putUint16(body, securityCode)
	body = append(body, action)
	return append(hdr.Pack(), body...)
}

// DecodeDevConfigControlResponse decodes a DevConfig Control response
// body: a single Outcome byte.
func DecodeDevConfigControlResponse(body []byte) (byte, error) {
	if err := need(body, 1, "DevConfigControl.Outcome"); err != nil {
		return 0, err
	}
	return body[0], nil
}
