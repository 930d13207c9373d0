package pbmsg

import (
	"encoding/binary"
)

// HelloResponse is the decoded body common to both the Hello command and
// its response (§4.4): the source shares one decoder for both directions.
type HelloResponse struct {
	TranNbr    byte
	IsRouter   byte
	HopMetric  byte
	VerifyIntv uint16
}

// HelloCmd builds a Hello command packet. It is sent with ExpMoreCode=0x1,
// LinkState=0x9 (§4.4), not the common request defaults.
func HelloCmd(dstNodeId, srcNodeId uint16, tranNbr byte, isRouter, hopMetric byte, verifyIntv uint16) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, PakCtrl)
	hdr.ExpMoreCode = 0x1
	hdr.LinkState = 0x9
	body := []byte{msgHelloCmd, tranNbr, isRouter, hopMetric}
	body = putUint16(body, verifyIntv)
	return append(hdr.Pack(), body...)
}

// HelloResponsePacket builds the hello-response packet sent either in
// reply to a deliberate HelloCmd or to answer an unsolicited hello while
// waiting on something else (§4.3's "reply with hello response"). It uses
// the common request defaults, not the command's ExpMoreCode/LinkState.
func HelloResponsePacket(dstNodeId, srcNodeId uint16, tranNbr byte, isRouter, hopMetric byte, verifyIntv uint16) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, PakCtrl)
	body := []byte{msgHelloResp, tranNbr, isRouter, hopMetric}
	body = putUint16(body, verifyIntv)
	return append(hdr.Pack(), body...)
}

// DecodeHello decodes the IsRouter/HopMetric/VerifyIntv fields shared by
// the Hello command and Hello response bodies. body is the envelope body
// (post MsgType/TranNbr preamble).
func DecodeHello(tranNbr byte, body []byte) (HelloResponse, error) {
	if err := need(body, 4, "Hello"); err != nil {
		return HelloResponse{}, err
	}
	return HelloResponse{
		TranNbr:    tranNbr,
		IsRouter:   body[0],
		HopMetric:  body[1],
		VerifyIntv: binary.BigEndian.Uint16(body[2:4]),
	}, nil
}

// PleaseWait is the body of a 0xA1 please-wait reply (§4.4). pbtran.Mux
// decodes this itself inline to avoid importing pbmsg; this decoder is
// for callers that want to inspect one directly (e.g. from a log replay).
type PleaseWait struct {
	CmdMsgType byte
	WaitSec    uint16
}

// DecodePleaseWait decodes a please-wait body.
func DecodePleaseWait(body []byte) (PleaseWait, error) {
	if err := need(body, 3, "PleaseWait"); err != nil {
		return PleaseWait{}, err
	}
	return PleaseWait{CmdMsgType: body[0], WaitSec: binary.BigEndian.Uint16(body[1:3])}, nil
}
