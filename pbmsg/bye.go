package pbmsg

// ByeCmd builds the Bye command packet (§4.4): no response is expected,
// sent with ExpMoreCode=0x0, LinkState=0xB.
func ByeCmd(dstNodeId, srcNodeId uint16) []byte {
	hdr := newHeader(dstNodeId, srcNodeId, PakCtrl)
	hdr.ExpMoreCode = 0x0
	hdr.LinkState = 0xB
	body := []byte{msgByeCmd, 0x00}
	return append(hdr.Pack(), body...)
}
