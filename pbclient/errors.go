package pbclient

import "fmt"

// ErrPeer reports a non-zero RespCode/Outcome returned by the peer for a
// given operation (§7 "PeerError(code)"). The code's domain is
// operation-specific; callers that care about the exact meaning consult
// the relevant pbmsg.RespCode/pbmsg.Outcome String() method themselves.
type ErrPeer struct {
	Op   string
	Code byte
}

func (e *ErrPeer) Error() string {
	return fmt.Sprintf("pbclient: %s: peer returned code %d", e.Op, e.Code)
}
