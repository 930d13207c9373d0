package pbtran

import "fmt"

// ErrTimeout reports that Mux.Wait's deadline (possibly extended by one or
// more please-wait replies) elapsed with no on-topic reply.
type ErrTimeout struct {
	PeerDst, PeerSrc uint16
	Transaction      byte
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("pbtran: timeout waiting for transaction %d from node %d to %d", e.Transaction, e.PeerSrc, e.PeerDst)
}
