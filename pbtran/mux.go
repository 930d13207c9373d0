// Package pbtran implements the PakBus transaction multiplexer: it owns
// the process-wide transaction counter, reads frames off a transport, and
// correlates each one to whichever caller is waiting on it, transparently
// answering unsolicited hello commands and extending deadlines on
// please-wait replies along the way (§4.3).
package pbtran

import (
	"encoding/binary"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/cscipb/pakbus/internal/clog"
	"github.com/cscipb/pakbus/pbframe"
)

const (
	msgTypeHelloCmd         = 0x09
	msgTypePleaseWait       = 0xA1
	protoPakCtrl      uint8 = 0x0
)

// Envelope is the wire preamble common to every message: the packet
// header, the MsgType/TranNbr pair every body starts with, and the
// remaining body bytes a pbmsg decoder consumes.
type Envelope struct {
	Header  pbframe.Header
	MsgType byte
	TranNbr byte
	Body    []byte
}

// ParseEnvelope splits a bare packet (post pbframe.Decode) into its
// header and MsgType/TranNbr/Body preamble.
func ParseEnvelope(packet []byte) (Envelope, error) {
	hdr, err := pbframe.UnpackHeader(packet)
	if err != nil {
		return Envelope{}, err
	}
	rest := packet[pbframe.HeaderSize:]
	if len(rest) < 2 {
		return Envelope{}, &pbframe.ErrFrameCorrupt{Reason: "packet shorter than MsgType/TranNbr preamble"}
	}
	return Envelope{
		Header:  hdr,
		MsgType: rest[0],
		TranNbr: rest[1],
		Body:    rest[2:],
	}, nil
}

// HelloResponder builds an on-wire hello-response packet (PakCtrl
// MsgType 0x89) addressed back to (peerDst, peerSrc) echoing tranNbr, so
// Mux can answer an unsolicited hello without pbtran importing the
// message catalogue. pbclient.Dial supplies one built on
// pbmsg.HelloResponsePacket.
type HelloResponder func(peerDst, peerSrc uint16, tranNbr byte) []byte

// Sender is the write side of a transport, kept minimal so Mux doesn't
// need the whole transport.Transport interface.
type Sender interface {
	Send(b []byte) error
}

// Deadliner lets Wait bound each underlying read by however much of its
// own (possibly please-wait-extended) deadline remains, so a read that
// would otherwise block past it still lets the loop re-check on time.
type Deadliner interface {
	SetTimeout(d time.Duration) error
}

// Mux is the transaction multiplexer. One Mux serves one logical PakBus
// peer connection; it is not safe for concurrent Wait calls (§5 assumes a
// single outstanding request at a time, matching the reference client).
type Mux struct {
	reader   *pbframe.FrameReader
	sender   Sender
	deadline Deadliner // nil if the transport doesn't support per-call deadlines
	log      clog.Clog

	mu        sync.Mutex
	counter   uint8
	onHello   HelloResponder
	collector Collector
}

// Collector receives counters for observability (§10.5); nil is valid and
// means "don't track".
type Collector interface {
	FrameDiscarded()
	HelloAnswered()
	PleaseWaitHonoured(extension time.Duration)
	TimedOut()
}

// NewMux wraps a frame reader/sender pair. onHello may be nil, in which
// case unsolicited hellos are discarded like any other off-topic frame
// instead of answered. If sender also implements Deadliner (as
// transport.Conn does), Wait bounds each read by its remaining deadline
// instead of relying solely on the transport's own fixed timeout.
func NewMux(reader *pbframe.FrameReader, sender Sender, onHello HelloResponder, log clog.Clog) *Mux {
	m := &Mux{reader: reader, sender: sender, onHello: onHello, log: log}
	if d, ok := sender.(Deadliner); ok {
		m.deadline = d
	}
	return m
}

// SetCollector attaches an optional metrics collector, mirroring the
// teacher's Clog.SetLogProvider seam: an optional attach point, not a
// constructor argument.
func (m *Mux) SetCollector(c Collector) {
	m.collector = c
}

// Send frames pkt (an unsigned, unquoted header+body packet as returned
// by a pbmsg builder) with pbframe.Encode and writes it to the
// transport (§2's "Message Catalogue → Framer → transport" data flow).
// Every outgoing packet, including the auto hello-reply below, must go
// through this rather than calling the sender directly, or a real peer
// never sees a recognisable frame.
func (m *Mux) Send(pkt []byte) error {
	return m.sender.Send(pbframe.Encode(pkt))
}

// NewTranNbr allocates the next transaction number: a lock-guarded 8-bit
// wrapping counter starting at zero (§4.3). Collisions are possible by
// design; callers also match on (peer_src, peer_dst).
func (m *Mux) NewTranNbr() byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return m.counter
}

// Wait blocks for the reply to (peerDst, peerSrc, transaction), replying
// to unsolicited hellos and extending the deadline on please-wait
// messages for the same transaction, until either an on-topic frame
// arrives or the (possibly extended) deadline elapses (§4.3).
func (m *Mux) Wait(peerDst, peerSrc uint16, transaction byte, timeout time.Duration) (Envelope, error) {
	deadline := time.Now().Add(time.Duration(float64(timeout) * 0.9))

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			if m.collector != nil {
				m.collector.TimedOut()
			}
			return Envelope{}, &ErrTimeout{PeerDst: peerDst, PeerSrc: peerSrc, Transaction: transaction}
		}

		if m.deadline != nil {
			if err := m.deadline.SetTimeout(remaining); err != nil {
				return Envelope{}, err
			}
		}

		env, err := m.readOne()
		if err != nil {
			if isTimeoutErr(err) {
				continue
			}
			return Envelope{}, err
		}

		if env.Header.DstNodeId != peerDst || env.Header.SrcNodeId != peerSrc {
			m.log.Debug("pbtran: discarding frame from %d to %d (waiting on %d<-%d)", env.Header.SrcNodeId, env.Header.DstNodeId, peerDst, peerSrc)
			if m.collector != nil {
				m.collector.FrameDiscarded()
			}
			continue
		}

		if env.Header.HiProtoCode == protoPakCtrl && env.MsgType == msgTypeHelloCmd {
			m.log.Debug("pbtran: answering unsolicited hello from node %d", env.Header.SrcNodeId)
			if m.onHello != nil {
				if err := m.Send(m.onHello(env.Header.SrcNodeId, env.Header.DstNodeId, env.TranNbr)); err != nil {
					m.log.Warn("pbtran: hello response send failed: %v", err)
				} else if m.collector != nil {
					m.collector.HelloAnswered()
				}
			}
			continue
		}

		if env.TranNbr == transaction && env.MsgType == msgTypePleaseWait && len(env.Body) >= 3 {
			waitSec := binary.BigEndian.Uint16(env.Body[1:3])
			ext := time.Duration(waitSec) * time.Second
			deadline = deadline.Add(ext)
			m.log.Debug("pbtran: please-wait extends transaction %d deadline by %s", transaction, ext)
			if m.collector != nil {
				m.collector.PleaseWaitHonoured(ext)
			}
			continue
		}

		if env.TranNbr == transaction {
			return env, nil
		}

		if m.collector != nil {
			m.collector.FrameDiscarded()
		}
	}
}

func (m *Mux) readOne() (Envelope, error) {
	packet, err := m.reader.ReadPacket()
	if err != nil {
		return Envelope{}, err
	}
	return ParseEnvelope(packet)
}

// isTimeoutErr reports whether err is a transport read-deadline expiry,
// which Wait treats as "nothing arrived yet", not a hard failure: it
// keeps looping until its own (possibly please-wait-extended) deadline.
func isTimeoutErr(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
