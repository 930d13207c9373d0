package pbclient

import (
	"errors"
	"time"

	"github.com/cscipb/pakbus/transport"
)

// Config range limits, mirroring the teacher's cs104.Config constants
// (_examples/rob-gra-go-iecp5/cs104/config.go): named bounds plus a
// Valid() that defaults unset fields rather than a bare struct literal.
const (
	ConnectTimeoutMin = 1 * time.Second
	ConnectTimeoutMax = 120 * time.Second

	RequestTimeoutMin = 1 * time.Second
	RequestTimeoutMax = 120 * time.Second

	SwathMin = 1
	SwathMax = 1000
)

// Config configures a Client's tunables: peer addressing, timeouts, and
// the protocol-level knobs (§10.3 — configuration file loading is out of
// scope per §1, so this is a struct literal a caller builds themselves).
type Config struct {
	Host string
	Port int // defaults to transport.DefaultPort (6785)

	LocalNodeId uint16
	PeerNodeId  uint16

	SecurityCode uint16

	// ConnectTimeout bounds the initial TCP dial (§6 "open(..., timeout=30s)").
	ConnectTimeout time.Duration
	// RequestTimeout is the nominal per-operation wait handed to
	// pbtran.Mux.Wait, which internally seeds its deadline at 0.9×this.
	RequestTimeout time.Duration

	// Swath is the chunk size for file upload/download. GetValues does
	// not use it; it takes its own swath argument.
	Swath uint16

	// NSecTickNanos sets the NSec/SecNano sub-second tick size in
	// nanoseconds; pre-OS-17 dataloggers use 1000 (microseconds) instead
	// of the modern default of 1 (nanoseconds) (§9, §12.1). Left zero
	// means "use pbtype's current package-level default", not "1".
	NSecTickNanos int64

	// Clock sync tunables (§4.6); zero means "use the default below".
	ClockMinAdjust time.Duration
	ClockMaxAdjust time.Duration
	ClockOffset    time.Duration
}

// Valid applies a default for each unspecified field and range-checks
// the rest, the same shape as the teacher's cs104.Config.Valid().
func (c *Config) Valid() error {
	if c == nil {
		return errors.New("pbclient: nil config")
	}
	if c.Host == "" {
		return errors.New("pbclient: Host is required")
	}
	if c.Port == 0 {
		c.Port = transport.DefaultPort
	}

	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 30 * time.Second
	} else if c.ConnectTimeout < ConnectTimeoutMin || c.ConnectTimeout > ConnectTimeoutMax {
		return errors.New("pbclient: ConnectTimeout out of range")
	}

	if c.RequestTimeout == 0 {
		c.RequestTimeout = 5 * time.Second
	} else if c.RequestTimeout < RequestTimeoutMin || c.RequestTimeout > RequestTimeoutMax {
		return errors.New("pbclient: RequestTimeout out of range")
	}

	if c.Swath == 0 {
		c.Swath = 512
	} else if c.Swath < SwathMin || c.Swath > SwathMax {
		return errors.New("pbclient: Swath out of range")
	}

	if c.ClockMinAdjust == 0 {
		c.ClockMinAdjust = 100 * time.Millisecond
	}
	if c.ClockMaxAdjust == 0 {
		c.ClockMaxAdjust = 3 * time.Second
	}

	return nil
}
