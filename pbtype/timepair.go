package pbtype

import "time"

// TimePair is the two-int32 wire shape shared by NSec and SecNano: a whole
// number of seconds plus a sub-second tick count. §3 defines NSec as
// (seconds since 1990-01-01 00:00:00 UTC, ticks); SecNano carries the same
// shape little-endian instead of big-endian.
type TimePair struct {
	Sec  int32
	Tick int32
}

// NSecValue and SecNanoValue are alternative names for TimePair. They are
// aliases, not distinct types: Decode returns a TimePair for both NSec and
// SecNano, and a type switch cannot tell the two apart.
type (
	NSecValue    = TimePair
	SecNanoValue = TimePair
)

// pakBusEpoch is the NSec zero point, per §3 and the GLOSSARY.
var pakBusEpoch = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

// NSecTickNanos is the duration in nanoseconds of one NSec tick. §9 notes
// that firmware older than OS version 17 reports ticks of 1e-6s (not 1e-9s)
// when *reading* the clock, though it still accepts 1e-9s ticks when
// *setting* it. Callers targeting such a logger set this to 1000 before
// calling NSecToTime; it is never silently inferred from a response.
var NSecTickNanos int64 = 1

// NSecToTime converts a TimePair decoded from an NSec field into an
// absolute UTC time, using the configured NSecTickNanos.
func NSecToTime(v TimePair) time.Time {
	return pakBusEpoch.Add(time.Duration(v.Sec) * time.Second).Add(time.Duration(int64(v.Tick) * NSecTickNanos))
}

// TimeToNSec converts an absolute UTC time into the TimePair wire shape for
// an NSec field, using the configured NSecTickNanos.
func TimeToNSec(t time.Time) TimePair {
	d := t.Sub(pakBusEpoch)
	sec := d / time.Second
	rem := d - sec*time.Second
	tick := rem.Nanoseconds() / NSecTickNanos
	return TimePair{Sec: int32(sec), Tick: int32(tick)}
}

// DurationToNSec converts a plain duration (no epoch) into the TimePair
// shape used for Clock command Adjustment deltas, per §4.6.
func DurationToNSec(d time.Duration) TimePair {
	sec := d / time.Second
	rem := d - sec*time.Second
	tick := rem.Nanoseconds() / NSecTickNanos
	return TimePair{Sec: int32(sec), Tick: int32(tick)}
}
