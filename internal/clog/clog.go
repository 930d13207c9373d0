// Package clog is the library's internal logging seam: a small pluggable
// provider interface wrapped by an atomic enable flag, adapted from the
// teacher repo's clog package. Logging is disabled by default; callers
// turn it on with LogMode(true) and may swap the backend with
// SetLogProvider.
package clog

import "sync/atomic"

// LogProvider is the set of levels a logging backend handles: Critical,
// Error, Warn and Debug. Within this library, pbtran logs at Warn (a
// failed hello reply) and Debug (discarded frames, answered hellos,
// please-wait extensions); nothing calls Critical or Error.
type LogProvider interface {
	Critical(format string, v ...interface{})
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Clog wraps a LogProvider behind an atomic enable flag so the hot path
// (checking whether logging is on) never takes a lock.
type Clog struct {
	provider LogProvider
	has      uint32
}

// New returns a Clog backed by the logrus default provider, disabled.
func New() Clog {
	return Clog{provider: newLogrusProvider()}
}

// LogMode enables or disables log output.
func (c *Clog) LogMode(enable bool) {
	if enable {
		atomic.StoreUint32(&c.has, 1)
	} else {
		atomic.StoreUint32(&c.has, 0)
	}
}

// SetLogProvider swaps the backend. A nil provider is ignored.
func (c *Clog) SetLogProvider(p LogProvider) {
	if p != nil {
		c.provider = p
	}
}

func (c Clog) Critical(format string, v ...interface{}) {
	if atomic.LoadUint32(&c.has) == 1 {
		c.provider.Critical(format, v...)
	}
}

func (c Clog) Error(format string, v ...interface{}) {
	if atomic.LoadUint32(&c.has) == 1 {
		c.provider.Error(format, v...)
	}
}

func (c Clog) Warn(format string, v ...interface{}) {
	if atomic.LoadUint32(&c.has) == 1 {
		c.provider.Warn(format, v...)
	}
}

func (c Clog) Debug(format string, v ...interface{}) {
	if atomic.LoadUint32(&c.has) == 1 {
		c.provider.Debug(format, v...)
	}
}
