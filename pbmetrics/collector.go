// Package pbmetrics exposes the transaction multiplexer's counters as a
// prometheus.Collector, grounded on the shape of
// runZeroInc-sockstats' TCPInfoCollector: a small struct of atomic
// counters plus Describe/Collect methods, wired in optionally rather than
// forced on every Mux.
package pbmetrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TransactionCollector implements pbtran.Collector and prometheus.Collector
// in one type: pbtran.Mux.SetCollector(c) feeds its counters, a
// prometheus.Registry.MustRegister(c) exposes them.
type TransactionCollector struct {
	framesDiscarded     uint64
	hellosAnswered      uint64
	pleaseWaitsHonoured uint64
	pleaseWaitSeconds   uint64 // cumulative extension, whole seconds
	timeouts            uint64

	framesDiscardedDesc     *prometheus.Desc
	hellosAnsweredDesc      *prometheus.Desc
	pleaseWaitsHonouredDesc *prometheus.Desc
	pleaseWaitSecondsDesc   *prometheus.Desc
	timeoutsDesc            *prometheus.Desc
}

var _ prometheus.Collector = (*TransactionCollector)(nil)

// New returns a ready, zeroed TransactionCollector.
func New() *TransactionCollector {
	return &TransactionCollector{
		framesDiscardedDesc: prometheus.NewDesc(
			"pakbus_frames_discarded_total", "Frames read while waiting that were not addressed to us or matched no transaction.", nil, nil),
		hellosAnsweredDesc: prometheus.NewDesc(
			"pakbus_hellos_answered_total", "Unsolicited hello commands answered.", nil, nil),
		pleaseWaitsHonouredDesc: prometheus.NewDesc(
			"pakbus_please_waits_honoured_total", "Please-wait replies that extended a transaction deadline.", nil, nil),
		pleaseWaitSecondsDesc: prometheus.NewDesc(
			"pakbus_please_wait_seconds_total", "Cumulative deadline extension granted by please-wait replies.", nil, nil),
		timeoutsDesc: prometheus.NewDesc(
			"pakbus_timeouts_total", "Transactions that timed out waiting for a reply.", nil, nil),
	}
}

// FrameDiscarded implements pbtran.Collector.
func (c *TransactionCollector) FrameDiscarded() {
	atomic.AddUint64(&c.framesDiscarded, 1)
}

// HelloAnswered implements pbtran.Collector.
func (c *TransactionCollector) HelloAnswered() {
	atomic.AddUint64(&c.hellosAnswered, 1)
}

// PleaseWaitHonoured implements pbtran.Collector.
func (c *TransactionCollector) PleaseWaitHonoured(extension time.Duration) {
	atomic.AddUint64(&c.pleaseWaitsHonoured, 1)
	atomic.AddUint64(&c.pleaseWaitSeconds, uint64(extension/time.Second))
}

// TimedOut implements pbtran.Collector.
func (c *TransactionCollector) TimedOut() {
	atomic.AddUint64(&c.timeouts, 1)
}

// Describe implements prometheus.Collector.
func (c *TransactionCollector) Describe(descs chan<- *prometheus.Desc) {
	descs <- c.framesDiscardedDesc
	descs <- c.hellosAnsweredDesc
	descs <- c.pleaseWaitsHonouredDesc
	descs <- c.pleaseWaitSecondsDesc
	descs <- c.timeoutsDesc
}

// Collect implements prometheus.Collector.
func (c *TransactionCollector) Collect(metrics chan<- prometheus.Metric) {
	metrics <- prometheus.MustNewConstMetric(c.framesDiscardedDesc, prometheus.CounterValue, float64(atomic.LoadUint64(&c.framesDiscarded)))
	metrics <- prometheus.MustNewConstMetric(c.hellosAnsweredDesc, prometheus.CounterValue, float64(atomic.LoadUint64(&c.hellosAnswered)))
	metrics <- prometheus.MustNewConstMetric(c.pleaseWaitsHonouredDesc, prometheus.CounterValue, float64(atomic.LoadUint64(&c.pleaseWaitsHonoured)))
	metrics <- prometheus.MustNewConstMetric(c.pleaseWaitSecondsDesc, prometheus.CounterValue, float64(atomic.LoadUint64(&c.pleaseWaitSeconds)))
	metrics <- prometheus.MustNewConstMetric(c.timeoutsDesc, prometheus.CounterValue, float64(atomic.LoadUint64(&c.timeouts)))
}
