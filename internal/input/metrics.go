package input

import (
	"time"
)

// Metrics tracks input processing for a session. It is updated from the
// event loop only and carries no locks.
type Metrics struct {
	// Event counters
	keyEventsTotal uint64
	byKind         [KindCommand + 1]uint64
	droppedEvents  uint64

	// Dispatch latency
	totalLatency time.Duration
	peakLatency  time.Duration

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent records one classified event and the time spent handling it.
func (m *Metrics) RecordEvent(ev Event, latency time.Duration) {
	m.keyEventsTotal++
	if int(ev.Kind) < len(m.byKind) {
		m.byKind[ev.Kind]++
	}
	m.totalLatency += latency
	if latency > m.peakLatency {
		m.peakLatency = latency
	}
}

// RecordDroppedEvent records an event ignored as unrecognized.
func (m *Metrics) RecordDroppedEvent() {
	m.droppedEvents++
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeyEventsTotal uint64
	Printable      uint64
	Control        uint64
	Nav            uint64
	Command        uint64
	DroppedEvents  uint64
	AvgLatency     time.Duration
	PeakLatency    time.Duration
	Uptime         time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		KeyEventsTotal: m.keyEventsTotal,
		Printable:      m.byKind[KindPrintable],
		Control:        m.byKind[KindControl],
		Nav:            m.byKind[KindNav],
		Command:        m.byKind[KindCommand],
		DroppedEvents:  m.droppedEvents,
		PeakLatency:    m.peakLatency,
		Uptime:         time.Since(m.startTime),
	}
	if m.keyEventsTotal > 0 {
		snap.AvgLatency = m.totalLatency / time.Duration(m.keyEventsTotal)
	}
	return snap
}

// Timer measures the handling time of one event.
type Timer struct {
	metrics *Metrics
	start   time.Time
}

// StartTimer starts timing an event.
func (m *Metrics) StartTimer() *Timer {
	return &Timer{metrics: m, start: time.Now()}
}

// Stop records ev with the elapsed time and returns it.
func (t *Timer) Stop(ev Event) time.Duration {
	elapsed := time.Since(t.start)
	t.metrics.RecordEvent(ev, elapsed)
	return elapsed
}
