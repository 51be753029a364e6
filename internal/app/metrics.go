package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics tracks input and render counts for a run.
type Metrics struct {
	keyCount       atomic.Uint64
	backspaceCount atomic.Uint64
	restartCount   atomic.Uint64
	reloadCount    atomic.Uint64

	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	startTime time.Time
	now       func() time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now(), now: time.Now}
}

// RecordKey records one rune fed to the session.
func (m *Metrics) RecordKey(backspace bool) {
	m.keyCount.Add(1)
	if backspace {
		m.backspaceCount.Add(1)
	}
}

// RecordRestart records a session restart.
func (m *Metrics) RecordRestart() {
	m.restartCount.Add(1)
}

// RecordReload records a reference reload.
func (m *Metrics) RecordReload() {
	m.reloadCount.Add(1)
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)

	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Keys       uint64
	Backspaces uint64
	Restarts   uint64
	Reloads    uint64

	Renders   uint64
	AvgRender time.Duration
	MaxRender time.Duration

	Uptime time.Duration
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Keys:       m.keyCount.Load(),
		Backspaces: m.backspaceCount.Load(),
		Restarts:   m.restartCount.Load(),
		Reloads:    m.reloadCount.Load(),
		Renders:    m.renderCount.Load(),
		MaxRender:  time.Duration(m.renderMaxNs.Load()),
		Uptime:     m.now().Sub(m.startTime),
	}
	if s.Renders > 0 {
		s.AvgRender = time.Duration(m.renderTotalNs.Load() / int64(s.Renders))
	}
	return s
}

// KeysPerMinute returns the input rate over the uptime.
func (s MetricsSnapshot) KeysPerMinute() float64 {
	if s.Uptime <= 0 {
		return 0
	}
	return float64(s.Keys) / s.Uptime.Minutes()
}

func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("keys=%d backspaces=%d restarts=%d reloads=%d renders=%d avgRender=%s maxRender=%s uptime=%s kpm=%.1f",
		s.Keys, s.Backspaces, s.Restarts, s.Reloads, s.Renders,
		s.AvgRender, s.MaxRender, s.Uptime.Round(time.Millisecond), s.KeysPerMinute())
}
