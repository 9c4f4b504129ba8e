package room

import "sync/atomic"

// Metrics counts simulation activity for one room. Counters are updated with
// atomics so the metrics endpoint can read them without the room lock.
type Metrics struct {
	Ticks         atomic.Int64
	TotalTickNs   atomic.Int64
	ShotsAccepted atomic.Int64
	ShotsRejected atomic.Int64
	MovesRejected atomic.Int64
	Hits          atomic.Int64
	Kills         atomic.Int64
}

// MetricsSnapshot is a read-only copy of Metrics.
type MetricsSnapshot struct {
	Ticks         int64   `json:"ticks"`
	AvgTickMs     float64 `json:"avg_tick_ms"`
	ShotsAccepted int64   `json:"shots_accepted"`
	ShotsRejected int64   `json:"shots_rejected"`
	MovesRejected int64   `json:"moves_rejected"`
	Hits          int64   `json:"hits"`
	Kills         int64   `json:"kills"`
}

func (m *Metrics) addTick(ns int64) {
	m.Ticks.Add(1)
	m.TotalTickNs.Add(ns)
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	ticks := m.Ticks.Load()
	var avgMs float64
	if ticks > 0 {
		avgMs = float64(m.TotalTickNs.Load()) / float64(ticks) / 1e6
	}
	return MetricsSnapshot{
		Ticks:         ticks,
		AvgTickMs:     avgMs,
		ShotsAccepted: m.ShotsAccepted.Load(),
		ShotsRejected: m.ShotsRejected.Load(),
		MovesRejected: m.MovesRejected.Load(),
		Hits:          m.Hits.Load(),
		Kills:         m.Kills.Load(),
	}
}
