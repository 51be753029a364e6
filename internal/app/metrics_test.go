package app

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMetrics_Counts(t *testing.T) {
	m := NewMetrics()

	m.RecordKey(false)
	m.RecordKey(false)
	m.RecordKey(true)
	m.RecordRestart()
	m.RecordReload()
	m.RecordReload()

	s := m.Snapshot()
	if s.Keys != 3 || s.Backspaces != 1 {
		t.Errorf("keys=%d backspaces=%d", s.Keys, s.Backspaces)
	}
	if s.Restarts != 1 || s.Reloads != 2 {
		t.Errorf("restarts=%d reloads=%d", s.Restarts, s.Reloads)
	}
}

func TestMetrics_Render(t *testing.T) {
	m := NewMetrics()

	if s := m.Snapshot(); s.AvgRender != 0 || s.Renders != 0 {
		t.Errorf("empty snapshot = %+v", s)
	}

	m.RecordRender(2 * time.Millisecond)
	m.RecordRender(4 * time.Millisecond)
	m.RecordRender(3 * time.Millisecond)

	s := m.Snapshot()
	if s.Renders != 3 {
		t.Errorf("Renders = %d", s.Renders)
	}
	if s.AvgRender != 3*time.Millisecond {
		t.Errorf("AvgRender = %v", s.AvgRender)
	}
	if s.MaxRender != 4*time.Millisecond {
		t.Errorf("MaxRender = %v", s.MaxRender)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordKey(j%10 == 0)
				m.RecordRender(time.Duration(i*100+j) * time.Microsecond)
			}
		}(i)
	}
	wg.Wait()

	s := m.Snapshot()
	if s.Keys != 800 || s.Backspaces != 80 || s.Renders != 800 {
		t.Errorf("snapshot = %+v", s)
	}
	if s.MaxRender != 799*time.Microsecond {
		t.Errorf("MaxRender = %v", s.MaxRender)
	}
}

func TestMetricsSnapshot_KeysPerMinute(t *testing.T) {
	m := NewMetrics()
	start := m.startTime
	m.now = func() time.Time { return start.Add(30 * time.Second) }

	for i := 0; i < 100; i++ {
		m.RecordKey(false)
	}

	s := m.Snapshot()
	if s.KeysPerMinute() != 200 {
		t.Errorf("KeysPerMinute = %v, want 200", s.KeysPerMinute())
	}
	if !strings.Contains(s.String(), "keys=100") || !strings.Contains(s.String(), "kpm=200.0") {
		t.Errorf("String() = %q", s.String())
	}

	if (MetricsSnapshot{}).KeysPerMinute() != 0 {
		t.Error("zero uptime should give zero rate")
	}
}
