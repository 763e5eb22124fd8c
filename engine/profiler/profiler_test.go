package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-desk/common"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := common.Logger()
	t.Cleanup(func() { common.SetLogger(orig) })

	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestTickBeforeIntervalDoesNotReport(t *testing.T) {
	buf := captureLogs(t)
	p := NewProfiler()
	p.SetUpdateInterval(time.Hour)

	for range 10 {
		if p.Tick() {
			t.Fatal("Tick reported before the interval elapsed")
		}
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %q", buf.String())
	}
	if p.LastReport() != (Report{}) {
		t.Errorf("expected zero report, got %+v", p.LastReport())
	}
}

func TestTickReportsAfterInterval(t *testing.T) {
	buf := captureLogs(t)
	p := NewProfiler()
	p.SetUpdateInterval(0)
	p.AddFragments(500)
	p.AddFragments(250)

	if !p.Tick() {
		t.Fatal("Tick should report with a zero interval")
	}
	r := p.LastReport()
	if r.FPS <= 0 {
		t.Errorf("FPS = %v, want > 0", r.FPS)
	}
	if r.FragmentsPerSecond <= 0 {
		t.Errorf("FragmentsPerSecond = %v, want > 0", r.FragmentsPerSecond)
	}
	if r.SysMB <= 0 {
		t.Errorf("SysMB = %v, want > 0", r.SysMB)
	}

	out := buf.String()
	for _, key := range []string{"[Profiler]", "fps=", "fragments_per_sec=", "heap_mb="} {
		if !strings.Contains(out, key) {
			t.Errorf("log output missing %q: %q", key, out)
		}
	}
}

func TestFragmentsResetEachReport(t *testing.T) {
	captureLogs(t)
	p := NewProfiler()
	p.SetUpdateInterval(0)
	p.AddFragments(1000)
	p.Tick()

	if !p.Tick() {
		t.Fatal("second Tick should report")
	}
	if got := p.LastReport().FragmentsPerSecond; got != 0 {
		t.Errorf("FragmentsPerSecond = %v after reset, want 0", got)
	}
}
