package profiler

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-desk/common"
)

// Report is one profiling interval's worth of statistics.
type Report struct {
	FPS                float64
	FragmentsPerSecond float64
	HeapMB             float64
	AllocRateMB        float64
	GCCount            uint32
	LastPauseUs        uint64
	MaxPauseUs         uint64
	SysMB              float64
}

// Profiler tracks frame rate, shading throughput and memory statistics for performance
// monitoring. Outputs stats to the logger at a configurable interval.
type Profiler struct {
	frameCount     int
	fragments      atomic.Uint64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Report
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetUpdateInterval changes how often Tick reports.
//
// Parameters:
//   - d: the reporting interval
func (p *Profiler) SetUpdateInterval(d time.Duration) {
	p.updateInterval = d
}

// AddFragments records shaded fragments toward the current interval. Safe to call from
// any goroutine.
//
// Parameters:
//   - n: the number of fragments shaded
func (p *Profiler) AddFragments(n uint64) {
	p.fragments.Add(n)
}

// LastReport returns the statistics logged by the most recent reporting Tick.
//
// Returns:
//   - Report: the last report, zero before the first
func (p *Profiler) LastReport() Report {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, fragments shaded per second, heap usage, allocation rate,
// GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}
	seconds := max(elapsed.Seconds(), 1e-9)

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.last = Report{
		FPS:                float64(p.frameCount) / seconds,
		FragmentsPerSecond: float64(p.fragments.Swap(0)) / seconds,
		HeapMB:             float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:        float64(allocDelta) / 1024 / 1024 / seconds,
		GCCount:            gcCount,
		LastPauseUs:        lastPauseUs,
		MaxPauseUs:         maxPauseUs,
		SysMB:              float64(p.memStats.Sys) / 1024 / 1024,
	}
	common.Logger().Info("[Profiler]",
		"fps", p.last.FPS,
		"fragments_per_sec", p.last.FragmentsPerSecond,
		"heap_mb", p.last.HeapMB,
		"alloc_rate_mb", p.last.AllocRateMB,
		"gc", gcCount,
		"gc_last_pause_us", lastPauseUs,
		"gc_max_pause_us", maxPauseUs,
		"sys_mb", p.last.SysMB,
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
