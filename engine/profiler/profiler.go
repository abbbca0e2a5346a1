// Package profiler reports frame rate, memory and caller supplied statistics at a fixed interval.
package profiler

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/log"
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	now            func() time.Time
	logger         log.Logger
	last           string
}

// ProfilerOption configures a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are logged. Non-positive values are ignored.
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: variadic list of ProfilerOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logger:         log.New("profiler"),
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed: FPS, heap usage,
// allocation rate, GC count and pause times, then the String() of every source.
//
// Parameters:
//   - sources: extra statistics appended to the report, such as program cache counters
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(sources ...fmt.Stringer) bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	parts := []string{
		fmt.Sprintf("FPS: %.2f", fps),
		fmt.Sprintf("Heap: %.2f MB", allocMB),
		fmt.Sprintf("Alloc Rate: %.2f MB/s", allocRateMB),
		fmt.Sprintf("GC: %d (last: %d µs, max: %d µs)", gcCount, lastPauseUs, maxPauseUs),
		fmt.Sprintf("Sys: %.2f MB", sysMB),
	}
	for _, s := range sources {
		if s != nil {
			parts = append(parts, s.String())
		}
	}
	p.last = strings.Join(parts, " | ")
	p.logger.Info(p.last)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// LastReport returns the most recent logged report line.
func (p *Profiler) LastReport() string {
	return p.last
}
