package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the frame.
const (
	PhaseInput   = "input"
	PhaseLoading = "loading"
	PhasePhysics = "physics"
	PhaseSync    = "sync"
	PhaseRender  = "render"
)

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	sample := PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}

	p.samples[p.writeIndex] = sample
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds averaged timings over the window.
type PerfStats struct {
	FrameMean time.Duration
	Phases    map[string]time.Duration
}

// Stats averages the recorded samples.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{Phases: make(map[string]time.Duration)}
	if p.sampleCount == 0 {
		return stats
	}
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		stats.FrameMean += s.FrameDuration
		for name, d := range s.Phases {
			stats.Phases[name] += d
		}
	}
	n := time.Duration(p.sampleCount)
	stats.FrameMean /= n
	for name := range stats.Phases {
		stats.Phases[name] /= n
	}
	return stats
}

// PerfStatsCSV is the flat CSV projection of PerfStats.
type PerfStatsCSV struct {
	WindowEnd  int32   `csv:"window_end"`
	FrameMs    float64 `csv:"frame_ms"`
	InputMs    float64 `csv:"input_ms"`
	LoadingMs  float64 `csv:"loading_ms"`
	PhysicsMs  float64 `csv:"physics_ms"`
	SyncMs     float64 `csv:"sync_ms"`
	RenderMs   float64 `csv:"render_ms"`
}

// ToCSV converts the stats to the CSV record shape.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	ms := func(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
	return PerfStatsCSV{
		WindowEnd: windowEnd,
		FrameMs:   ms(s.FrameMean),
		InputMs:   ms(s.Phases[PhaseInput]),
		LoadingMs: ms(s.Phases[PhaseLoading]),
		PhysicsMs: ms(s.Phases[PhasePhysics]),
		SyncMs:    ms(s.Phases[PhaseSync]),
		RenderMs:  ms(s.Phases[PhaseRender]),
	}
}

// Log emits the averaged timings via slog.
func (s PerfStats) Log() {
	slog.Info("perf stats",
		"frame_ms", float64(s.FrameMean)/float64(time.Millisecond),
		"physics_ms", float64(s.Phases[PhasePhysics])/float64(time.Millisecond),
		"render_ms", float64(s.Phases[PhaseRender])/float64(time.Millisecond),
	)
}
