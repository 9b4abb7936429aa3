package telemetry

import (
	"log/slog"
	"math"
	"sort"
)

// WindowStats holds aggregated simulation statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Body counts at window end
	DynamicBodies int `csv:"dynamic_bodies"`

	// Stepping during the window
	Substeps     int `csv:"substeps"`
	DroppedTime  int `csv:"dropped_time"` // frames where catch-up time was discarded
	FramesSynced int `csv:"frames_synced"`

	// Contacts during the window
	Contacts           int     `csv:"contacts"`
	MaxPenetration     float64 `csv:"max_penetration"`
	ContactsPerTickP50 float64 `csv:"contacts_p50"`
	ContactsPerTickP90 float64 `csv:"contacts_p90"`

	// Motion sampled at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedMax  float64 `csv:"speed_max"`

	// Gravity at window end
	GravityX float64 `csv:"gravity_x"`
	GravityY float64 `csv:"gravity_y"`
	GravityZ float64 `csv:"gravity_z"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats returns mean and max of a speed sample set.
func ComputeSpeedStats(speeds []float64) (mean, max float64) {
	if len(speeds) == 0 {
		return 0, 0
	}
	for _, s := range speeds {
		mean += s
		if s > max {
			max = s
		}
	}
	return mean / float64(len(speeds)), max
}

// sortedCopy returns an ascending copy of values.
func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

// Log emits the window stats via slog.
func (s WindowStats) Log() {
	slog.Info("window stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"bodies", s.DynamicBodies,
		"substeps", s.Substeps,
		"contacts", s.Contacts,
		"max_penetration", s.MaxPenetration,
		"speed_mean", s.SpeedMean,
		"speed_max", s.SpeedMax,
	)
}
