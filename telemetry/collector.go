package telemetry

import "math"

// Collector accumulates physics events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	substeps        int
	droppedTime     int
	framesSynced    int
	contacts        int
	maxPenetration  float64
	contactsPerTick []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	// dt arrives as float32; rounding keeps a 1s window at 60Hz at exactly
	// 60 ticks instead of truncating 59.999... down to 59.
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordStep records the outcome of one Step call: substeps run, whether
// leftover catch-up time was discarded, and the last substep's contacts.
func (c *Collector) RecordStep(substeps int, dropped bool, contacts int, maxPenetration float64) {
	c.substeps += substeps
	if dropped {
		c.droppedTime++
	}
	if substeps > 0 {
		c.contacts += contacts
		c.contactsPerTick = append(c.contactsPerTick, float64(contacts))
		if maxPenetration > c.maxPenetration {
			c.maxPenetration = maxPenetration
		}
	}
}

// RecordSync records one completed frame sync.
func (c *Collector) RecordSync() {
	c.framesSynced++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the current tick, body count, per-body speed samples
// and the gravity vector in effect.
func (c *Collector) Flush(currentTick int32, bodies int, speeds []float64, gravity [3]float64) WindowStats {
	speedMean, speedMax := ComputeSpeedStats(speeds)
	sorted := sortedCopy(c.contactsPerTick)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		DynamicBodies: bodies,

		Substeps:     c.substeps,
		DroppedTime:  c.droppedTime,
		FramesSynced: c.framesSynced,

		Contacts:           c.contacts,
		MaxPenetration:     c.maxPenetration,
		ContactsPerTickP50: Percentile(sorted, 0.5),
		ContactsPerTickP90: Percentile(sorted, 0.9),

		SpeedMean: speedMean,
		SpeedMax:  speedMax,

		GravityX: gravity[0],
		GravityY: gravity[1],
		GravityZ: gravity[2],
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.substeps = 0
	c.droppedTime = 0
	c.framesSynced = 0
	c.contacts = 0
	c.maxPenetration = 0
	c.contactsPerTick = c.contactsPerTick[:0]

	return stats
}
