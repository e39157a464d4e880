// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/host/metrics.go
// Summary: Rolling frame-time statistics for the host loop.
// Notes: FPS is the render rate the average frame time would allow, not how
// often the event-driven loop actually redraws.

package hostruntime

import (
	"log"
	"time"
)

const (
	// MetricsWindow is the number of frames averaged.
	MetricsWindow = 60
	// LowFPS and SlowFrame are the warning thresholds.
	LowFPS    = 30.0
	SlowFrame = 33 * time.Millisecond
)

// FrameMetrics keeps the last MetricsWindow frame durations.
type FrameMetrics struct {
	samples []time.Duration
	next    int
	sum     time.Duration
	objects int

	// lowWarned/slowWarned suppress repeats until the condition clears.
	lowWarned, slowWarned bool
}

// NewFrameMetrics returns empty metrics.
func NewFrameMetrics() *FrameMetrics {
	return &FrameMetrics{samples: make([]time.Duration, 0, MetricsWindow)}
}

// Record adds one frame that took d and drew objects tabs.
func (m *FrameMetrics) Record(d time.Duration, objects int) {
	if d < 0 {
		d = 0
	}
	if len(m.samples) < MetricsWindow {
		m.samples = append(m.samples, d)
	} else {
		m.sum -= m.samples[m.next]
		m.samples[m.next] = d
	}
	m.next = (m.next + 1) % MetricsWindow
	m.sum += d
	m.objects = objects
}

// Frames returns how many samples are held, at most MetricsWindow.
func (m *FrameMetrics) Frames() int { return len(m.samples) }

// Objects returns the object count of the last frame.
func (m *FrameMetrics) Objects() int { return m.objects }

// Average returns the mean frame time over the window.
func (m *FrameMetrics) Average() time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	return m.sum / time.Duration(len(m.samples))
}

// Last returns the most recent frame time.
func (m *FrameMetrics) Last() time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	return m.samples[(m.next+MetricsWindow-1)%MetricsWindow]
}

// FPS returns 1 / Average, or 0 before the first non-zero sample.
func (m *FrameMetrics) FPS() float64 {
	avg := m.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// Check logs a warning when FPS drops below LowFPS or the last frame took
// longer than SlowFrame. Each warning is logged once until it clears.
// It reports the two conditions.
func (m *FrameMetrics) Check() (lowFPS, slowFrame bool) {
	if len(m.samples) == 0 {
		return false, false
	}
	fps := m.FPS()
	lowFPS = fps > 0 && fps < LowFPS
	slowFrame = m.Last() > SlowFrame

	if lowFPS && !m.lowWarned {
		log.Printf("Host: Low FPS: %.1f fps over %d frames", fps, len(m.samples))
	}
	if slowFrame && !m.slowWarned {
		log.Printf("Host: High frame time: %.1fms", float64(m.Last())/float64(time.Millisecond))
	}
	m.lowWarned, m.slowWarned = lowFPS, slowFrame
	return lowFPS, slowFrame
}
