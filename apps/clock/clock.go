// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/clock/clock.go
// Summary: Clock content that shows the current time and ticks once a second.
// Usage: Registered as the "clock" content type; data key "format" is a Go time layout.

package clock

import (
	"sync"
	"time"

	"github.com/framegrace/texeldock/apps/textview"
	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
)

// DefaultFormat is used when neither the layout nor the config names one.
const DefaultFormat = "15:04:05"

// Clock is never dirty and never refuses to close.
type Clock struct {
	format   string
	now      func() time.Time
	interval time.Duration

	mu          sync.RWMutex
	currentTime string
	refreshChan chan<- bool

	stop      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// New builds a clock from layout data.
func New(data config.Section) (dock.Content, error) {
	return newClock(data.GetString("format", DefaultFormat), time.Now), nil
}

func newClock(format string, now func() time.Time) *Clock {
	if format == "" {
		format = DefaultFormat
	}
	c := &Clock{
		format:   format,
		now:      now,
		interval: time.Second,
		stop:     make(chan struct{}),
	}
	c.updateTime()
	return c
}

func (c *Clock) updateTime() {
	c.mu.Lock()
	c.currentTime = c.now().Format(c.format)
	c.mu.Unlock()
}

// Now returns the last formatted time.
func (c *Clock) Now() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

// SetRefreshNotifier starts the ticker. Later calls only swap the channel.
func (c *Clock) SetRefreshNotifier(refreshChan chan<- bool) {
	c.mu.Lock()
	c.refreshChan = refreshChan
	c.mu.Unlock()
	c.startOnce.Do(func() { go c.run() })
}

func (c *Clock) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.updateTime()
			c.mu.RLock()
			ch := c.refreshChan
			c.mu.RUnlock()
			if ch != nil {
				select {
				case ch <- true:
				default:
				}
			}
		case <-c.stop:
			return
		}
	}
}

func (c *Clock) Title() string { return "Clock" }

func (c *Clock) Render(s dock.Surface, bounds dock.Rect) {
	textview.Center(s, bounds, textview.Line{
		{Text: "Time: ", Paint: dock.PaintContentText},
		{Text: c.Now(), Paint: dock.PaintContentAccent},
	})
}

func (c *Clock) HandleEvent(dock.Event) dock.EventResult { return dock.Ignored }
func (c *Clock) IsDirty() bool                           { return false }
func (c *Clock) CanClose() bool                          { return true }

// OnClose stops the ticker.
func (c *Clock) OnClose() bool {
	c.stopOnce.Do(func() { close(c.stop) })
	return true
}

func (c *Clock) OnFocus()                          {}
func (c *Clock) OnBlur()                           {}
func (c *Clock) Icon() rune                        { return 0 }
func (c *Clock) ContextMenuItems() []dock.MenuItem { return nil }

func (c *Clock) SnapshotMetadata() (string, map[string]interface{}) {
	return Name, map[string]interface{}{"format": c.format}
}
