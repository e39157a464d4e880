// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/host/host.go
// Summary: Drives a dock.Workspace from a tcell screen: input, rendering, refresh and config reloads.
// Usage: Built by `texeldock run`; the screen is initialised and finalised by the caller.
// Notes: Only the loop goroutine touches the workspace; pollers and content post into channels.
// The top row is a status bar outside the dock area, so dropping a dragged
// tab on it opens a floating window.

package hostruntime

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
)

// Host owns the render/event loop for one workspace.
type Host struct {
	screen  tcell.Screen
	ws      *dock.Workspace
	surface *dock.TcellSurface
	input   dock.TcellInput
	panics  *PanicLogger

	refresh chan bool
	wired   map[dock.TabID]bool

	status  dock.Rect
	metrics *FrameMetrics
}

// minStatusHeight is the smallest screen that still gets a status row.
const minStatusHeight = 3

// New binds a workspace to a screen. Apply a config before the first draw.
func New(screen tcell.Screen, ws *dock.Workspace, panics *PanicLogger) *Host {
	if panics == nil {
		panics = NewPanicLogger("")
	}
	return &Host{
		screen:  screen,
		ws:      ws,
		surface: dock.NewTcellSurface(screen, dock.DefaultTheme()),
		panics:  panics,
		refresh: make(chan bool, 1),
		wired:   make(map[dock.TabID]bool),
		metrics: NewFrameMetrics(),
	}
}

// Metrics returns the frame statistics of Draw.
func (h *Host) Metrics() *FrameMetrics { return h.metrics }

// Workspace returns the hosted workspace.
func (h *Host) Workspace() *dock.Workspace { return h.ws }

// ApplyConfig installs terminal settings and the theme from cfg.
func (h *Host) ApplyConfig(cfg config.Config) {
	s := dock.SettingsFromConfig(cfg, dock.TerminalSettings())
	h.ws.SetSettings(s, s.Measurer())
	h.surface.SetTheme(dock.ThemeFromConfig(cfg, dock.DefaultTheme()))
	h.Layout()
}

// Layout sizes the workspace to the screen. The dock area is everything
// below the status row; floating windows may use the whole screen.
func (h *Host) Layout() {
	w, ht := h.screen.Size()
	viewport := dock.Rect{W: float64(w), H: float64(ht)}
	h.status = dock.Rect{}
	dockArea := viewport
	if ht >= minStatusHeight {
		h.status = dock.Rect{W: viewport.W, H: 1}
		dockArea = dock.Rect{Y: 1, W: viewport.W, H: viewport.H - 1}
	}
	h.ws.Layout(viewport, dockArea)
}

// Draw renders one frame, hands refresh channels to new content and
// records the frame time.
func (h *Host) Draw() {
	start := time.Now()
	h.wireRefresh()
	h.screen.Clear()
	h.drawStatus()
	h.ws.Render(h.surface)
	h.screen.Show()
	h.metrics.Record(time.Since(start), len(h.ws.Tabs()))
	h.metrics.Check()
}

func (h *Host) drawStatus() {
	if h.status.Empty() {
		return
	}
	paint, text := dock.PaintTabBar, " texeldock  Ctrl+Q quit  Ctrl+W close"
	if st := h.ws.DragState(); st.Dragging() && st.Armed {
		paint, text = dock.PaintDropPreview, " Drop on this row to float the tab"
	}
	h.surface.FillRect(h.status, paint)
	h.surface.DrawText(h.status.Origin(), text, dock.PaintTabText, h.status.W)

	if h.metrics.Frames() == 0 {
		return
	}
	stats := fmt.Sprintf("%d tabs %.1fms ", h.metrics.Objects(), float64(h.metrics.Average())/float64(time.Millisecond))
	x := h.status.Right() - float64(len(stats))
	if x > float64(len(text))+1 {
		h.surface.DrawText(dock.Point{X: x, Y: h.status.Y}, stats, dock.PaintTabText, float64(len(stats)))
	}
}

func (h *Host) wireRefresh() {
	live := make(map[dock.TabID]bool)
	for _, t := range h.ws.Tabs() {
		live[t.ID] = true
		if h.wired[t.ID] {
			continue
		}
		h.wired[t.ID] = true
		if r, ok := t.Content.(dock.Refresher); ok {
			r.SetRefreshNotifier(h.refresh)
		}
	}
	for id := range h.wired {
		if !live[id] {
			delete(h.wired, id)
		}
	}
}

// HandleEvent applies one screen event. It reports true when the user asked
// to quit (Ctrl+Q).
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.Layout()
		return false
	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlQ {
			return true
		}
	}
	translated, ok := h.input.Translate(ev)
	if !ok {
		return false
	}
	switch te := translated.(type) {
	case dock.PointerEvent:
		h.ws.HandlePointer(te)
	case dock.KeyEvent:
		h.ws.HandleKey(te)
	}
	return false
}

// Run polls the screen until ctx is done, the screen closes or the user
// quits. configs delivers reloaded configuration; it may be nil.
func (h *Host) Run(ctx context.Context, configs <-chan config.Config) error {
	h.Draw()

	events := make(chan tcell.Event, 32)
	stopEvents := make(chan struct{})
	h.panics.Go("eventPoll", func() {
		for {
			select {
			case <-stopEvents:
				close(events)
				return
			default:
			}
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-stopEvents:
				close(events)
				return
			}
		}
	})
	defer func() {
		close(stopEvents)
		h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.refresh:
			h.Draw()
		case cfg, ok := <-configs:
			if !ok {
				configs = nil
				continue
			}
			h.ApplyConfig(cfg)
			log.Printf("Host: Applied reloaded config")
			h.Draw()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.HandleEvent(ev) {
				return nil
			}
			h.Draw()
		}
	}
}
