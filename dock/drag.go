// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/drag.go
// Summary: Tab drag state machine.
// Usage: The workspace owns a DragState value and threads it through Step.

package dock

// DragPhase is the coarse state of a tab drag.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragDragging
)

// DragState is the whole transient drag context. The zero value is idle.
type DragState struct {
	Phase         DragPhase
	Tab           TabID
	Source        DragSource
	OriginalIndex int

	// GrabOffset is the pointer position relative to the tab's rect.
	GrabOffset Point
	// Preview is the dragged tab's rect at press time, used for the ghost.
	Preview     Rect
	ContentSize Size

	Start   Point
	Pointer Point
	// Armed is set once the pointer has travelled past the threshold. An
	// unarmed release is a click.
	Armed  bool
	Target *DropTarget
}

// Dragging reports whether a drag is in progress.
func (s DragState) Dragging() bool { return s.Phase == DragDragging }

// GhostRect is where the dragged tab is drawn under the pointer.
func (s DragState) GhostRect() Rect {
	o := s.Pointer.Sub(s.GrabOffset)
	return Rect{X: o.X, Y: o.Y, W: s.Preview.W, H: s.Preview.H}
}

// DragOutcomeKind is what a Step asks the workspace to do.
type DragOutcomeKind int

const (
	OutcomeNone DragOutcomeKind = iota
	// OutcomeClick activates the pressed tab.
	OutcomeClick
	// OutcomeCommit moves the tab to Target.
	OutcomeCommit
	// OutcomeCancel ends the drag without mutation.
	OutcomeCancel
)

// DragOutcome is the result of one Step.
type DragOutcome struct {
	Kind   DragOutcomeKind
	Tab    TabID
	Source DragSource
	Index  int
	Target *DropTarget
}

// Resolver maps a pointer position to a drop target for the current drag.
type Resolver func(st DragState, p Point) *DropTarget

// DragController holds the drag tunables; it keeps no state of its own.
type DragController struct {
	Threshold float64
}

// Begin starts a drag of tab (at index of source) whose on-screen rect is
// tabRect, pressed at p.
func (c DragController) Begin(tab *Tab, source DragSource, index int, tabRect Rect, p Point) DragState {
	return DragState{
		Phase:         DragDragging,
		Tab:           tab.ID,
		Source:        source,
		OriginalIndex: index,
		GrabOffset:    p.Sub(tabRect.Origin()),
		Preview:       tabRect,
		ContentSize:   tab.ContentSize(),
		Start:         p,
		Pointer:       p,
	}
}

// Step advances st with ev. Only a dragging state reacts; an idle state is
// returned unchanged.
func (c DragController) Step(st DragState, ev PointerEvent, resolve Resolver) (DragState, DragOutcome) {
	if st.Phase != DragDragging {
		return st, DragOutcome{}
	}
	out := DragOutcome{Tab: st.Tab, Source: st.Source, Index: st.OriginalIndex}

	switch ev.Action {
	case PointerMove:
		st.Pointer = ev.Pos
		if !st.Armed && st.Pointer.Dist(st.Start) > c.Threshold {
			st.Armed = true
		}
		if st.Armed && resolve != nil {
			st.Target = resolve(st, ev.Pos)
		}
		return st, out

	case PointerUp:
		st.Pointer = ev.Pos
		switch {
		case !st.Armed:
			out.Kind = OutcomeClick
		default:
			if resolve != nil {
				st.Target = resolve(st, ev.Pos)
			}
			if st.Target != nil {
				out.Kind = OutcomeCommit
				out.Target = st.Target
			} else {
				out.Kind = OutcomeCancel
			}
		}
		return DragState{}, out

	case PointerLeave:
		out.Kind = OutcomeCancel
		return DragState{}, out
	}
	return st, out
}

// Cancel aborts st.
func (c DragController) Cancel(st DragState) (DragState, DragOutcome) {
	if st.Phase != DragDragging {
		return st, DragOutcome{}
	}
	return DragState{}, DragOutcome{Kind: OutcomeCancel, Tab: st.Tab, Source: st.Source, Index: st.OriginalIndex}
}
