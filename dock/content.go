// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/content.go
// Summary: Contract implemented by pluggable panel content and the events it receives.
// Usage: Content types live outside this package and are created through a ContentFactory.

package dock

// EventResult tells the workspace what a content did with an event.
type EventResult int

const (
	Ignored EventResult = iota
	Handled
	Propagate
)

// Content is the capability set every panel implements. The workspace never
// looks inside a content; it only arranges, moves and persists it.
type Content interface {
	Title() string
	Render(s Surface, bounds Rect)
	HandleEvent(ev Event) EventResult
	IsDirty() bool
	CanClose() bool
	// OnClose is called right before the tab is destroyed. Returning false
	// vetoes the close.
	OnClose() bool
	OnFocus()
	OnBlur()
	Icon() rune
	ContextMenuItems() []MenuItem
}

// SnapshotProvider is implemented by content that persists opaque data.
// The content type tag must match the name the content was registered under.
type SnapshotProvider interface {
	SnapshotMetadata() (contentType string, data map[string]interface{})
}

// Refresher is implemented by content that changes on its own (timers,
// child processes). The host hands it a channel; the content posts to it
// without blocking and never touches the workspace from its goroutines.
// Background work starts on the first call and stops in OnClose.
type Refresher interface {
	SetRefreshNotifier(refresh chan<- bool)
}

// MenuItem is one entry of a tab context menu.
type MenuItem struct {
	Label    string
	Disabled bool
	Action   func()
}

// Event is delivered to content. It is either a PointerEvent or a KeyEvent.
type Event interface {
	isEvent()
}

// PointerAction is the kind of pointer activity.
type PointerAction int

const (
	PointerMove PointerAction = iota
	PointerDown
	PointerUp
	PointerWheel
	// PointerLeave means the pointer left the addressable surface.
	PointerLeave
)

// PointerButton identifies the button involved in a PointerDown/PointerUp.
type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonPrimary
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent is a single pointer sample. Positions are in surface units;
// when delivered to content they are still absolute.
type PointerEvent struct {
	Action PointerAction
	Button PointerButton
	Pos    Point
	// WheelDX/WheelDY are set for PointerWheel.
	WheelDX, WheelDY float64
}

func (PointerEvent) isEvent() {}

// Modifier is a keyboard modifier bitmask.
type Modifier int

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// KeyEvent is a key press. Key is a symbolic name ("Enter", "Esc", "PgDn",
// "Ctrl+W", ...) or "Rune" for printable input carried in Rune.
type KeyEvent struct {
	Key  string
	Rune rune
	Mods Modifier
}

func (KeyEvent) isEvent() {}
