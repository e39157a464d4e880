// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/tab.go
// Summary: Tab wraps one piece of externally owned panel content.

package dock

// Tab is a named container around one Content. A tab is held by exactly one
// container (a leaf or a floating window) at any time.
type Tab struct {
	ID          TabID
	Title       string
	ContentType string
	Content     Content
	Closable    bool
	Pinned      bool
	Disabled    bool

	contentSize Size
}

// TabOption customises a tab created with NewTab.
type TabOption func(*Tab)

// WithTitle sets the fallback title used when the content has none.
func WithTitle(title string) TabOption {
	return func(t *Tab) { t.Title = title }
}

// WithContentType sets the content-type tag used for persistence.
func WithContentType(tag string) TabOption {
	return func(t *Tab) { t.ContentType = tag }
}

// WithClosable sets whether the tab may be closed by the user.
func WithClosable(closable bool) TabOption {
	return func(t *Tab) { t.Closable = closable }
}

// WithPinned pins the tab.
func WithPinned(pinned bool) TabOption {
	return func(t *Tab) { t.Pinned = pinned }
}

// NewTab allocates a tab for content. Tabs are closable unless told
// otherwise.
func NewTab(content Content, opts ...TabOption) *Tab {
	t := &Tab{
		ID:       newTabID(),
		Content:  content,
		Closable: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.ContentType == "" {
		if sp, ok := content.(SnapshotProvider); ok {
			t.ContentType, _ = sp.SnapshotMetadata()
		}
	}
	return t
}

// DisplayTitle prefers the content's live title.
func (t *Tab) DisplayTitle() string {
	if t == nil {
		return ""
	}
	if t.Content != nil {
		if title := t.Content.Title(); title != "" {
			return title
		}
	}
	return t.Title
}

// Dirty reports whether the content has unsaved state.
func (t *Tab) Dirty() bool {
	return t != nil && t.Content != nil && t.Content.IsDirty()
}

// ShowsClose reports whether the close affordance is drawn.
func (t *Tab) ShowsClose() bool {
	return t.Closable && !t.Pinned
}

// ContentSize is the last size the tab's content was laid out at.
func (t *Tab) ContentSize() Size { return t.contentSize }

func (t *Tab) icon() rune {
	if t.Content == nil {
		return 0
	}
	return t.Content.Icon()
}
