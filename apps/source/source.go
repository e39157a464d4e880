// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/source/source.go
// Summary: Read-only source file viewer with syntax highlighting.
// Usage: Registered as the "source" content type; data keys "path", "lexer", "style", "max_bytes".

package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/texeldock/apps/textview"
	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
)

const (
	defaultStyleName = "monokai"
	defaultMaxBytes  = 1 << 20
)

// ErrNoPath is returned when the layout data names no file.
var ErrNoPath = errors.New("source: path is required")

// Source shows a file split into highlighted lines. Files larger than
// maxBytes are cut and flagged in the last line.
type Source struct {
	path      string
	lexerName string
	styleName string
	maxBytes  int

	language string
	lines    []textview.Line
	top      int
	rows     int
}

// New builds a viewer from layout data and loads the file. A file that
// cannot be read still yields a viewer showing the error.
func New(data config.Section) (dock.Content, error) {
	path := data.GetString("path", "")
	if path == "" {
		return nil, ErrNoPath
	}
	s := &Source{
		path:      path,
		lexerName: data.GetString("lexer", ""),
		styleName: data.GetString("style", defaultStyleName),
		maxBytes:  data.GetInt("max_bytes", defaultMaxBytes),
	}
	s.Reload()
	return s, nil
}

// Language returns the detected or configured language name.
func (s *Source) Language() string { return s.language }

// Lines returns the highlighted lines from the last load.
func (s *Source) Lines() []textview.Line { return s.lines }

// Reload reads the file again.
func (s *Source) Reload() {
	data, truncated, err := readLimited(s.path, s.maxBytes)
	if err != nil {
		s.language = ""
		s.lines = []textview.Line{{{Text: err.Error(), Paint: dock.PaintContentAccent}}}
		return
	}
	if enry.IsBinary(data) {
		s.language = ""
		s.lines = []textview.Line{{{Text: "binary file not shown", Paint: dock.PaintContentAccent}}}
		return
	}
	s.language = s.lexerName
	if s.language == "" {
		s.language = enry.GetLanguage(filepath.Base(s.path), data)
	}
	s.lines = highlight(expandTabs(string(data)), s.language, s.path, chromaStyle(s.styleName))
	if truncated {
		s.lines = append(s.lines, textview.Line{{
			Text:  fmt.Sprintf("… truncated at %d bytes", s.maxBytes),
			Paint: dock.PaintContentAccent,
		}})
	}
}

func readLimited(path string, limit int) ([]byte, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(f, int64(limit)+1))
	if err != nil {
		return nil, false, err
	}
	if len(data) > limit {
		return data[:limit], true, nil
	}
	return data, false, nil
}

func expandTabs(text string) string {
	if !strings.Contains(text, "\t") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = textview.ExpandTabs(l)
	}
	return strings.Join(lines, "\n")
}

// chromaStyle resolves a style name, falling back to chroma's default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// getLexer prefers an explicit language, then the file name, then content
// analysis.
func getLexer(language, path, text string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	if l := lexers.Match(filepath.Base(path)); l != nil {
		return l
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// highlight tokenises text and splits the tokens into lines. Tokens the
// style colours differently from plain text, or emboldens, get the accent
// paint.
func highlight(text, language, path string, style *chroma.Style) []textview.Line {
	lexer := chroma.Coalesce(getLexer(language, path, text))
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return plainLines(text)
	}
	base := style.Get(chroma.Text).Colour

	var lines []textview.Line
	var cur textview.Line
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		entry := style.Get(tok.Type)
		paint := dock.PaintContentText
		if entry.Bold == chroma.Yes || (entry.Colour.IsSet() && entry.Colour != base) {
			paint = dock.PaintContentAccent
		}
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, cur)
				cur = nil
			}
			if part != "" {
				cur = append(cur, textview.Span{Text: part, Paint: paint})
			}
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func plainLines(text string) []textview.Line {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	lines := make([]textview.Line, len(parts))
	for i, p := range parts {
		lines[i] = textview.Plain(p)
	}
	return lines
}

func (s *Source) Title() string { return filepath.Base(s.path) }

func (s *Source) Render(surface dock.Surface, bounds dock.Rect) {
	s.rows = textview.Rows(bounds)
	s.clampTop()
	textview.Draw(surface, bounds, s.lines, s.top)
}

func (s *Source) clampTop() {
	s.top = min(max(s.top, 0), textview.Tail(len(s.lines), s.rows))
}

// Top returns the first visible line.
func (s *Source) Top() int { return s.top }

func (s *Source) scroll(delta int) {
	s.top += delta
	s.clampTop()
}

func (s *Source) HandleEvent(ev dock.Event) dock.EventResult {
	switch e := ev.(type) {
	case dock.PointerEvent:
		if e.Action != dock.PointerWheel {
			return dock.Ignored
		}
		s.scroll(int(e.WheelDY) * 3)
		return dock.Handled
	case dock.KeyEvent:
		page := max(1, s.rows-1)
		switch e.Key {
		case "Up":
			s.scroll(-1)
		case "Down":
			s.scroll(1)
		case "PgUp":
			if e.Mods&dock.ModCtrl != 0 {
				return dock.Propagate
			}
			s.scroll(-page)
		case "PgDn":
			if e.Mods&dock.ModCtrl != 0 {
				return dock.Propagate
			}
			s.scroll(page)
		case "Home":
			s.top = 0
		case "End":
			s.top = len(s.lines)
			s.clampTop()
		default:
			return dock.Propagate
		}
		return dock.Handled
	}
	return dock.Ignored
}

func (s *Source) IsDirty() bool  { return false }
func (s *Source) CanClose() bool { return true }
func (s *Source) OnClose() bool  { return true }
func (s *Source) OnFocus()       {}
func (s *Source) OnBlur()        {}
func (s *Source) Icon() rune     { return 0 }

func (s *Source) ContextMenuItems() []dock.MenuItem {
	return []dock.MenuItem{{Label: "Reload", Action: s.Reload}}
}

func (s *Source) SnapshotMetadata() (string, map[string]interface{}) {
	data := map[string]interface{}{
		"path":  s.path,
		"style": s.styleName,
	}
	if s.lexerName != "" {
		data["lexer"] = s.lexerName
	}
	return Name, data
}
