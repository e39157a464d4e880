// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/command/command.go
// Summary: Runs a command under a pseudo-terminal and shows its latest output lines.
// Usage: Registered as the "command" content type; data keys "command", "args", "shell", "history_lines".

package command

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/creack/pty"

	"github.com/framegrace/texeldock/apps/textview"
	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
)

const (
	defaultShell   = "/bin/sh"
	defaultHistory = 500
)

// ErrAlreadyStarted is returned by Start after the first call.
var ErrAlreadyStarted = errors.New("command: already started")

// CSI and OSC sequences; the pty is advertised as a dumb terminal but
// shells still emit some.
var escapeSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)|\x1b[()][A-Za-z0-9]|\x1b[=>]`)

// Command owns one child process. The process starts when the host installs
// a refresh notifier (or on Start) and runs until it exits or is stopped.
type Command struct {
	name    string
	args    []string
	shell   string
	history int

	mu       sync.Mutex
	lines    []string
	partial  string
	cmd      *exec.Cmd
	ptmx     *os.File
	started  bool
	running  bool
	exitMsg  string
	refresh  chan<- bool
	done     chan struct{}
	cols     int
	rows     int
	stopOnce sync.Once
}

// New builds a command from layout data. An empty command runs the shell.
func New(data config.Section) (dock.Content, error) {
	return &Command{
		name:    data.GetString("command", ""),
		args:    data.GetStrings("args", nil),
		shell:   data.GetString("shell", defaultShell),
		history: max(1, data.GetInt("history_lines", defaultHistory)),
		done:    make(chan struct{}),
	}, nil
}

// CommandLine returns the command as typed.
func (c *Command) CommandLine() string {
	if c.name == "" {
		return c.shell
	}
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

func (c *Command) build() *exec.Cmd {
	var cmd *exec.Cmd
	switch {
	case c.name == "":
		cmd = exec.Command(c.shell)
	case len(c.args) == 0:
		cmd = exec.Command(c.shell, "-c", c.name)
	default:
		cmd = exec.Command(c.name, c.args...)
	}
	cmd.Env = append(os.Environ(), "TERM=dumb")
	return cmd
}

// Start launches the process under a new pty.
func (c *Command) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true

	cmd := c.build()
	size := &pty.Winsize{Rows: 24, Cols: 80}
	if c.rows > 1 && c.cols > 0 {
		size = &pty.Winsize{Rows: uint16(c.rows - 1), Cols: uint16(c.cols)}
	}
	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		c.exitMsg = fmt.Sprintf("[failed to start: %v]", err)
		close(c.done)
		return fmt.Errorf("start %q: %w", c.CommandLine(), err)
	}
	c.cmd, c.ptmx, c.running = cmd, ptmx, true
	log.Printf("Command: Started %q (pid %d)", c.CommandLine(), cmd.Process.Pid)
	go c.readLoop(ptmx)
	return nil
}

func (c *Command) readLoop(ptmx *os.File) {
	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			c.mu.Lock()
			c.feed(buf[:n])
			c.mu.Unlock()
			c.notify()
		}
		if err != nil {
			break
		}
	}
	waitErr := c.cmd.Wait()
	_ = ptmx.Close()

	c.mu.Lock()
	if c.partial != "" {
		c.push(c.partial)
		c.partial = ""
	}
	c.running = false
	if waitErr != nil {
		c.exitMsg = fmt.Sprintf("[exited: %v]", waitErr)
	} else {
		c.exitMsg = "[exited: 0]"
	}
	c.mu.Unlock()
	log.Printf("Command: %q %s", c.CommandLine(), c.exitMsg)
	close(c.done)
	c.notify()
}

// feed appends raw pty output. Callers hold mu.
func (c *Command) feed(data []byte) {
	data = escapeSeq.ReplaceAll(data, nil)
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	text := c.partial + string(data)
	parts := strings.Split(text, "\n")
	for _, line := range parts[:len(parts)-1] {
		c.push(lastCarriageSegment(line))
	}
	c.partial = parts[len(parts)-1]
}

// lastCarriageSegment keeps what a bare carriage return would leave visible.
func lastCarriageSegment(line string) string {
	if i := strings.LastIndexByte(line, '\r'); i >= 0 {
		return line[i+1:]
	}
	return line
}

func (c *Command) push(line string) {
	c.lines = append(c.lines, textview.ExpandTabs(line))
	if over := len(c.lines) - c.history; over > 0 {
		c.lines = append(c.lines[:0], c.lines[over:]...)
	}
}

func (c *Command) notify() {
	c.mu.Lock()
	ch := c.refresh
	c.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- true:
	default:
	}
}

// Output returns the completed output lines plus any unterminated tail.
func (c *Command) Output() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := append([]string(nil), c.lines...)
	if c.partial != "" {
		out = append(out, lastCarriageSegment(c.partial))
	}
	return out
}

// Running reports whether the child process is alive.
func (c *Command) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Done is closed once the process has exited or failed to start.
func (c *Command) Done() <-chan struct{} { return c.done }

// Stop kills the process. It is a no-op once the process has exited.
func (c *Command) Stop() {
	c.mu.Lock()
	cmd, running := c.cmd, c.running
	c.mu.Unlock()
	if !running || cmd == nil || cmd.Process == nil {
		return
	}
	c.stopOnce.Do(func() {
		if err := cmd.Process.Kill(); err != nil {
			log.Printf("Command: Failed to stop %q: %v", c.CommandLine(), err)
		}
	})
}

// SetRefreshNotifier starts the process on the first call.
func (c *Command) SetRefreshNotifier(refresh chan<- bool) {
	c.mu.Lock()
	c.refresh = refresh
	started := c.started
	c.mu.Unlock()
	if started {
		return
	}
	if err := c.Start(); err != nil && !errors.Is(err, ErrAlreadyStarted) {
		log.Printf("Command: %v", err)
	}
}

func (c *Command) Title() string { return c.CommandLine() }

func (c *Command) Render(s dock.Surface, bounds dock.Rect) {
	rows := textview.Rows(bounds)
	c.resize(int(bounds.W), rows)

	c.mu.Lock()
	header := textview.Line{{Text: "$ " + c.CommandLine(), Paint: dock.PaintContentAccent}}
	lines := make([]textview.Line, 0, len(c.lines)+3)
	lines = append(lines, header)
	for _, l := range c.lines {
		lines = append(lines, textview.Plain(l))
	}
	if c.partial != "" {
		lines = append(lines, textview.Plain(lastCarriageSegment(c.partial)))
	}
	switch {
	case c.exitMsg != "":
		lines = append(lines, textview.Line{{Text: c.exitMsg, Paint: dock.PaintContentAccent}})
	case !c.started:
		lines = append(lines, textview.Line{{Text: "[not started]", Paint: dock.PaintContentAccent}})
	}
	c.mu.Unlock()

	// The header stays put; output follows the tail.
	textview.Draw(s, bounds, lines[:1], 0)
	if rows > 1 {
		body := dock.Rect{X: bounds.X, Y: bounds.Y + 1, W: bounds.W, H: float64(rows - 1)}
		rest := lines[1:]
		textview.Draw(s, body, rest, textview.Tail(len(rest), rows-1))
	}
}

func (c *Command) resize(cols, rows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cols <= 0 || rows <= 1 || (cols == c.cols && rows == c.rows) {
		return
	}
	c.cols, c.rows = cols, rows
	if c.running && c.ptmx != nil {
		if err := pty.Setsize(c.ptmx, &pty.Winsize{Rows: uint16(rows - 1), Cols: uint16(cols)}); err != nil {
			log.Printf("Command: Failed to resize pty: %v", err)
		}
	}
}

var keyBytes = map[string]string{
	"Enter":      "\r",
	"Tab":        "\t",
	"Backspace":  "\x7f",
	"Backspace2": "\x7f",
	"Esc":        "\x1b",
	"Ctrl+C":     "\x03",
	"Ctrl+D":     "\x04",
	"Up":         "\x1b[A",
	"Down":       "\x1b[B",
	"Right":      "\x1b[C",
	"Left":       "\x1b[D",
}

// HandleEvent forwards typed keys to the running process.
func (c *Command) HandleEvent(ev dock.Event) dock.EventResult {
	ke, ok := ev.(dock.KeyEvent)
	if !ok {
		return dock.Ignored
	}
	c.mu.Lock()
	ptmx, running := c.ptmx, c.running
	c.mu.Unlock()
	if !running {
		return dock.Propagate
	}
	var out string
	if ke.Key == "Rune" && ke.Mods&(dock.ModCtrl|dock.ModAlt) == 0 {
		out = string(ke.Rune)
	} else if b, ok := keyBytes[ke.Key]; ok {
		out = b
	} else {
		return dock.Propagate
	}
	if _, err := ptmx.Write([]byte(out)); err != nil {
		log.Printf("Command: Failed to write input: %v", err)
	}
	return dock.Handled
}

func (c *Command) IsDirty() bool { return false }

// CanClose refuses while the process is alive; stop it first.
func (c *Command) CanClose() bool { return !c.Running() }

// OnClose kills whatever is still running.
func (c *Command) OnClose() bool {
	c.Stop()
	return true
}

func (c *Command) OnFocus()   {}
func (c *Command) OnBlur()    {}
func (c *Command) Icon() rune { return '$' }

func (c *Command) ContextMenuItems() []dock.MenuItem {
	return []dock.MenuItem{{
		Label:    "Stop Process",
		Disabled: !c.Running(),
		Action:   c.Stop,
	}}
}

func (c *Command) SnapshotMetadata() (string, map[string]interface{}) {
	data := map[string]interface{}{"command": c.name}
	if len(c.args) > 0 {
		data["args"] = append([]string(nil), c.args...)
	}
	return Name, data
}
