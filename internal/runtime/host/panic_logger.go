// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/host/panic_logger.go
// Summary: Captures panics from the host loop and its pollers.
// Notes: The cleanup hook restores the terminal before the stack is printed.

package hostruntime

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"
)

// PanicLogger captures panic stack traces and optionally appends them to a file.
type PanicLogger struct {
	path    string
	mu      sync.Mutex
	cleanup func()
	exit    func(code int)
}

// NewPanicLogger writes panic reports to path when it is non-empty.
func NewPanicLogger(path string) *PanicLogger {
	return &PanicLogger{path: path, exit: os.Exit}
}

// SetCleanup registers fn to run once before a panic is reported, normally
// screen.Fini so the report lands on a usable terminal.
func (p *PanicLogger) SetCleanup(fn func()) {
	p.mu.Lock()
	p.cleanup = fn
	p.mu.Unlock()
}

// Recover must be deferred directly. It reports the panic and exits with
// status 2.
func (p *PanicLogger) Recover(context string) {
	if r := recover(); r != nil {
		p.report(context, r)
		p.exit(2)
	}
}

// Go runs fn in a goroutine guarded by Recover.
func (p *PanicLogger) Go(context string, fn func()) {
	go func() {
		defer p.Recover(context)
		fn()
	}()
}

func (p *PanicLogger) report(context string, r interface{}) {
	p.mu.Lock()
	cleanup := p.cleanup
	p.cleanup = nil
	p.mu.Unlock()
	if cleanup != nil {
		cleanup()
	}

	buf := make([]byte, 1<<16)
	stack := buf[:runtime.Stack(buf, true)]
	msg := fmt.Sprintf("panic in %s: %v\n%s", context, r, stack)
	log.Print(msg)
	fmt.Fprintln(os.Stderr, msg)
	if p.path == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Host: Unable to write panic log: %v", err)
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "[%s] panic in %s: %v\n%s\n", time.Now().Format(time.RFC3339Nano), context, r, stack)
}
