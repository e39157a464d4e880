// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/cli/run.go
// Summary: The `run` command: interactive workspace on the current terminal.

package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
	hostruntime "github.com/framegrace/texeldock/internal/runtime/host"
	"github.com/framegrace/texeldock/storage"
)

// ErrNotTerminal is returned by run when stdout is redirected.
var ErrNotTerminal = errors.New("texeldock run needs an interactive terminal")

type runOptions struct {
	slot     string
	fresh    bool
	logFile  string
	panicLog string
}

// RunCmd returns the `run` command.
func RunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the workspace in this terminal",
		Long: `Open the docking workspace. The layout in the default slot is restored,
or the starter layout when nothing was saved. The layout is saved back on exit.
Press Ctrl+Q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return ErrNotTerminal
			}
			return runWorkspace(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.slot, "slot", "", "Layout slot to restore and autosave (default from config)")
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "Start from the starter layout, ignoring the saved slot")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Log file (default <config>/logs/texeldock.log)")
	cmd.Flags().StringVar(&opts.panicLog, "panic-log", "", "File to append panic stack traces")
	return cmd
}

// session is a workspace restored from a slot. Autosave is off when the
// slot could not be restored, so a failed load never overwrites it.
type session struct {
	slot     string
	ws       *dock.Workspace
	autosave bool
}

func (e *env) openSession(ctx context.Context, opts runOptions) (*session, error) {
	slot := e.slotName(opts.slot)
	rec, err := e.loadRecord(ctx, slot, opts.fresh)
	if err != nil {
		return nil, err
	}
	s := &session{
		slot:     slot,
		ws:       dock.NewWorkspace(dock.TerminalSettings(), nil),
		autosave: e.cfg.GetBool("", "autosave", true),
	}
	_, err = s.ws.Apply(rec, e.reg)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, dock.ErrUnsupportedVersion):
		return nil, fmt.Errorf("slot %q: %w", slot, err)
	}

	log.Printf("CLI: Slot %q could not be restored (%v), using the starter layout without autosave", slot, err)
	starter, serr := starterLayout()
	if serr != nil {
		return nil, serr
	}
	if _, err := s.ws.Apply(starter, e.reg); err != nil {
		return nil, fmt.Errorf("apply starter layout: %w", err)
	}
	s.autosave = false
	return s, nil
}

// save writes the workspace back to its slot when autosave is on.
func (s *session) save(ctx context.Context, store storage.LayoutStore) error {
	if !s.autosave {
		log.Printf("CLI: Autosave to %q skipped", s.slot)
		return nil
	}
	if err := store.Save(context.WithoutCancel(ctx), s.slot, s.ws.Capture()); err != nil {
		return fmt.Errorf("autosave to %q: %w", s.slot, err)
	}
	log.Printf("CLI: Saved layout to slot %q", s.slot)
	return nil
}

func runWorkspace(ctx context.Context, opts runOptions) error {
	logFile, err := hostruntime.SetupLogging(opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	} else {
		defer logFile.Close()
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	sess, err := e.openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer closeContents(sess.ws)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen failed: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen failed: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	defer screen.DisableMouse()
	screen.HideCursor()

	panics := hostruntime.NewPanicLogger(opts.panicLog)
	panics.SetCleanup(screen.Fini)
	defer panics.Recover("run")

	host := hostruntime.New(screen, sess.ws, panics)
	host.ApplyConfig(e.cfg)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	configs := make(chan config.Config, 1)
	panics.Go("configWatch", func() {
		err := config.Watch(ctx, func(cfg config.Config) {
			select {
			case configs <- config.Clone(cfg):
			default:
			}
		})
		if err != nil {
			log.Printf("Config: Watch stopped: %v", err)
		}
	})

	runErr := host.Run(ctx, configs)
	if err := sess.save(ctx, e.store); err != nil {
		log.Printf("CLI: %v", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}
