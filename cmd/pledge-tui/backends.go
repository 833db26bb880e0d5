// ABOUTME: Runs the page on the raw terminal engine or on Bubble Tea
// ABOUTME: Input, the settings watcher and the UI share one errgroup and stop together

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/pledgeboard/pledge-tui/internal/app"
	"github.com/pledgeboard/pledge-tui/internal/config"
	"github.com/pledgeboard/pledge-tui/internal/log"
	"github.com/pledgeboard/pledge-tui/internal/mode/btea"
	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/clipboard"
	"github.com/pledgeboard/pledge-tui/pkg/tui/input"
	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
	"github.com/pledgeboard/pledge-tui/pkg/tui/terminal"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// runRaw drives the engine's own event loop on the process terminal.
func runRaw(ctx context.Context, sess session) error {
	pt := terminal.NewProcessTerminal()
	defer pt.Close()
	restore, err := terminal.EnterSession(pt)
	if err != nil {
		return fmt.Errorf("entering terminal session: %w", err)
	}
	defer restore()
	defer terminal.RestoreOnPanic(pt)

	w, h, err := pt.Size()
	if err != nil {
		w, h = fallbackWidth, fallbackHeight
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui := tui.New(pt, w, h, tui.WithListener(terminal.NewReporting(pt)))
	opts := sess.opts
	opts.Quit = cancel
	opts.OnShare = shareTo(clipboard.New(pt))
	page := app.New(ui, opts)

	pt.OnResize(func(width, height int) {
		ui.Post(func() { ui.SetSize(width, height) })
	})

	ui.Start()
	defer ui.Stop()
	ui.RequestRender()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer terminal.RecoverGoroutine(pt)
		defer cancel()
		input.NewStdinBuffer(os.Stdin, func(k key.Key) {
			ui.Post(func() { ui.HandleKey(k) })
		}).Start(gctx)
		return nil
	})
	g.Go(func() error {
		return sess.watcher(func(s *config.Settings) {
			ui.Post(func() { page.Apply(s) })
		}).Run(gctx)
	})

	return quietCancel(g.Wait())
}

// runBubbletea hosts the page in a Bubble Tea program.
func runBubbletea(ctx context.Context, sess session) error {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h = fallbackWidth, fallbackHeight
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := btea.New(w, h)
	opts := sess.opts
	opts.Quit = m.Quit
	opts.OnShare = shareTo(clipboard.New(os.Stdout))
	m.Attach(app.New(m.UI(), opts))
	p := btea.NewProgram(ctx, m)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return btea.Run(p)
	})
	g.Go(func() error {
		return sess.watcher(func(s *config.Settings) {
			p.Send(btea.SettingsMsg{Settings: s})
		}).Run(gctx)
	})

	return quietCancel(g.Wait())
}

// quietCancel treats context cancellation as a normal exit.
func quietCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		log.Debug("shutdown: %v", err)
		return nil
	}
	return err
}
