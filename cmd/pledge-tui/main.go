// ABOUTME: CLI entry point for pledge-tui with terminal crash recovery
// ABOUTME: Parses flags, loads settings and the campaign, dispatches to the selected backend

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	// termfix must be imported before any package that imports bubbletea.
	// Its init fixes the background for lipgloss so BubbleTea never sends
	// OSC 10/11 queries whose replies leak into input.
	"github.com/pledgeboard/pledge-tui/internal/termfix"

	"github.com/pledgeboard/pledge-tui/internal/app"
	"github.com/pledgeboard/pledge-tui/internal/campaign"
	"github.com/pledgeboard/pledge-tui/internal/config"
	"github.com/pledgeboard/pledge-tui/internal/keybindings"
	"github.com/pledgeboard/pledge-tui/internal/log"
	"github.com/pledgeboard/pledge-tui/pkg/tui/clipboard"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("pledge-tui %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// session is everything a backend needs to build and run the page.
type session struct {
	args    cliArgs
	opts    app.Options
	global  string
	project string
}

// watcher returns a settings watcher that re-applies flag overrides and
// hands the result to apply.
func (s session) watcher(apply func(*config.Settings)) *config.Watcher {
	return config.NewWatcher(s.global, s.project,
		func(st *config.Settings) {
			s.args.overrides(st)
			log.Info("config: settings changed, placement=%s", st.Placement)
			apply(st)
		},
		func(err error) { log.Warn("config: reload failed: %v", err) },
	)
}

// run performs the initialization sequence and dispatches to the backend.
func run(args cliArgs, stdout io.Writer) error {
	sess, err := prepare(args)
	if err != nil {
		return err
	}

	if args.keysTemplate {
		tmpl, err := config.NewKeybindings().ExportTemplate()
		if err != nil {
			return fmt.Errorf("exporting keybindings: %w", err)
		}
		_, err = io.WriteString(stdout, tmpl)
		return err
	}
	if args.listKeys {
		_, err := io.WriteString(stdout, sess.opts.Keys.FormatAll())
		return err
	}

	closeLog, err := setupLogging(args, sess.opts.Settings)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("pledge-tui %s starting, backend=%s campaign=%q", version, args.backend, sess.opts.Campaign.Title)
	switch args.backend {
	case backendBubbletea:
		return runBubbletea(ctx, sess)
	default:
		return runRaw(ctx, sess)
	}
}

// prepare loads settings, keybindings and the campaign.
func prepare(args cliArgs) (session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return session{}, fmt.Errorf("getting working directory: %w", err)
	}
	sess := session{
		args:    args,
		global:  config.GlobalConfigFile(),
		project: config.FindProjectConfig(cwd),
	}
	if args.config != "" {
		sess.global = args.config
	}

	settings, err := config.Load(sess.global, sess.project)
	if err != nil {
		return session{}, fmt.Errorf("loading settings: %w", err)
	}
	args.overrides(settings)

	keys, unknown := keybindings.New(settings.Keybindings)
	if len(unknown) > 0 {
		log.Warn("config: unknown keybinding actions %v", unknown)
	}
	for _, c := range keys.Conflicts() {
		log.Warn("config: key %s bound to %v", c.Key, c.Actions)
	}

	camp := campaign.Default()
	if args.campaign != "" {
		if camp, err = campaign.Load(args.campaign); err != nil {
			return session{}, err
		}
	}

	sess.opts = app.Options{
		Campaign: camp,
		Settings: settings,
		Keys:     keys,

		LightBackground: !termfix.DarkBackground(),
	}
	return sess, nil
}

// shareTo copies a share target's URL for the user.
func shareTo(cb *clipboard.Clipboard) func(campaign.ShareTarget) {
	return func(t campaign.ShareTarget) {
		if err := cb.Write(t.URL); err != nil {
			log.Warn("share: %s: %v", t.Label, err)
			return
		}
		log.Info("share: copied %s (%s)", t.Label, t.URL)
	}
}

// setupLogging routes log output away from the screen: to --log-file when
// given, otherwise nowhere.
func setupLogging(args cliArgs, s *config.Settings) (func() error, error) {
	if s.LogLevel != "" {
		level, err := log.ParseLevel(s.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}
		log.SetLevel(level)
	}

	if args.logFile == "" {
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	return log.OpenFile(args.logFile)
}
