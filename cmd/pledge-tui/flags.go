// ABOUTME: CLI flag parsing using spf13/pflag
// ABOUTME: Supports --campaign, --config, --placement, --filter, --backend, --log-file, --debug, --version

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/pledgeboard/pledge-tui/internal/config"
	"github.com/pledgeboard/pledge-tui/pkg/tui/geom"
)

const (
	backendRaw       = "raw"
	backendBubbletea = "bubbletea"
)

type cliArgs struct {
	campaign     string
	config       string
	placement    string
	filter       string
	logFile      string
	backend      string
	debug        bool
	version      bool
	listKeys     bool
	keysTemplate bool
}

func parseFlags(argv []string, usageOut io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := pflag.NewFlagSet("pledge-tui", pflag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.StringVar(&args.campaign, "campaign", "", "campaign YAML file (default: built-in demo campaign)")
	fs.StringVar(&args.config, "config", "", "settings file used instead of the global one")
	fs.StringVar(&args.placement, "placement", "", "overlay placement, e.g. bottom-start or top")
	fs.StringVar(&args.filter, "filter", "", "option filter: substring or fuzzy")
	fs.StringVar(&args.logFile, "log-file", "", "append log output to this file")
	fs.StringVar(&args.backend, "backend", backendRaw, "terminal backend: raw or bubbletea")
	fs.BoolVarP(&args.debug, "debug", "d", false, "log at debug level")
	fs.BoolVarP(&args.version, "version", "v", false, "show version and exit")
	fs.BoolVar(&args.listKeys, "list-keys", false, "print the effective keybindings and exit")
	fs.BoolVar(&args.keysTemplate, "keybindings-template", false, "print a keybindings YAML template and exit")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if fs.NArg() > 0 {
		return args, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if args.backend != backendRaw && args.backend != backendBubbletea {
		return args, fmt.Errorf("unknown backend %q (want %s or %s)", args.backend, backendRaw, backendBubbletea)
	}
	if args.placement != "" {
		if _, err := geom.ParsePlacement(args.placement); err != nil {
			return args, fmt.Errorf("--placement: %w", err)
		}
	}
	if args.filter != "" && args.filter != config.FilterSubstring && args.filter != config.FilterFuzzy {
		return args, fmt.Errorf("--filter: unknown filter %q", args.filter)
	}
	return args, nil
}

// overrides applies the flag values that take precedence over settings files.
func (a cliArgs) overrides(s *config.Settings) {
	if a.placement != "" {
		s.Placement = a.placement
	}
	if a.filter != "" {
		s.Filter = a.filter
	}
	if a.debug {
		s.LogLevel = "debug"
	}
}
