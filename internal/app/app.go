// ABOUTME: The "Back this project" page: tier and currency selects, a help tooltip, a share menu
// ABOUTME: Wires campaign data, settings and keybindings into widgets on a tui.TUI

package app

import (
	"fmt"
	"sync"

	"github.com/pledgeboard/pledge-tui/internal/campaign"
	"github.com/pledgeboard/pledge-tui/internal/config"
	"github.com/pledgeboard/pledge-tui/internal/keybindings"
	"github.com/pledgeboard/pledge-tui/internal/log"
	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/component"
	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
	"github.com/pledgeboard/pledge-tui/pkg/tui/listbox"
	"github.com/pledgeboard/pledge-tui/pkg/tui/theme"
)

// Layer IDs.
const (
	TierLayer     = "tier"
	CurrencyLayer = "currency"
	HelpLayer     = "help"
	ShareLayer    = "share"
)

const (
	footerHint = "tab next field · enter choose"
	quitHint   = "esc close · ctrl+c quit"
)

// Pledge is what the user has chosen so far.
type Pledge struct {
	TierID   string
	Currency string
}

// Options configures the page.
type Options struct {
	Campaign *campaign.Campaign
	Settings *config.Settings
	Keys     *keybindings.Manager
	// Quit is called for the quit binding.
	Quit func()
	// OnShare is called when a share target is picked.
	OnShare func(campaign.ShareTarget)
	// LightBackground selects the light theme when settings name none.
	LightBackground bool
}

// App owns the page widgets.
type App struct {
	ui   *tui.TUI
	opts Options

	tier     *component.Select
	currency *component.Select
	help     *component.Tooltip
	share    *component.Dropdown
	summary  *component.Text
	status   *component.StatusLine

	mu     sync.Mutex
	pledge Pledge
}

// New builds the page on ui and focuses the tier select.
func New(ui *tui.TUI, opts Options) *App {
	if opts.Campaign == nil {
		opts.Campaign = campaign.Default()
	}
	if len(opts.Campaign.Currencies) == 0 {
		opts.Campaign.Currencies = []string{"USD"}
	}
	if opts.Settings == nil {
		opts.Settings = config.Defaults()
	}
	if opts.Keys == nil {
		opts.Keys, _ = keybindings.New(opts.Settings.Keybindings)
	}

	theme.Set(theme.Select(opts.Settings.Theme, !opts.LightBackground))
	a := &App{ui: ui, opts: opts}
	a.pledge.Currency = opts.Campaign.Currencies[0]
	a.build()
	ui.OnKey(a.HandleKey)
	ui.SetFocus(a.tier)
	return a
}

func (a *App) build() {
	c := a.opts.Campaign
	s := a.opts.Settings
	p := theme.Current().Palette
	placement := s.PlacementValue()

	a.tier = component.NewSelect(a.ui, component.SelectConfig{
		ID:          TierLayer,
		Placeholder: "Choose a reward tier",
		Options:     a.tierOptions(a.pledge.Currency),
		Placement:   placement,
		Filter:      filterFor(s.Filter),
		ListHeight:  s.ListHeight,
		Flip:        s.FlipEnabled(),
		Clamp:       s.ClampEnabled(),
		KeyMap:      a.opts.Keys,
		OnChange:    a.tierChanged,
	})

	currencies := make([]listbox.Option, len(c.Currencies))
	for i, cur := range c.Currencies {
		currencies[i] = listbox.Option{Value: cur, Label: cur}
	}
	a.currency = component.NewSelect(a.ui, component.SelectConfig{
		ID:         CurrencyLayer,
		Options:    currencies,
		Value:      a.pledge.Currency,
		Placement:  placement,
		ListHeight: s.ListHeight,
		Flip:       s.FlipEnabled(),
		Clamp:      s.ClampEnabled(),
		NoSearch:   true,
		KeyMap:     a.opts.Keys,
		OnChange:   a.currencyChanged,
	})

	a.help = component.NewTooltip(a.ui, component.TooltipConfig{
		ID:       HelpLayer,
		Anchor:   "What do I get?",
		Content:  c.Help,
		Markdown: true,
		Style:    component.MarkdownStyle(s.MarkdownStyle),
		Width:    48,
		Flip:     true,
		Clamp:    true,
	})

	items := make([]component.MenuItem, len(c.Share))
	for i, target := range c.Share {
		items[i] = component.MenuItem{Label: target.Label, Action: func() { a.shared(target) }}
	}
	a.share = component.NewDropdown(a.ui, component.DropdownConfig{
		ID:        ShareLayer,
		Label:     "Share",
		Items:     items,
		Placement: placement,
		Flip:      s.FlipEnabled(),
		Clamp:     s.ClampEnabled(),
		KeyMap:    a.opts.Keys,
	})

	a.summary = component.NewText("")
	a.status = component.NewStatusLine(footerHint, quitHint).WithColor(p.Muted)
	a.refreshSummary()

	a.ui.Container().Add(
		component.NewText(c.Title).WithColor(p.Bold),
		component.NewMarkdown(c.Description, component.MarkdownStyle(s.MarkdownStyle)),
		component.NewText("Reward tier").WithColor(p.Accent),
		a.tier,
		component.NewSpacer(1),
		component.NewText("Currency").WithColor(p.Accent),
		a.currency,
		component.NewSpacer(1),
		a.help,
		component.NewSpacer(1),
		a.share,
		component.NewSpacer(1),
		a.summary,
		a.status,
	)
}

func filterFor(name string) listbox.Filter {
	if name == config.FilterFuzzy {
		return listbox.FuzzyFilter
	}
	return listbox.SubstringFilter
}

func (a *App) tierOptions(currency string) []listbox.Option {
	out := make([]listbox.Option, len(a.opts.Campaign.Tiers))
	for i, t := range a.opts.Campaign.Tiers {
		out[i] = listbox.Option{Value: t.ID, Label: t.Label(currency)}
	}
	return out
}

func (a *App) tierChanged(id string) {
	a.mu.Lock()
	a.pledge.TierID = id
	a.mu.Unlock()
	log.Debug("app: tier %s", id)
	a.refreshSummary()
}

func (a *App) currencyChanged(cur string) {
	a.mu.Lock()
	a.pledge.Currency = cur
	a.mu.Unlock()
	log.Debug("app: currency %s", cur)
	a.tier.SetOptions(a.tierOptions(cur))
	a.refreshSummary()
}

func (a *App) shared(target campaign.ShareTarget) {
	a.status.SetLeft("Shared via " + target.Label + ": " + target.URL)
	if a.opts.OnShare != nil {
		a.opts.OnShare(target)
	}
	a.ui.RequestRender()
}

func (a *App) refreshSummary() {
	pl := a.Pledge()
	tier, ok := a.opts.Campaign.Tier(pl.TierID)
	if !ok {
		a.summary.SetContent("No tier selected yet.")
	} else {
		a.summary.SetContent(fmt.Sprintf("Pledge: %s, %d %s", tier.Name, tier.Amount, pl.Currency))
	}
	a.ui.RequestRender()
}

// Pledge returns the current choice.
func (a *App) Pledge() Pledge {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pledge
}

// HandleKey handles page-level bindings the focused widget left alone.
func (a *App) HandleKey(k key.Key) bool {
	switch a.opts.Keys.ActionForKey(k) {
	case config.ActionFocusNext:
		a.ui.FocusNext()
	case config.ActionFocusPrev:
		a.ui.FocusPrev()
	case config.ActionQuit:
		if a.opts.Quit != nil {
			a.opts.Quit()
		}
	default:
		return false
	}
	return true
}

// Apply takes reloaded settings: placement and keybindings change live.
func (a *App) Apply(s *config.Settings) {
	if unknown := a.opts.Keys.Reload(s.Keybindings); len(unknown) > 0 {
		log.Warn("app: unknown keybinding actions %v", unknown)
	}
	theme.Set(theme.Select(s.Theme, !a.opts.LightBackground))
	p := s.PlacementValue()
	a.tier.SetPlacement(p)
	a.currency.SetPlacement(p)
	a.share.SetPlacement(p)
	a.ui.RequestRender()
}

// Widgets exposes the page widgets to backends and tests.
func (a *App) Widgets() (tier, currency *component.Select, help *component.Tooltip, share *component.Dropdown) {
	return a.tier, a.currency, a.help, a.share
}
