// ABOUTME: Campaign data for the pledge page: title, blurb, reward tiers, currencies, share targets
// ABOUTME: Loaded from YAML with yaml.v3; Default returns the built-in demo campaign

package campaign

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tier is one reward level.
type Tier struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Amount int    `yaml:"amount"`
	// Limit caps the number of backers; 0 means unlimited.
	Limit int `yaml:"limit,omitempty"`
}

// Label returns the text shown in the tier list.
func (t Tier) Label(currency string) string {
	s := t.Name + " (" + strconv.Itoa(t.Amount) + " " + currency + ")"
	if t.Limit > 0 {
		s += ", limited to " + strconv.Itoa(t.Limit)
	}
	return s
}

// ShareTarget is an entry of the share menu.
type ShareTarget struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Campaign describes the project being backed.
type Campaign struct {
	Title string `yaml:"title"`
	// Description and Help are markdown.
	Description string        `yaml:"description"`
	Help        string        `yaml:"help"`
	Currencies  []string      `yaml:"currencies"`
	Tiers       []Tier        `yaml:"tiers"`
	Share       []ShareTarget `yaml:"share"`
}

// Load reads a campaign file.
func Load(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading campaign: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates campaign YAML.
func Parse(data []byte) (*Campaign, error) {
	var c Campaign
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing campaign: %w", err)
	}
	if len(c.Currencies) == 0 {
		c.Currencies = []string{"USD"}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the campaign has a title and well-formed tiers.
func (c *Campaign) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if len(c.Tiers) == 0 {
		errs = append(errs, errors.New("at least one tier is required"))
	}
	seen := make(map[string]bool, len(c.Tiers))
	for i, t := range c.Tiers {
		switch {
		case t.ID == "":
			errs = append(errs, fmt.Errorf("tier %d: id is required", i))
		case seen[t.ID]:
			errs = append(errs, fmt.Errorf("tier %d: duplicate id %q", i, t.ID))
		}
		seen[t.ID] = true
		if t.Amount <= 0 {
			errs = append(errs, fmt.Errorf("tier %q: amount must be positive", t.ID))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid campaign: %w", err)
	}
	return nil
}

// Tier returns the tier with the given id.
func (c *Campaign) Tier(id string) (Tier, bool) {
	for _, t := range c.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// Default returns the built-in demo campaign.
func Default() *Campaign {
	return &Campaign{
		Title: "Lanternfish: a pocket field recorder",
		Description: "A **palm-sized** field recorder with two mics and a week of battery.\n\n" +
			"Pick a reward tier below to back the project.",
		Help: "Every backer gets **project updates** and a name in the manual.\n\n" +
			"- *Backer Edition* and up ship a recorder.\n" +
			"- *Collector's Bundle* adds the wind jammer kit.",
		Currencies: []string{"USD", "EUR", "GBP", "JPY"},
		Tiers: []Tier{
			{ID: "early", Name: "Early Bird", Amount: 89, Limit: 500},
			{ID: "backer", Name: "Backer Edition", Amount: 109},
			{ID: "deluxe", Name: "Deluxe Box", Amount: 149},
			{ID: "collector", Name: "Collector's Bundle", Amount: 229, Limit: 100},
			{ID: "patron", Name: "Patron of the Arts", Amount: 500},
		},
		Share: []ShareTarget{
			{Label: "Copy link", URL: "https://example.org/lanternfish"},
			{Label: "Email a friend", URL: "mailto:?subject=Lanternfish"},
		},
	}
}
