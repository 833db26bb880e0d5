// ABOUTME: Semantic color theme types for overlay widgets: Color, Palette, Theme
// ABOUTME: Color.Apply wraps text in ANSI codes; Palette maps semantic roles to colors

package theme

// Color represents a terminal color that can style text.
type Color struct {
	code string
}

// NewColor creates a Color from a raw ANSI escape code.
func NewColor(code string) Color {
	return Color{code: code}
}

// Apply wraps text with the ANSI color code and a reset suffix.
// If the color code is empty, the text is returned unchanged.
func (c Color) Apply(text string) string {
	if c.code == "" {
		return text
	}
	return c.code + text + "\x1b[0m"
}

// Code returns the raw ANSI escape code.
func (c Color) Code() string {
	return c.code
}

// Bold returns a new Color that prepends bold (\x1b[1m) to the code.
func (c Color) Bold() Color {
	return Color{code: "\x1b[1m" + c.code}
}

// Dim returns a new Color that prepends dim (\x1b[2m) to the code.
func (c Color) Dim() Color {
	return Color{code: "\x1b[2m" + c.code}
}

// Palette holds all semantic colors for a theme.
type Palette struct {
	// Text
	Primary Color
	Muted   Color
	Accent  Color
	Warning Color

	// Overlay widgets
	Border      Color
	Selection   Color
	Match       Color
	Placeholder Color
	Disabled    Color
	Focus       Color

	// Formatting
	Bold Color
	Dim  Color
}

// Theme holds a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// Dark is the theme for dark terminal backgrounds.
func Dark() *Theme {
	return &Theme{Name: "dark", Palette: DefaultPalette()}
}

// Light swaps the accents that wash out on a light background.
func Light() *Theme {
	p := DefaultPalette()
	p.Accent = NewColor("\x1b[38;5;130m")
	p.Warning = NewColor("\x1b[38;5;94m")
	p.Border = NewColor("\x1b[38;5;245m")
	p.Placeholder = NewColor("\x1b[38;5;245m")
	p.Focus = NewColor("\x1b[34m")
	return &Theme{Name: "light", Palette: p}
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() Palette {
	return Palette{
		Primary: NewColor("\x1b[0m"),
		Muted:   NewColor("\x1b[2m"),
		Accent:  NewColor("\x1b[38;5;208m"),
		Warning: NewColor("\x1b[33m"),

		Border:      NewColor("\x1b[90m"),
		Selection:   NewColor("\x1b[7m"),
		Match:       NewColor("\x1b[4m"),
		Placeholder: NewColor("\x1b[90m"),
		Disabled:    NewColor("\x1b[2;9m"),
		Focus:       NewColor("\x1b[36m"),

		Bold: NewColor("\x1b[1m"),
		Dim:  NewColor("\x1b[2m"),
	}
}
