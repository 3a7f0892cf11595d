package picker

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme defines the colours used by the picker.
type Theme struct {
	Primary        lipgloss.Color // title
	Secondary      lipgloss.Color // selected history row
	Frozen         lipgloss.Color // title while frozen
	Error          lipgloss.Color
	Success        lipgloss.Color
	Text           lipgloss.Color
	TextMuted      lipgloss.Color // labels, hints
	BackgroundElem lipgloss.Color // selected row background
	Border         lipgloss.Color
}

// DarkTheme suits dark terminal backgrounds.
func DarkTheme() Theme {
	return Theme{
		Primary:        lipgloss.Color("#fab283"),
		Secondary:      lipgloss.Color("#5c9cf5"),
		Frozen:         lipgloss.Color("#56b6c2"),
		Error:          lipgloss.Color("#e06c75"),
		Success:        lipgloss.Color("#7fd88f"),
		Text:           lipgloss.Color("#eeeeee"),
		TextMuted:      lipgloss.Color("#808080"),
		BackgroundElem: lipgloss.Color("#1e1e1e"),
		Border:         lipgloss.Color("#484848"),
	}
}

// LightTheme suits bright terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Primary:        lipgloss.Color("#b35c00"),
		Secondary:      lipgloss.Color("#0550ae"),
		Frozen:         lipgloss.Color("#0969da"),
		Error:          lipgloss.Color("#cf222e"),
		Success:        lipgloss.Color("#116329"),
		Text:           lipgloss.Color("#1f2328"),
		TextMuted:      lipgloss.Color("#656d76"),
		BackgroundElem: lipgloss.Color("#f6f8fa"),
		Border:         lipgloss.Color("#d0d7de"),
	}
}

// ThemeByName returns a theme by name. Defaults to dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DarkTheme()
	}
}

type styles struct {
	title    lipgloss.Style
	frozen   lipgloss.Style
	header   lipgloss.Style
	group    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	selected lipgloss.Style
	err      lipgloss.Style
	ok       lipgloss.Style
	dim      lipgloss.Style

	hintKey  lipgloss.Style
	hintDesc lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		frozen:   lipgloss.NewStyle().Bold(true).Foreground(t.Frozen),
		header:   lipgloss.NewStyle().Foreground(t.Border),
		group:    lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		label:    lipgloss.NewStyle().Foreground(t.TextMuted),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Background(t.BackgroundElem),
		err:      lipgloss.NewStyle().Foreground(t.Error),
		ok:       lipgloss.NewStyle().Foreground(t.Success),
		dim:      lipgloss.NewStyle().Foreground(t.TextMuted),

		hintKey:  lipgloss.NewStyle().Foreground(t.Text),
		hintDesc: lipgloss.NewStyle().Foreground(t.TextMuted),
	}
}

// swatch renders text on a block of the given colour, choosing black or
// white text by perceived lightness.
func swatch(hex, text string) string {
	fg := lipgloss.Color("#ffffff")
	if contrastIsDark(hex) {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(fg).
		Render(text)
}

// contrastIsDark reports whether dark text reads better on hex.
func contrastIsDark(hex string) bool {
	c, err := colorful.Hex(hex)
	if err != nil {
		return false
	}
	l, _, _ := c.Lab()
	return l > 0.55
}
