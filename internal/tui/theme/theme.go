// Package theme defines color themes for the payplan TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the roles the screens draw with to concrete colors.
type Theme struct {
	Name string

	Background    lipgloss.Color
	Surface       lipgloss.Color // cards and panels
	SurfaceHover  lipgloss.Color // active tab
	SurfaceBright lipgloss.Color // selected row
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // focused dialogs

	TextDim     lipgloss.Color // hints
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Highlight    lipgloss.Color // key names, default bars

	// Allocation buckets, shared by the pie, the tier bars and the growth chart.
	Spend  lipgloss.Color
	Save   lipgloss.Color
	Invest lipgloss.Color
	Growth lipgloss.Color // projected value above what was paid in

	Positive lipgloss.Color // saved confirmations
	Warn     lipgloss.Color // rejected submissions, failed saves
}

// palette is the raw color ramp of a theme: four surface steps, a text
// ramp, and the hues the roles are drawn from.
type palette struct {
	bg, surface, hover, bright string
	border                     string
	dim, muted, text           string
	accent, accentHi           string
	orange, blue, green        string
	greenHi, cyan, red         string
}

func newTheme(name string, p palette) Theme {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Theme{
		Name:          name,
		Background:    c(p.bg),
		Surface:       c(p.surface),
		SurfaceHover:  c(p.hover),
		SurfaceBright: c(p.bright),
		Border:        c(p.border),
		BorderAccent:  c(p.accent),
		TextDim:       c(p.dim),
		TextMuted:     c(p.muted),
		TextPrimary:   c(p.text),
		Accent:        c(p.accent),
		AccentBright:  c(p.accentHi),
		Highlight:     c(p.cyan),
		Spend:         c(p.orange),
		Save:          c(p.blue),
		Invest:        c(p.green),
		Growth:        c(p.greenHi),
		Positive:      c(p.greenHi),
		Warn:          c(p.red),
	}
}

// FlexokiDark is the default: warm, paper-inspired dark.
var FlexokiDark = newTheme("flexoki-dark", palette{
	bg: "#100F0F", surface: "#1C1B1A", hover: "#282726", bright: "#343331",
	border: "#403E3C",
	dim:    "#575653", muted: "#878580", text: "#FFFCF0",
	accent: "#3AA99F", accentHi: "#5BC8BE",
	orange: "#DA702C", blue: "#4385BE", green: "#879A39",
	greenHi: "#A3B859", cyan: "#24837B", red: "#D14D41",
})

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = newTheme("catppuccin-mocha", palette{
	bg: "#1E1E2E", surface: "#313244", hover: "#45475A", bright: "#585B70",
	border: "#585B70",
	dim:    "#6C7086", muted: "#A6ADC8", text: "#CDD6F4",
	accent: "#89B4FA", accentHi: "#B4D0FB",
	orange: "#FAB387", blue: "#89B4FA", green: "#A6E3A1",
	greenHi: "#C6F6C1", cyan: "#94E2D5", red: "#F38BA8",
})

// TokyoNight is a cool blue and purple theme.
var TokyoNight = newTheme("tokyo-night", palette{
	bg: "#1A1B26", surface: "#24283B", hover: "#343A52", bright: "#414868",
	border: "#565F89",
	dim:    "#565F89", muted: "#A9B1D6", text: "#C0CAF5",
	accent: "#7AA2F7", accentHi: "#A9C1FF",
	orange: "#FF9E64", blue: "#7AA2F7", green: "#9ECE6A",
	greenHi: "#B9E87A", cyan: "#7DCFFF", red: "#F7768E",
})

// Terminal uses the ANSI 16 colors only.
var Terminal = newTheme("terminal", palette{
	bg: "0", surface: "0", hover: "8", bright: "8",
	border: "8",
	dim:    "8", muted: "7", text: "15",
	accent: "6", accentHi: "14",
	orange: "3", blue: "4", green: "2",
	greenHi: "10", cyan: "6", red: "1",
})

// Active is the currently selected theme.
var Active = FlexokiDark

// All available themes, in the order the pickers list them.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names returns the names of all themes in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}
