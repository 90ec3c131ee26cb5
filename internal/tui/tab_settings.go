package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/config"
	"github.com/theirongolddev/payplan/internal/intake"
	"github.com/theirongolddev/payplan/internal/tui/components"
	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldDefaultTier
	settingsFieldDefaultMonths
	settingsFieldJournal
)

type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool
	saveErr error
}

// settingField describes one editable config value. apply ignores input it
// cannot parse, leaving cfg unchanged.
type settingField struct {
	label       string
	placeholder string
	charLimit   int
	show        func(config.Config) string
	apply       func(*config.Config, string)
}

var settingFields = [...]settingField{
	settingsFieldTheme: {
		label:       "Theme",
		placeholder: strings.Join(theme.Names(), ", "),
		show:        func(c config.Config) string { return c.Appearance.Theme },
		apply: func(c *config.Config, v string) {
			if theme.Valid(v) {
				c.Appearance.Theme = v
				theme.SetActive(v)
			}
		},
	},
	settingsFieldCurrency: {
		label:       "Currency Symbol",
		placeholder: "$",
		charLimit:   4,
		show:        func(c config.Config) string { return c.General.CurrencySymbol },
		apply: func(c *config.Config, v string) {
			if v != "" {
				c.General.CurrencySymbol = v
			}
		},
	},
	settingsFieldDefaultTier: {
		label:       "Default Tier",
		placeholder: "Saver, Balancer, Gambler (leave empty to clear)",
		show:        func(c config.Config) string { return c.General.DefaultTier },
		apply: func(c *config.Config, v string) {
			if v == "" {
				c.General.DefaultTier = ""
				return
			}
			tier, ok := intake.ParseRiskTier(v)
			if !ok {
				return
			}
			if _, err := allocation.Lookup(tier); err == nil {
				c.General.DefaultTier = string(tier)
			}
		},
	},
	settingsFieldDefaultMonths: {
		label:       "Default Months",
		placeholder: "12 (leave empty to clear)",
		show: func(c config.Config) string {
			if c.General.DefaultMonths <= 0 {
				return ""
			}
			return strconv.Itoa(c.General.DefaultMonths)
		},
		apply: func(c *config.Config, v string) {
			if v == "" {
				c.General.DefaultMonths = 0
			} else if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= intake.MaxMonths {
				c.General.DefaultMonths = n
			}
		},
	},
	settingsFieldJournal: {
		label:       "Journal",
		placeholder: "true or false",
		show:        func(c config.Config) string { return strconv.FormatBool(c.Journal.Enabled) },
		apply: func(c *config.Config, v string) {
			switch strings.ToLower(v) {
			case "true", "1", "yes", "on":
				c.Journal.Enabled = true
			case "false", "0", "no", "off":
				c.Journal.Enabled = false
			}
		},
	},
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsKey(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.settings.cursor = min(a.settings.cursor+1, len(settingFields)-1)
	case "k", "up":
		a.settings.cursor = max(a.settings.cursor-1, 0)
	case "enter":
		m, cmd := a.settingsStartEdit()
		return true, m, cmd
	default:
		return false, a, nil
	}
	return true, a, nil
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	f := settingFields[a.settings.cursor]
	ti := newSettingsInput()
	ti.Placeholder = f.placeholder
	if f.charLimit > 0 {
		ti.CharLimit = f.charLimit
	}
	ti.SetValue(f.show(a.cfg))
	ti.Focus()

	a.settings.input = ti
	a.settings.editing = true
	a.settings.saved = false
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}
	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the input to the field under the cursor and writes
// the config file.
func (a *App) settingsSave() {
	cfg := a.cfg
	settingFields[a.settings.cursor].apply(&cfg, strings.TrimSpace(a.settings.input.Value()))
	a.cfg = cfg
	a.settings.saveErr = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	innerW := components.PanelInnerWidth(cw)
	onSurface := lipgloss.NewStyle().Background(t.Surface)
	onCursor := lipgloss.NewStyle().Background(t.SurfaceBright)
	label := onSurface.Foreground(t.TextMuted)
	value := onSurface.Foreground(t.TextPrimary)

	var form strings.Builder
	for i, f := range settingFields {
		name := fmt.Sprintf("%-18s ", f.label+":")
		shown := f.show(a.cfg)
		if shown == "" {
			shown = "(not set)"
		}
		if i == settingsFieldJournal && a.cfg.Journal.Enabled != (a.journal != nil) {
			shown += " (applies on restart)"
		}

		switch {
		case i != a.settings.cursor:
			form.WriteString(onSurface.Render("  ") + label.Render(name) + value.Render(shown))
		case a.settings.editing:
			form.WriteString(onSurface.Foreground(t.AccentBright).Render("▸ " + name))
			form.WriteString(a.settings.input.View())
		default:
			row := onCursor.Foreground(t.AccentBright).Render("▸ ") +
				onCursor.Foreground(t.Accent).Bold(true).Render(name) +
				onCursor.Foreground(t.TextPrimary).Bold(true).Render(shown)
			if gap := innerW - lipgloss.Width(row); gap > 0 {
				row += onCursor.Render(strings.Repeat(" ", gap))
			}
			form.WriteString(row)
		}
		form.WriteString("\n")
	}

	switch {
	case a.settings.saveErr != nil:
		form.WriteString("\n" + onSurface.Foreground(t.Warn).Render("Save failed: "+a.settings.saveErr.Error()))
	case a.settings.saved:
		form.WriteString("\n" + onSurface.Foreground(t.Positive).Render("Saved!"))
	}
	form.WriteString("\n" + label.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	info := []struct{ k, v string }{
		{"Config file", config.ConfigPath()},
		{"Journal file", config.JournalPath(a.cfg)},
		{"Records (session)", strconv.Itoa(a.log.Size())},
	}
	var files strings.Builder
	for i, kv := range info {
		if i > 0 {
			files.WriteString("\n")
		}
		files.WriteString(label.Render(fmt.Sprintf("%-19s", kv.k+":")) + value.Render(kv.v))
	}

	return components.Panel("Settings", form.String(), cw) + "\n" +
		components.Panel("General", files.String(), cw)
}
