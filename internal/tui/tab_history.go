package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/payplan/internal/history"
	"github.com/theirongolddev/payplan/internal/model"
	"github.com/theirongolddev/payplan/internal/tui/components"
	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const searchLayout = "2006-01"

// historyState tracks the History tab: scroll offset and year/month search.
type historyState struct {
	offset    int
	searching bool
	input     textinput.Model

	query    string        // last applied search, YYYY-MM
	found    *model.Record // nil when the last search matched nothing
	queryErr string
}

func newHistoryState() historyState {
	return historyState{input: newSearchInput()}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM"
	ti.CharLimit = 7
	ti.Width = 10
	return ti
}

// parseYearMonth parses "2025-04" into its year and month.
func parseYearMonth(s string) (int, int, error) {
	ts, err := time.Parse(searchLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("expected YYYY-MM, got %q", s)
	}
	return ts.Year(), int(ts.Month()), nil
}

// historyKey handles History tab keys outside search mode.
func (a *App) historyKey(key string) (bool, tea.Cmd) {
	switch key {
	case "/":
		a.hist.searching = true
		a.hist.input = newSearchInput()
		a.hist.input.Focus()
		return true, a.hist.input.Cursor.BlinkCmd()
	case "esc":
		a.hist.query = ""
		a.hist.found = nil
		a.hist.queryErr = ""
		return true, nil
	case "j", "down":
		a.hist.offset++
		return true, nil
	case "k", "up":
		if a.hist.offset > 0 {
			a.hist.offset--
		}
		return true, nil
	case "g":
		a.hist.offset = 0
		return true, nil
	case "G":
		a.hist.offset = a.historyLineCount()
		return true, nil
	}
	return false, nil
}

// updateHistorySearch handles key events while in search mode.
func (a App) updateHistorySearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.hist.searching = false
		a.applySearch(a.hist.input.Value())
		return a, nil
	case "esc":
		a.hist.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.hist.input, cmd = a.hist.input.Update(msg)
	return a, cmd
}

func (a *App) applySearch(q string) {
	a.hist.query = strings.TrimSpace(q)
	a.hist.found = nil
	a.hist.queryErr = ""
	if a.hist.query == "" {
		return
	}

	year, month, err := parseYearMonth(a.hist.query)
	if err != nil {
		a.hist.queryErr = err.Error()
		return
	}
	if rec, ok := a.log.Search(year, month); ok {
		a.hist.found = &rec
	}
}

func (a App) historyBody() string {
	var blocks []string
	for block := range a.log.Display() {
		blocks = append(blocks, block)
	}
	return strings.TrimRight(strings.Join(blocks, ""), "\n")
}

func (a App) historyLineCount() int {
	body := a.historyBody()
	if body == "" {
		return 0
	}
	return strings.Count(body, "\n") + 1
}

func (a App) renderHistoryTab(cw, h int) string {
	t := theme.Active
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)

	var out strings.Builder

	// Search card
	var search strings.Builder
	switch {
	case a.hist.searching:
		search.WriteString(mutedStyle.Render("Search: "))
		search.WriteString(a.hist.input.View())
		search.WriteString(mutedStyle.Render("  [Enter] apply  [Esc] cancel"))
	case a.hist.queryErr != "":
		search.WriteString(warnStyle.Render(a.hist.queryErr))
	case a.hist.query != "" && a.hist.found != nil:
		search.WriteString(mutedStyle.Render("First record in " + a.hist.query + ":\n"))
		search.WriteString(textStyle.Render(strings.TrimRight(history.FormatRecord(*a.hist.found), "\n")))
	case a.hist.query != "":
		search.WriteString(warnStyle.Render("No record found for " + a.hist.query + "."))
	default:
		search.WriteString(mutedStyle.Render("[/] search by year and month  [j/k] scroll  [Esc] clear search"))
	}
	out.WriteString(components.Panel("Search", search.String(), cw))
	out.WriteString("\n")

	// Records card, scrolled
	title := fmt.Sprintf("Records (%d, most recent first)", a.log.Size())
	if a.log.IsEmpty() {
		out.WriteString(components.Panel(title, mutedStyle.Render("No submissions yet."), cw))
		return out.String()
	}

	lines := strings.Split(a.historyBody(), "\n")
	visible := h - lipgloss.Height(out.String()) - 3
	if visible < 3 {
		visible = 3
	}
	offset := a.hist.offset
	if maxOff := len(lines) - visible; offset > maxOff {
		offset = max(0, maxOff)
	}
	end := min(len(lines), offset+visible)

	out.WriteString(components.Panel(title, textStyle.Render(strings.Join(lines[offset:end], "\n")), cw))
	return out.String()
}
