package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Palette used for plain CLI output. The bucket colors match the TUI's
// default theme so a plan looks the same in both.
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorWarn      = lipgloss.Color("#D14D41")

	ColorSpend  = lipgloss.Color("#DA702C")
	ColorSave   = lipgloss.Color("#4385BE")
	ColorInvest = lipgloss.Color("#879A39")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	moneyStyle  = lipgloss.NewStyle().Foreground(ColorInvest)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorTextDim)
)

// SeparatorRow is a table row that renders as a horizontal rule.
const SeparatorRow = "---"

// Table is a bordered text table. The first column is left-aligned and the
// rest right-aligned unless Align says otherwise.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Align   []lipgloss.Position
}

func (t Table) columns() int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > n && !isSeparator(row) {
			n = len(row)
		}
	}
	return n
}

func (t Table) align(col int) lipgloss.Position {
	if col < len(t.Align) {
		return t.Align[col]
	}
	if col == 0 {
		return lipgloss.Left
	}
	return lipgloss.Right
}

// widths measures display cells, so multi-byte currency symbols line up.
func (t Table) widths(n int) []int {
	w := make([]int, n)
	measure := func(row []string) {
		for i, cell := range row {
			if i < n {
				w[i] = max(w[i], lipgloss.Width(cell))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		if !isSeparator(row) {
			measure(row)
		}
	}
	return w
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == SeparatorRow
}

// RenderTitle renders a centered title in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// RenderTable renders t with box-drawing borders.
func RenderTable(t Table) string {
	n := t.columns()
	if n == 0 {
		return ""
	}
	widths := t.widths(n)

	rule := func(left, mid, right string) string {
		parts := make([]string, n)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return dimStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
	}
	line := func(cells []string, style lipgloss.Style, headers bool) string {
		bar := dimStyle.Render("│")
		var b strings.Builder
		b.WriteString(bar)
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pos := t.align(i)
			if headers {
				pos = lipgloss.Left
			}
			b.WriteString(style.Render(" " + pad(cell, w, pos) + " "))
			b.WriteString(bar)
		}
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, headerStyle, true))
		b.WriteString(rule("├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, valueStyle, false))
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func pad(s string, width int, pos lipgloss.Position) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if pos == lipgloss.Right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderHorizontalBar renders a labeled bar filled to value/maxValue of
// maxWidth cells.
func RenderHorizontalBar(label string, value, maxValue decimal.Decimal, maxWidth int, color lipgloss.Color) string {
	filled := 0
	if maxValue.IsPositive() {
		filled = int(value.Div(maxValue).Mul(decimal.NewFromInt(int64(maxWidth))).Round(0).IntPart())
	}
	filled = min(max(filled, 0), maxWidth)
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", maxWidth-filled))
	return "  " + pad(label, 7, lipgloss.Left) + " " + bar
}
