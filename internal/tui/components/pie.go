package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// PieSlice is one wedge of a PieChart.
type PieSlice struct {
	Label  string
	Share  float64 // fraction of the whole, 0 to 1
	Amount string  // preformatted, shown in the legend
	Color  lipgloss.Color
}

// PieChart renders a filled circle split into wedges clockwise from twelve
// o'clock. Terminal cells are about twice as tall as wide, so the circle is
// 4*radius+1 columns by 2*radius+1 rows.
func PieChart(slices []PieSlice, radius int) string {
	t := theme.Active
	if radius < 2 {
		radius = 2
	}

	total := 0.0
	for _, s := range slices {
		if s.Share > 0 {
			total += s.Share
		}
	}

	bg := lipgloss.NewStyle().Background(t.Surface)
	empty := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	styles := make([]lipgloss.Style, len(slices))
	for i, s := range slices {
		styles[i] = lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)
	}

	r := float64(radius) + 0.5
	var b strings.Builder
	for row := 0; row <= 2*radius; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		dy := float64(row - radius)
		for col := 0; col <= 4*radius; col++ {
			dx := float64(col-2*radius) / 2
			if dx*dx+dy*dy > r*r {
				b.WriteString(bg.Render(" "))
				continue
			}
			if total == 0 {
				b.WriteString(empty.Render("░"))
				continue
			}
			idx := sliceAt(slices, total, clockAngle(dx, dy))
			b.WriteString(styles[idx].Render("█"))
		}
	}
	return b.String()
}

// clockAngle returns the angle of (dx, dy) as a fraction of a full turn,
// measured clockwise from straight up. dy grows downward.
func clockAngle(dx, dy float64) float64 {
	a := math.Atan2(dx, -dy)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a / (2 * math.Pi)
}

func sliceAt(slices []PieSlice, total, frac float64) int {
	cum := 0.0
	last := 0
	for i, s := range slices {
		if s.Share <= 0 {
			continue
		}
		last = i
		cum += s.Share / total
		if frac < cum {
			return i
		}
	}
	return last
}

// PieLegend renders one line per slice: swatch, label, share to one
// decimal, and amount.
func PieLegend(slices []PieSlice) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	labelW := 0
	for _, s := range slices {
		if len(s.Label) > labelW {
			labelW = len(s.Label)
		}
	}

	lines := make([]string, 0, len(slices))
	for _, s := range slices {
		swatch := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("■")
		lines = append(lines, swatch+
			labelStyle.Render(fmt.Sprintf(" %-*s ", labelW, s.Label))+
			valueStyle.Render(fmt.Sprintf("%5.1f%%", s.Share*100))+
			labelStyle.Render("  ")+
			valueStyle.Render(s.Amount))
	}
	return strings.Join(lines, "\n")
}

// AllocationChart renders a titled pie with its legend beside it.
func AllocationChart(title string, slices []PieSlice, radius int) string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	gap := lipgloss.NewStyle().Background(t.Surface).Render("    ")

	pie := PieChart(slices, radius)
	pad := radius - len(slices)/2
	if pad < 0 {
		pad = 0
	}
	legend := lipgloss.NewStyle().Background(t.Surface).
		PaddingTop(pad).
		Render(PieLegend(slices))

	return titleStyle.Render(title) + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, pie, gap, legend)
}
