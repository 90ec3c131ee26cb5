package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/payplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// GrowthPoint is the invest bucket at the end of one month.
type GrowthPoint struct {
	Month  int
	PaidIn float64 // contributions so far
	Value  float64 // projected value of those contributions
}

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// GrowthChart renders one column per month. The part of a column up to the
// paid-in amount uses the invest color; the part above it is growth. Long
// horizons are sampled down to fit width, always keeping the last month.
func GrowthChart(points []GrowthPoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	if height < 3 {
		height = 3
	}
	t := theme.Active

	peak := 0.0
	for _, p := range points {
		peak = math.Max(peak, p.Value)
	}
	if peak == 0 {
		peak = 1
	}
	step := chartTickStep(peak)
	ceiling := math.Ceil(peak/step) * step

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	plotW := max(width-yLabelW-1, 5)

	points = sampleGrowth(points, max(plotW/3, 1))
	n := len(points)
	colW := 2
	if n > 0 {
		colW = min(max((plotW+1)/n-1, 1), 4)
	}
	axisLen := n*colW + (n - 1)

	surface := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	paidStyle := lipgloss.NewStyle().Foreground(t.Invest).Background(t.Surface)
	growthStyle := lipgloss.NewStyle().Foreground(t.Growth).Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := ceiling * float64(row) / float64(height)
		bottom := ceiling * float64(row-1) / float64(height)

		label := ""
		switch row {
		case height:
			label = formatChartLabel(ceiling)
		case (height + 1) / 2:
			label = formatChartLabel(ceiling * float64(row) / float64(height))
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, p := range points {
			if i > 0 {
				b.WriteString(surface.Render(" "))
			}
			if p.Value <= bottom {
				b.WriteString(surface.Render(strings.Repeat(" ", colW)))
				continue
			}
			frac := math.Min((p.Value-bottom)/(top-bottom), 1)
			cell := strings.Repeat(string(eighths[max(int(frac*8), 1)]), colW)
			if p.PaidIn >= (top+bottom)/2 {
				b.WriteString(paidStyle.Render(cell))
			} else {
				b.WriteString(growthStyle.Render(cell))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))
	b.WriteString("\n")
	b.WriteString(surface.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(axisStyle.Render(monthAxis(points, colW, axisLen)))
	b.WriteString("\n")
	b.WriteString(paidStyle.Render("█") + axisStyle.Render(" paid in  ") +
		growthStyle.Render("█") + axisStyle.Render(" growth"))
	return b.String()
}

// sampleGrowth keeps at most limit points, evenly spaced, first and last
// included.
func sampleGrowth(points []GrowthPoint, limit int) []GrowthPoint {
	n := len(points)
	if n <= limit {
		return points
	}
	if limit < 2 {
		return points[n-1:]
	}
	out := make([]GrowthPoint, limit)
	for i := range out {
		out[i] = points[i*(n-1)/(limit-1)]
	}
	return out
}

// monthAxis labels columns with their month, skipping labels that would
// collide. The last month is always labeled.
func monthAxis(points []GrowthPoint, colW, axisLen int) string {
	buf := []byte(strings.Repeat(" ", axisLen))

	last := len(points) - 1
	lastLbl := strconv.Itoa(points[last].Month)
	lastPos := max(min(last*(colW+1), axisLen-len(lastLbl)), 0)

	end := -1
	for i := 0; i < last; i++ {
		lbl := strconv.Itoa(points[i].Month)
		pos := i * (colW + 1)
		if pos <= end || pos+len(lbl) >= lastPos {
			continue
		}
		copy(buf[pos:], lbl)
		end = pos + len(lbl)
	}
	copy(buf[lastPos:], lastLbl)
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel abbreviates an axis amount: 1500 -> "1.5k".
func formatChartLabel(v float64) string {
	for _, u := range []struct {
		div    float64
		suffix string
	}{{1e9, "B"}, {1e6, "M"}, {1e3, "k"}} {
		if v >= u.div {
			if v == math.Trunc(v/u.div)*u.div {
				return fmt.Sprintf("%.0f%s", v/u.div, u.suffix)
			}
			return fmt.Sprintf("%.1f%s", v/u.div, u.suffix)
		}
	}
	if v >= 1 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
