package components

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestClockAngle(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   float64
	}{
		{0, -1, 0},
		{1, 0, 0.25},
		{0, 1, 0.5},
		{-1, 0, 0.75},
	}
	for _, tt := range tests {
		if got := clockAngle(tt.dx, tt.dy); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("clockAngle(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestSliceAt(t *testing.T) {
	slices := []PieSlice{{Share: 0.3}, {Share: 0.3}, {Share: 0.4}}
	tests := []struct {
		frac float64
		want int
	}{
		{0, 0},
		{0.29, 0},
		{0.31, 1},
		{0.61, 2},
		{0.999, 2},
	}
	for _, tt := range tests {
		if got := sliceAt(slices, 1, tt.frac); got != tt.want {
			t.Errorf("sliceAt(%v) = %d, want %d", tt.frac, got, tt.want)
		}
	}

	// Zero-share wedges are skipped.
	skipped := []PieSlice{{Share: 0}, {Share: 1}}
	if got := sliceAt(skipped, 1, 0); got != 1 {
		t.Errorf("sliceAt with empty first wedge = %d, want 1", got)
	}
}

func TestPieChartDimensions(t *testing.T) {
	slices := []PieSlice{
		{Label: "Spend", Share: 0.5, Color: lipgloss.Color("1")},
		{Label: "Save", Share: 0.5, Color: lipgloss.Color("2")},
	}
	out := PieChart(slices, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 7 {
		t.Fatalf("rows = %d, want 7", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 13 {
			t.Errorf("row %d width = %d, want 13", i, w)
		}
	}
	if !strings.Contains(out, "█") {
		t.Error("pie has no filled cells")
	}
}

func TestPieChartEmpty(t *testing.T) {
	out := PieChart([]PieSlice{{Label: "Spend"}, {Label: "Save"}}, 2)
	if strings.Contains(out, "█") {
		t.Error("empty pie should not draw filled wedges")
	}
	if !strings.Contains(out, "░") {
		t.Error("empty pie should draw a placeholder circle")
	}
}

func TestPieLegendPercentages(t *testing.T) {
	legend := PieLegend([]PieSlice{
		{Label: "Spend", Share: 0.3, Amount: "$300.00"},
		{Label: "Invest", Share: 0.4, Amount: "$400.00"},
	})
	for _, want := range []string{"Spend", " 30.0%", "Invest", " 40.0%", "$400.00"} {
		if !strings.Contains(legend, want) {
			t.Errorf("legend missing %q:\n%s", want, legend)
		}
	}
}

func TestAllocationChartTitle(t *testing.T) {
	out := AllocationChart("Allocation per Paycheck", []PieSlice{{Label: "Spend", Share: 1, Amount: "$1.00"}}, 2)
	if !strings.HasPrefix(stripANSI(out), "Allocation per Paycheck") {
		t.Errorf("chart should start with its title:\n%s", out)
	}
}

// stripANSI drops escape sequences so assertions can match plain text.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
