package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func TestRenderTable_MultiByteSymbolAligns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Bucket", "Total"},
		Rows: [][]string{
			{"Spend", "€1.00"},
			{SeparatorRow},
			{"Invest", "€10.00"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("lines = %d, want 7:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if got := lipgloss.Width(l); got != want {
			t.Errorf("line %d width = %d, want %d:\n%s", i, got, want, out)
		}
	}
	if !strings.Contains(out, "│ Spend  │  €1.00 │") {
		t.Errorf("money column not right-aligned:\n%s", out)
	}
}

func TestRenderTable_ExplicitAlign(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"File", "Reason"},
		Rows:    [][]string{{"a", "x"}, {"b", "longer"}},
		Align:   []lipgloss.Position{lipgloss.Left, lipgloss.Left},
	})
	if !strings.Contains(out, "│ a    │ x      │") {
		t.Errorf("expected left-aligned reason:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{Title: "nothing"}); got != "" {
		t.Errorf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	got := RenderHorizontalBar("Save", decimal.RequireFromString("0.3"), decimal.NewFromInt(1), 10, ColorSave)
	if want := "  Save    ███░░░░░░░"; got != want {
		t.Errorf("RenderHorizontalBar = %q, want %q", got, want)
	}
}
