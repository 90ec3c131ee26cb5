package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/payplan/internal/intake"
)

// writeBatch creates a temp JSONL file and returns a DiscoveredFile for it.
func writeBatch(t *testing.T, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return DiscoveredFile{Path: path, Name: "batch.jsonl"}
}

func TestParseFile_Entries(t *testing.T) {
	df := writeBatch(t,
		`# paychecks for April`,
		`{"income":"1000","class_year":"2/c","over_21":"Yes","risk_tier":"Balancer","simulation_months":"1"}`,
		``,
		`{"income":850.5,"class_year":"1/c","over_21":false,"risk_tier":"saver","simulation_months":12}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("Entries = %d, want 2", len(result.Entries))
	}
	if result.ParseErrors != 0 {
		t.Errorf("ParseErrors = %d, want 0", result.ParseErrors)
	}

	first := result.Entries[0]
	if first.Line != 2 || first.Form.RiskTier != "Balancer" || first.Form.Income != "1000" {
		t.Errorf("first entry = %+v", first)
	}

	second := result.Entries[1].Form
	want := intake.Form{Income: "850.5", ClassYear: "1/c", Over21: "No", RiskTier: "saver", Months: "12"}
	if second != want {
		t.Errorf("second form = %+v, want %+v", second, want)
	}
	if _, err := intake.Parse(second); err != nil {
		t.Errorf("intake.Parse(second): %v", err)
	}
}

func TestParseFile_MalformedLines(t *testing.T) {
	df := writeBatch(t,
		`{"income":"1000"`,
		`{"income":"1000","class_year":"2/c","over_21":"Yes","risk_tier":"Gambler","simulation_months":"3"}`,
		`{"income":[1,2]}`,
	)

	result := ParseFile(df)
	if result.ParseErrors != 2 {
		t.Errorf("ParseErrors = %d, want 2", result.ParseErrors)
	}
	if len(result.BadLines) != 2 || result.BadLines[0] != 1 || result.BadLines[1] != 3 {
		t.Errorf("BadLines = %v, want [1 3]", result.BadLines)
	}
	if len(result.Entries) != 1 {
		t.Errorf("Entries = %d, want 1", len(result.Entries))
	}
}

func TestParseLine_MissingFieldsKeepPlaceholders(t *testing.T) {
	f, err := ParseLine([]byte(`{"income":"1000","simulation_months":"6","class_year":null}`))
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if f.ClassYear != intake.ClassYearPlaceholder || f.Over21 != intake.Over21Placeholder || f.RiskTier != intake.RiskTierPlaceholder {
		t.Errorf("form = %+v, want placeholders", f)
	}

	var incomplete *intake.IncompleteSelectionError
	if _, err := intake.Parse(f); !errors.As(err, &incomplete) {
		t.Errorf("intake.Parse err = %v, want IncompleteSelectionError", err)
	}
}

func TestParseLine_JSONEscapes(t *testing.T) {
	f, err := ParseLine([]byte(`{"income":"1000","class_year":"1\/c","over_21":"Yes","risk_tier":"\u0053aver \ud83d\ude00","simulation_months":"6"}`))
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if f.ClassYear != "1/c" {
		t.Errorf("ClassYear = %q, want 1/c", f.ClassYear)
	}
	if want := "Saver \U0001F600"; f.RiskTier != want {
		t.Errorf("RiskTier = %q, want %q", f.RiskTier, want)
	}
}

func TestParseFile_Missing(t *testing.T) {
	result := ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "nope.jsonl")})
	if result.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestScanPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jsonl", "a.jsonl", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	single := writeBatch(t, "")

	files, err := ScanPaths([]string{dir, single.Path})
	if err != nil {
		t.Fatalf("ScanPaths: %v", err)
	}
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	if got := strings.Join(names, ","); got != "a.jsonl,b.jsonl,batch.jsonl" {
		t.Errorf("names = %s, want a.jsonl,b.jsonl,batch.jsonl", got)
	}

	if _, err := ScanPaths([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("ScanPaths should fail for a missing path")
	}
}
