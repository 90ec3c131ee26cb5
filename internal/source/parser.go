// Package source discovers and parses JSONL batch files of submission forms.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/theirongolddev/payplan/internal/intake"
)

var commentPrefix = []byte("#")

// ParseResult holds the output of parsing a single batch file.
type ParseResult struct {
	File        DiscoveredFile
	Entries     []Entry
	ParseErrors int
	BadLines    []int
	Err         error
}

// ParseFile reads a JSONL batch file, one form object per line. Blank lines
// and lines starting with '#' are skipped; malformed lines are counted and
// skipped. Fields missing from a line keep their form placeholders, so they
// are rejected the same way an untouched form field is.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{File: df, Err: err}
	}
	defer func() { _ = f.Close() }()

	res := ParseResult{File: df}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || bytes.HasPrefix(line, commentPrefix) {
			continue
		}

		form, err := ParseLine(line)
		if err != nil {
			res.ParseErrors++
			res.BadLines = append(res.BadLines, lineNo)
			continue
		}
		res.Entries = append(res.Entries, Entry{Path: df.Path, Line: lineNo, Form: form})
	}
	if err := scanner.Err(); err != nil {
		res.Err = fmt.Errorf("reading %s: %w", df.Path, err)
	}
	return res
}

// ParseLine decodes one batch line into a form.
func ParseLine(line []byte) (intake.Form, error) {
	var raw RawEntry
	if err := json.Unmarshal(line, &raw); err != nil {
		return intake.Form{}, err
	}

	f := intake.Blank()
	f.Income = raw.Income.text
	f.Months = raw.Months.text
	if raw.ClassYear.set {
		f.ClassYear = raw.ClassYear.text
	}
	if raw.Over21.set {
		f.Over21 = raw.Over21.text
	}
	if raw.RiskTier.set {
		f.RiskTier = raw.RiskTier.text
	}
	return f, nil
}

// rawValue accepts a JSON string, number, boolean or null.
type rawValue struct {
	text string
	set  bool
}

func (v *rawValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = rawValue{}
	case bytes.Equal(b, []byte("true")):
		*v = rawValue{text: "Yes", set: true}
	case bytes.Equal(b, []byte("false")):
		*v = rawValue{text: "No", set: true}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = rawValue{text: s, set: true}
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("unsupported value %s", b)
		}
		*v = rawValue{text: n.String(), set: true}
	}
	return nil
}
