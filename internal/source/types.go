package source

import "github.com/theirongolddev/payplan/internal/intake"

// RawEntry is one line of a batch file. Values may be JSON strings, numbers
// or booleans; they are normalized to the text a form field would hold.
type RawEntry struct {
	Income    rawValue `json:"income"`
	ClassYear rawValue `json:"class_year"`
	Over21    rawValue `json:"over_21"`
	RiskTier  rawValue `json:"risk_tier"`
	Months    rawValue `json:"simulation_months"`
}

// Entry is a parsed batch line, positioned in its file.
type Entry struct {
	Path string
	Line int
	Form intake.Form
}

// DiscoveredFile is a batch file found during scanning.
type DiscoveredFile struct {
	Path string
	Name string // base name, for display
}
