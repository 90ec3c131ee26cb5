package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"300", "$300.00"},
		{"804.6694", "$804.67"},
		{"0", "$0.00"},
		{"-12.5", "-$12.50"},
	}
	for _, tt := range tests {
		if got := FormatMoney("$", d(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoneyGrouped(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"999.999", "$1,000.00"},
		{"1234567.891", "$1,234,567.89"},
		{"12", "$12.00"},
		{"-2500", "-$2,500.00"},
	}
	for _, tt := range tests {
		if got := FormatMoneyGrouped("$", d(tt.in)); got != tt.want {
			t.Errorf("FormatMoneyGrouped(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatROI(t *testing.T) {
	if got := FormatROI(decimal.NullDecimal{}); got != "N/A" {
		t.Errorf("FormatROI(invalid) = %q, want N/A", got)
	}
	if got := FormatROI(decimal.NewNullDecimal(d("0.583375"))); got != "0.58%" {
		t.Errorf("FormatROI = %q, want 0.58%%", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(d("0.3")); got != "30.0%" {
		t.Errorf("FormatPercent(0.3) = %q, want 30.0%%", got)
	}
	if got := FormatPercent(d("0.0125")); got != "1.3%" {
		t.Errorf("FormatPercent(0.0125) = %q, want 1.3%%", got)
	}
}

func TestFormatMonths(t *testing.T) {
	if got := FormatMonths(1); got != "1 month" {
		t.Errorf("FormatMonths(1) = %q", got)
	}
	if got := FormatMonths(24); got != "24 months" {
		t.Errorf("FormatMonths(24) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
