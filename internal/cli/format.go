// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats d to 2 decimals behind symbol, e.g. "$300.00".
func FormatMoney(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + symbol + d.Neg().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}

// FormatMoneyGrouped is FormatMoney with comma separators in the whole part.
// e.g., 1234567.891 -> "$1,234,567.89"
func FormatMoneyGrouped(symbol string, d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err == nil {
		whole = FormatNumber(n)
	}
	out := symbol + whole + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatROI formats an ROI percentage, or "N/A" when it is undefined.
func FormatROI(roi decimal.NullDecimal) string {
	if !roi.Valid {
		return "N/A"
	}
	return roi.Decimal.StringFixed(2) + "%"
}

// FormatMonths formats a simulation length, e.g. 1 -> "1 month", 12 -> "12 months".
func FormatMonths(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 fraction as a percentage with one decimal.
func FormatPercent(f decimal.Decimal) string {
	return f.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// FormatYesNo renders a boolean the way the form shows it.
func FormatYesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
