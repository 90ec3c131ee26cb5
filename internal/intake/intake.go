// Package intake validates raw form input before it reaches the calculator
// or the history log.
package intake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/payplan/internal/model"

	"github.com/shopspring/decimal"
)

// Placeholder labels shown by unselected form fields.
const (
	ClassYearPlaceholder = "Select Class Year"
	Over21Placeholder    = "Over 21?"
	RiskTierPlaceholder  = "Select Risk Level"
)

// Field names used in errors.
const (
	FieldIncome    = "income"
	FieldMonths    = "simulation months"
	FieldClassYear = "class year"
	FieldOver21    = "over 21"
	FieldRiskTier  = "risk level"
)

// Input limits. Work and output size grow with months and with the number
// of digits in income, so both are bounded at the boundary.
const (
	MaxMonths = 1200
	// MaxIncomeDigits bounds the integer part of income (below one trillion).
	MaxIncomeDigits = 12
	// MaxIncomeScale bounds the number of decimal places in income.
	MaxIncomeScale = 10
)

var (
	errNegative     = errors.New("must not be negative")
	errNotPositive  = errors.New("must be at least 1")
	errTooManyMonth = fmt.Errorf("must be at most %d", MaxMonths)
	errTooLarge     = fmt.Errorf("must have at most %d integer digits", MaxIncomeDigits)
	errTooPrecise   = fmt.Errorf("must have at most %d decimal places", MaxIncomeScale)
)

// Form is the raw, unvalidated text of one submission.
type Form struct {
	Income    string `json:"income"`
	ClassYear string `json:"class_year"`
	Over21    string `json:"over_21"`
	RiskTier  string `json:"risk_tier"`
	Months    string `json:"simulation_months"`
}

// Blank returns a form with every selection at its placeholder.
func Blank() Form {
	return Form{
		ClassYear: ClassYearPlaceholder,
		Over21:    Over21Placeholder,
		RiskTier:  RiskTierPlaceholder,
	}
}

// Parse validates f. Numbers are checked first, then selections.
// A risk tier that is selected but unknown passes through; the calculator
// rejects it.
func Parse(f Form) (model.Submission, error) {
	var sub model.Submission

	incomeStr := strings.TrimSpace(f.Income)
	income, err := decimal.NewFromString(incomeStr)
	if err != nil {
		return sub, &InvalidNumericInputError{Field: FieldIncome, Value: f.Income, Err: err}
	}
	if income.IsNegative() {
		return sub, &InvalidNumericInputError{Field: FieldIncome, Value: f.Income, Err: errNegative}
	}
	if err := checkMagnitude(income); err != nil {
		return sub, &InvalidNumericInputError{Field: FieldIncome, Value: f.Income, Err: err}
	}

	monthsStr := strings.TrimSpace(f.Months)
	months, err := strconv.Atoi(monthsStr)
	if err != nil {
		return sub, &InvalidNumericInputError{Field: FieldMonths, Value: f.Months, Err: err}
	}
	if months < 1 {
		return sub, &InvalidNumericInputError{Field: FieldMonths, Value: f.Months, Err: errNotPositive}
	}
	if months > MaxMonths {
		return sub, &InvalidNumericInputError{Field: FieldMonths, Value: f.Months, Err: errTooManyMonth}
	}

	var missing []string

	classYear, ok := ParseClassYear(f.ClassYear)
	if !ok {
		missing = append(missing, FieldClassYear)
	}
	over21, ok := ParseOver21(f.Over21)
	if !ok {
		missing = append(missing, FieldOver21)
	}
	tier, ok := ParseRiskTier(f.RiskTier)
	if !ok {
		missing = append(missing, FieldRiskTier)
	}

	if len(missing) > 0 {
		return sub, &IncompleteSelectionError{Fields: missing}
	}

	return model.Submission{
		Income:           income,
		ClassYear:        classYear,
		Over21:           over21,
		RiskTier:         tier,
		SimulationMonths: months,
	}, nil
}

// checkMagnitude works on the coefficient and exponent only. Comparing
// against a decimal limit would rescale the operand first, which for an
// input like 1e2000000000 allocates the full expansion.
func checkMagnitude(d decimal.Decimal) error {
	exp := int(d.Exponent())
	if exp < -MaxIncomeScale {
		return errTooPrecise
	}
	if d.NumDigits()+exp > MaxIncomeDigits {
		return errTooLarge
	}
	return nil
}

// ParseClassYear accepts one of the four class years.
func ParseClassYear(s string) (model.ClassYear, bool) {
	c := model.ClassYear(strings.TrimSpace(s))
	return c, c.Valid()
}

// ParseOver21 accepts Yes/No (and true/false for scripted input).
func ParseOver21(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return true, true
	case "no", "n", "false":
		return false, true
	}
	return false, false
}

// ParseRiskTier reports false only when no tier was chosen. Known tiers are
// matched case-insensitively; anything else is returned verbatim.
func ParseRiskTier(s string) (model.RiskTier, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == RiskTierPlaceholder {
		return "", false
	}
	for _, t := range model.RiskTiers {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return model.RiskTier(s), true
}
