// Package model defines domain types for payplan records and submissions.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for SubmittedOn everywhere.
const DateLayout = "2006-01-02"

// ClassYear is the academic level of the submitter.
type ClassYear string

// Class years, first class (seniors) through fourth class.
const (
	FirstClass  ClassYear = "1/c"
	SecondClass ClassYear = "2/c"
	ThirdClass  ClassYear = "3/c"
	FourthClass ClassYear = "4/c"
)

// ClassYears lists the selectable class years in display order.
var ClassYears = []ClassYear{FirstClass, SecondClass, ThirdClass, FourthClass}

// Valid reports whether c is one of the four known class years.
func (c ClassYear) Valid() bool {
	for _, v := range ClassYears {
		if c == v {
			return true
		}
	}
	return false
}

// RiskTier selects one of the fixed spend/save/invest profiles.
type RiskTier string

// Known risk tiers.
const (
	Saver    RiskTier = "Saver"
	Balancer RiskTier = "Balancer"
	Gambler  RiskTier = "Gambler"
)

// RiskTiers lists the selectable tiers in display order.
var RiskTiers = []RiskTier{Saver, Balancer, Gambler}

// Amounts holds the optional per-record allocation figures.
// A nil field has never been set.
type Amounts struct {
	Saving   *decimal.Decimal
	Spending *decimal.Decimal
	Invest   *decimal.Decimal
}

// Record is one submission held by the history log.
type Record struct {
	ID               uuid.UUID
	SubmittedOn      time.Time
	Income           decimal.Decimal
	ClassYear        ClassYear
	Over21           bool
	RiskTier         RiskTier
	SimulationMonths int
	Amounts
}

// Date returns SubmittedOn formatted as YYYY-MM-DD.
func (r Record) Date() string {
	return r.SubmittedOn.Format(DateLayout)
}

// Clone returns a deep copy so callers cannot alias the optional amounts.
func (r Record) Clone() Record {
	cp := r
	cp.Saving = cloneDecimal(r.Saving)
	cp.Spending = cloneDecimal(r.Spending)
	cp.Invest = cloneDecimal(r.Invest)
	return cp
}

// SetSaving sets the optional saving figure.
func (r *Record) SetSaving(d decimal.Decimal) { r.Saving = &d }

// SetSpending sets the optional spending figure.
func (r *Record) SetSpending(d decimal.Decimal) { r.Spending = &d }

// SetInvest sets the optional invest figure.
func (r *Record) SetInvest(d decimal.Decimal) { r.Invest = &d }

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// Submission is a validated form entry, ready for the calculator and the log.
type Submission struct {
	Income           decimal.Decimal
	ClassYear        ClassYear
	Over21           bool
	RiskTier         RiskTier
	SimulationMonths int
}
