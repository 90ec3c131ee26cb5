// Package allocation splits a paycheck by risk tier and projects the growth
// of the invested share.
package allocation

import (
	"fmt"

	"github.com/theirongolddev/payplan/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// PeriodsPerMonth is fixed by the bi-weekly pay cadence.
	PeriodsPerMonth = 2

	// MonthsPerYear converts the annual return to a monthly rate.
	MonthsPerYear = 12

	// factorPlaces bounds the precision of compounded growth factors.
	factorPlaces = 16
)

// AnnualReturn is the nominal yearly return applied to investments.
var AnnualReturn = decimal.RequireFromString("0.07")

var hundred = decimal.NewFromInt(100)

// Split is the share of a paycheck sent to each bucket. Shares sum to 1.
type Split struct {
	Spend  decimal.Decimal
	Save   decimal.Decimal
	Invest decimal.Decimal
}

// Sum returns Spend + Save + Invest.
func (s Split) Sum() decimal.Decimal {
	return s.Spend.Add(s.Save).Add(s.Invest)
}

var splits = map[model.RiskTier]Split{
	model.Saver: {
		Spend:  decimal.RequireFromString("0.10"),
		Save:   decimal.RequireFromString("0.20"),
		Invest: decimal.RequireFromString("0.70"),
	},
	model.Balancer: {
		Spend:  decimal.RequireFromString("0.30"),
		Save:   decimal.RequireFromString("0.30"),
		Invest: decimal.RequireFromString("0.40"),
	},
	model.Gambler: {
		Spend:  decimal.RequireFromString("0.50"),
		Save:   decimal.RequireFromString("0.10"),
		Invest: decimal.RequireFromString("0.40"),
	},
}

// Lookup returns the split for tier.
func Lookup(tier model.RiskTier) (Split, error) {
	s, ok := splits[tier]
	if !ok {
		return Split{}, &InvalidTierError{Tier: tier}
	}
	return s, nil
}

// DescribeTier returns a one-line summary such as
// "Saver: Spend 10%, Save 20%, Invest 70%", or "" for an unknown tier.
func DescribeTier(tier model.RiskTier) string {
	s, err := Lookup(tier)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s: Spend %d%%, Save %d%%, Invest %d%%",
		tier, s.Spend.Mul(hundred).IntPart(), s.Save.Mul(hundred).IntPart(), s.Invest.Mul(hundred).IntPart())
}

// Breakdown is the result of one allocation run.
type Breakdown struct {
	Tier    model.RiskTier
	Split   Split
	Months  int
	Periods int

	// Per pay period.
	Spend  decimal.Decimal
	Save   decimal.Decimal
	Invest decimal.Decimal

	// Simple sums across all periods, before growth.
	TotalSpent    decimal.Decimal
	TotalSaved    decimal.Decimal
	TotalInvested decimal.Decimal

	// InvestmentValue is the projected value of all contributions.
	InvestmentValue decimal.Decimal

	// ROI is the growth percentage; invalid when TotalInvested is zero.
	ROI decimal.NullDecimal
}

// ROIPercent returns ROI, or ErrDivisionUndefined when nothing was invested.
func (b Breakdown) ROIPercent() (decimal.Decimal, error) {
	if !b.ROI.Valid {
		return decimal.Zero, ErrDivisionUndefined
	}
	return b.ROI.Decimal, nil
}

// Slice is one labeled wedge of the per-paycheck chart.
type Slice struct {
	Label  string
	Amount decimal.Decimal
	// Share is the fraction of the paycheck, 0 to 1.
	Share decimal.Decimal
}

// Slices returns the per-paycheck Spend/Save/Invest amounts, which sum to
// the income.
func (b Breakdown) Slices() []Slice {
	return []Slice{
		{Label: "Spend", Amount: b.Spend, Share: b.Split.Spend},
		{Label: "Save", Amount: b.Save, Share: b.Split.Save},
		{Label: "Invest", Amount: b.Invest, Share: b.Split.Invest},
	}
}

// Compute splits income (one bi-weekly paycheck) by tier and projects the
// invested share over months. Income and months are validated by the caller.
func Compute(income decimal.Decimal, tier model.RiskTier, months int) (Breakdown, error) {
	split, err := Lookup(tier)
	if err != nil {
		return Breakdown{}, err
	}

	periods := months * PeriodsPerMonth
	n := decimal.NewFromInt(int64(periods))

	b := Breakdown{
		Tier:    tier,
		Split:   split,
		Months:  months,
		Periods: periods,
		Spend:   income.Mul(split.Spend),
		Save:    income.Mul(split.Save),
		Invest:  income.Mul(split.Invest),
	}
	b.TotalSpent = b.Spend.Mul(n)
	b.TotalSaved = b.Save.Mul(n)
	b.TotalInvested = b.Invest.Mul(n)
	b.InvestmentValue = project(b.Invest, months, AnnualReturn)

	b.ROI = ROI(b.TotalInvested, b.InvestmentValue)

	return b, nil
}

// ROI is the percentage gain of value over invested, invalid when nothing
// was invested.
func ROI(invested, value decimal.Decimal) decimal.NullDecimal {
	if invested.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(value.Sub(invested).Div(invested).Mul(hundred))
}

// project sums every bi-weekly contribution grown as a lump sum for the whole
// months remaining after it is paid. Both paychecks of a month count that
// month as not yet elapsed.
func project(contribution decimal.Decimal, months int, annual decimal.Decimal) decimal.Decimal {
	monthly := annual.Div(decimal.NewFromInt(MonthsPerYear))
	factors := growthFactors(decimal.NewFromInt(1).Add(monthly), months)

	total := decimal.Zero
	for i := 0; i < months*PeriodsPerMonth; i++ {
		remaining := months - i/PeriodsPerMonth
		if remaining > 0 {
			total = total.Add(contribution.Mul(factors[remaining]))
		} else {
			total = total.Add(contribution)
		}
	}
	return total
}

// growthFactors returns base^k for k in [0, months].
func growthFactors(base decimal.Decimal, months int) []decimal.Decimal {
	if months < 0 {
		months = 0
	}
	factors := make([]decimal.Decimal, months+1)
	factors[0] = decimal.NewFromInt(1)
	for k := 1; k <= months; k++ {
		factors[k] = factors[k-1].Mul(base).Round(factorPlaces)
	}
	return factors
}

// Trajectory returns the projected investment value for every horizon from
// 1 to b.Months, so element m-1 is what a run of m months would report.
// The last element equals b.InvestmentValue.
func (b Breakdown) Trajectory() []decimal.Decimal {
	if b.Months < 1 {
		return nil
	}
	monthly := AnnualReturn.Div(decimal.NewFromInt(MonthsPerYear))
	factors := growthFactors(decimal.NewFromInt(1).Add(monthly), b.Months)
	perMonth := b.Invest.Mul(decimal.NewFromInt(PeriodsPerMonth))

	out := make([]decimal.Decimal, b.Months)
	total := decimal.Zero
	for m := 1; m <= b.Months; m++ {
		total = total.Add(perMonth.Mul(factors[m]))
		out[m-1] = total
	}
	return out
}
