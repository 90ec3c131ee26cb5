package planner

import (
	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/model"
)

// RecordView is the JSON shape of a record. Money renders to 2 decimals.
type RecordView struct {
	ID               string  `json:"id"`
	Date             string  `json:"date"`
	Income           string  `json:"income"`
	ClassYear        string  `json:"class_year"`
	Over21           bool    `json:"over_21"`
	RiskTier         string  `json:"risk_tier"`
	SimulationMonths int     `json:"simulation_months"`
	Saving           *string `json:"saving,omitempty"`
	Spending         *string `json:"spending,omitempty"`
	Invest           *string `json:"invest,omitempty"`
}

// BreakdownView is the JSON shape of a breakdown. ROI is null when undefined.
type BreakdownView struct {
	RiskTier        string      `json:"risk_tier"`
	Months          int         `json:"simulation_months"`
	PayPeriods      int         `json:"pay_periods"`
	Spend           string      `json:"spend"`
	Save            string      `json:"save"`
	Invest          string      `json:"invest"`
	TotalSpent      string      `json:"total_spent"`
	TotalSaved      string      `json:"total_saved"`
	TotalInvested   string      `json:"total_invested"`
	InvestmentValue string      `json:"investment_value"`
	ROIPercent      *string     `json:"roi_percent"`
	Slices          []SliceView `json:"slices"`
}

// SliceView is one chart wedge.
type SliceView struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// ResultView pairs a stored record with its breakdown.
type ResultView struct {
	Record    RecordView    `json:"record"`
	Breakdown BreakdownView `json:"breakdown"`
}

// NewRecordView converts r for JSON output.
func NewRecordView(r model.Record) RecordView {
	v := RecordView{
		ID:               r.ID.String(),
		Date:             r.Date(),
		Income:           r.Income.StringFixed(2),
		ClassYear:        string(r.ClassYear),
		Over21:           r.Over21,
		RiskTier:         string(r.RiskTier),
		SimulationMonths: r.SimulationMonths,
	}
	if r.Saving != nil {
		s := r.Saving.StringFixed(2)
		v.Saving = &s
	}
	if r.Spending != nil {
		s := r.Spending.StringFixed(2)
		v.Spending = &s
	}
	if r.Invest != nil {
		s := r.Invest.StringFixed(2)
		v.Invest = &s
	}
	return v
}

// NewBreakdownView converts b for JSON output.
func NewBreakdownView(b allocation.Breakdown) BreakdownView {
	v := BreakdownView{
		RiskTier:        string(b.Tier),
		Months:          b.Months,
		PayPeriods:      b.Periods,
		Spend:           b.Spend.StringFixed(2),
		Save:            b.Save.StringFixed(2),
		Invest:          b.Invest.StringFixed(2),
		TotalSpent:      b.TotalSpent.StringFixed(2),
		TotalSaved:      b.TotalSaved.StringFixed(2),
		TotalInvested:   b.TotalInvested.StringFixed(2),
		InvestmentValue: b.InvestmentValue.StringFixed(2),
	}
	if roi, err := b.ROIPercent(); err == nil {
		s := roi.StringFixed(2)
		v.ROIPercent = &s
	}
	for _, s := range b.Slices() {
		v.Slices = append(v.Slices, SliceView{Label: s.Label, Amount: s.Amount.StringFixed(2)})
	}
	return v
}

// View converts res for JSON output.
func (res Result) View() ResultView {
	return ResultView{
		Record:    NewRecordView(res.Record),
		Breakdown: NewBreakdownView(res.Breakdown),
	}
}
