package pipeline

import (
	"sort"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/model"
	"github.com/theirongolddev/payplan/internal/planner"

	"github.com/shopspring/decimal"
)

// TierSummary totals the accepted submissions of one tier.
type TierSummary struct {
	Tier            model.RiskTier
	Count           int
	TotalInvested   decimal.Decimal
	InvestmentValue decimal.Decimal
	ROI             decimal.NullDecimal
}

// Summary totals a batch run.
type Summary struct {
	Submissions int
	Accepted    int
	Rejected    int
	Rejections  map[string]int // user message -> count

	Tiers []TierSummary // in tier order, tiers with no submissions omitted

	TotalSpent      decimal.Decimal
	TotalSaved      decimal.Decimal
	TotalInvested   decimal.Decimal
	InvestmentValue decimal.Decimal
	ROI             decimal.NullDecimal
}

// Aggregate computes summary statistics from batch items.
func Aggregate(items []Item) Summary {
	s := Summary{Rejections: make(map[string]int)}
	byTier := make(map[model.RiskTier]*TierSummary)

	for _, it := range items {
		s.Submissions++
		if it.Result == nil {
			s.Rejected++
			s.Rejections[planner.UserMessage(it.Err)]++
			continue
		}
		s.Accepted++

		b := it.Result.Breakdown
		s.TotalSpent = s.TotalSpent.Add(b.TotalSpent)
		s.TotalSaved = s.TotalSaved.Add(b.TotalSaved)
		s.TotalInvested = s.TotalInvested.Add(b.TotalInvested)
		s.InvestmentValue = s.InvestmentValue.Add(b.InvestmentValue)

		ts, ok := byTier[b.Tier]
		if !ok {
			ts = &TierSummary{Tier: b.Tier}
			byTier[b.Tier] = ts
		}
		ts.Count++
		ts.TotalInvested = ts.TotalInvested.Add(b.TotalInvested)
		ts.InvestmentValue = ts.InvestmentValue.Add(b.InvestmentValue)
	}

	for _, tier := range model.RiskTiers {
		if ts, ok := byTier[tier]; ok {
			ts.ROI = allocation.ROI(ts.TotalInvested, ts.InvestmentValue)
			s.Tiers = append(s.Tiers, *ts)
		}
	}
	s.ROI = allocation.ROI(s.TotalInvested, s.InvestmentValue)
	return s
}

// RejectionMessages returns the distinct rejection messages, most frequent
// first.
func (s Summary) RejectionMessages() []string {
	msgs := make([]string, 0, len(s.Rejections))
	for m := range s.Rejections {
		msgs = append(msgs, m)
	}
	sort.Slice(msgs, func(i, j int) bool {
		if s.Rejections[msgs[i]] != s.Rejections[msgs[j]] {
			return s.Rejections[msgs[i]] > s.Rejections[msgs[j]]
		}
		return msgs[i] < msgs[j]
	})
	return msgs
}
