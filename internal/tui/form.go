package tui

import (
	"strconv"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/intake"
	"github.com/theirongolddev/payplan/internal/model"

	"github.com/charmbracelet/huh"
)

// planValues backs the submission form. It lives on the heap so the huh
// bindings survive App being copied on every Update.
type planValues struct {
	income    string
	classYear string
	over21    string
	riskTier  string
	months    string
}

// blankPlanValues returns placeholders for every selection and the
// configured default tier and horizon, if any.
func blankPlanValues(defaultTier string, defaultMonths int) *planValues {
	b := intake.Blank()
	v := &planValues{
		classYear: b.ClassYear,
		over21:    b.Over21,
		riskTier:  b.RiskTier,
	}
	if tier, ok := intake.ParseRiskTier(defaultTier); ok {
		if _, err := allocation.Lookup(tier); err == nil {
			v.riskTier = string(tier)
		}
	}
	if defaultMonths > 0 {
		v.months = strconv.Itoa(defaultMonths)
	}
	return v
}

func (v *planValues) form() intake.Form {
	return intake.Form{
		Income:    v.income,
		ClassYear: v.classYear,
		Over21:    v.over21,
		RiskTier:  v.riskTier,
		Months:    v.months,
	}
}

// tierInfo is the line shown under the risk level select.
func tierInfo(tier string) string {
	if d := allocation.DescribeTier(model.RiskTier(tier)); d != "" {
		return d
	}
	return "Pick a tier to see its split."
}

func newPlanForm(v *planValues) *huh.Form {
	classYears := []huh.Option[string]{huh.NewOption(intake.ClassYearPlaceholder, intake.ClassYearPlaceholder)}
	for _, c := range model.ClassYears {
		classYears = append(classYears, huh.NewOption(string(c), string(c)))
	}

	tiers := []huh.Option[string]{huh.NewOption(intake.RiskTierPlaceholder, intake.RiskTierPlaceholder)}
	for _, t := range model.RiskTiers {
		tiers = append(tiers, huh.NewOption(string(t), string(t)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Income per paycheck").
				Description("Bi-weekly take-home pay").
				Placeholder("1000").
				Value(&v.income),

			huh.NewSelect[string]().
				Title("Class Year").
				Options(classYears...).
				Value(&v.classYear),

			huh.NewSelect[string]().
				Title("Over 21?").
				Options(
					huh.NewOption(intake.Over21Placeholder, intake.Over21Placeholder),
					huh.NewOption("Yes", "Yes"),
					huh.NewOption("No", "No"),
				).
				Value(&v.over21),

			huh.NewSelect[string]().
				Title("Risk Level").
				Options(tiers...).
				DescriptionFunc(func() string { return tierInfo(v.riskTier) }, &v.riskTier).
				Value(&v.riskTier),

			huh.NewInput().
				Title("Simulation Length (months)").
				Placeholder("12").
				Value(&v.months),
		),
	).WithShowHelp(true)
}
