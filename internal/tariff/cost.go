package tariff

import (
	"fmt"
	"sort"
)

// DaysPerYear is used for standing charges; leap years are not modelled.
const DaysPerYear = 365

// AnnualCost estimates the yearly cost in pounds of running the household and
// EV on tariff t.
//
// EV energy is split between the EV rate and the unit rate only when the
// tariff has an EV rate and the off-peak percentage is above zero. A zero
// percentage prices all EV energy at the unit rate even if an EV rate exists.
func AnnualCost(t Tariff, u UsageAssumptions) (float64, error) {
	if err := checkRates(t); err != nil {
		return 0, err
	}
	if err := checkUsage(u); err != nil {
		return 0, err
	}

	household := u.HouseholdUsage * t.UnitRate

	var ev float64
	if t.EVRate != nil && u.EVOffPeakPercentage > 0 {
		offPeak := u.EVUsage * (u.EVOffPeakPercentage / 100)
		peak := u.EVUsage - offPeak
		ev = offPeak*(*t.EVRate) + peak*t.UnitRate
	} else {
		ev = u.EVUsage * t.UnitRate
	}

	standing := t.StandingCharge * DaysPerYear

	return (household + ev + standing) / 100, nil
}

// WithCosts annotates each tariff with its annual cost, keeping input order.
func WithCosts(tariffs []Tariff, u UsageAssumptions) ([]TariffWithCost, error) {
	out := make([]TariffWithCost, 0, len(tariffs))
	for _, t := range tariffs {
		cost, err := AnnualCost(t, u)
		if err != nil {
			return nil, fmt.Errorf("tariff %q: %w", t.Name, err)
		}
		out = append(out, TariffWithCost{Tariff: t, AnnualCost: cost})
	}
	return out, nil
}

// Rank returns a copy of list ordered cheapest first. Equal costs keep their
// relative order.
func Rank(list []TariffWithCost) []TariffWithCost {
	out := make([]TariffWithCost, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AnnualCost < out[j].AnnualCost })
	return out
}
