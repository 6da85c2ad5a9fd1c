package tariff

import "math"

// OffPeakWindow is the display window of a tariff's off-peak period.
type OffPeakWindow struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Label string `json:"label" yaml:"label"`
}

// ScenarioEstimate is the cost and per-charger durations of one scenario.
type ScenarioEstimate struct {
	Scenario  Scenario          `json:"scenario" yaml:"scenario"`
	KWh       float64           `json:"kWh" yaml:"kWh"`
	Cost      float64           `json:"cost" yaml:"cost"`
	Durations []ChargerDuration `json:"durations" yaml:"durations"`
}

// ChargerDuration pairs a charger class with a charging time.
type ChargerDuration struct {
	Charger  ChargerPower `json:"charger" yaml:"charger"`
	Duration Duration     `json:"duration" yaml:"duration"`
	Display  string       `json:"display" yaml:"display"`
}

// ChargingEstimates is everything the EV charging view shows for a tariff.
type ChargingEstimates struct {
	TariffID            string             `json:"tariffId" yaml:"tariffId"`
	TariffName          string             `json:"tariffName" yaml:"tariffName"`
	Vehicle             Vehicle            `json:"vehicle" yaml:"vehicle"`
	RateLabel           string             `json:"rateLabel" yaml:"rateLabel"`
	Rate                float64            `json:"rate" yaml:"rate"`
	EVOffPeakPercentage float64            `json:"evOffPeakPercentage" yaml:"evOffPeakPercentage"`
	OffPeak             *OffPeakWindow     `json:"offPeak,omitempty" yaml:"offPeak,omitempty"`
	Scenarios           []ScenarioEstimate `json:"scenarios" yaml:"scenarios"`
}

// Estimates computes scenario costs and charging times for t using the
// off-peak share from u.
func Estimates(t Tariff, u UsageAssumptions, v Vehicle) (ChargingEstimates, error) {
	out := ChargingEstimates{
		TariffID:            t.ID,
		TariffName:          t.Name,
		Vehicle:             v,
		RateLabel:           "standard rate",
		Rate:                t.ChargingRate(),
		EVOffPeakPercentage: u.EVOffPeakPercentage,
	}
	if t.HasEVRate() {
		out.RateLabel = "special EV rate"
		if t.OffPeakStart != "" && t.OffPeakEnd != "" {
			out.OffPeak = &OffPeakWindow{
				Start: t.OffPeakStart,
				End:   t.OffPeakEnd,
				Label: FormatClock(t.OffPeakStart) + " - " + FormatClock(t.OffPeakEnd),
			}
		}
	}

	powers := ChargerPowers()
	for _, sc := range Scenarios() {
		cost, err := ScenarioCost(t, v.BatteryKWh, sc.Fraction, u.EVOffPeakPercentage)
		if err != nil {
			return ChargingEstimates{}, err
		}
		est := ScenarioEstimate{
			Scenario:  sc,
			KWh:       math.Round(v.BatteryKWh * sc.Fraction),
			Cost:      cost,
			Durations: make([]ChargerDuration, 0, len(powers)),
		}
		for _, p := range powers {
			d, err := ChargingDuration(v.BatteryKWh, sc.Fraction, p.KW)
			if err != nil {
				return ChargingEstimates{}, err
			}
			est.Durations = append(est.Durations, ChargerDuration{Charger: p, Duration: d, Display: d.String()})
		}
		out.Scenarios = append(out.Scenarios, est)
	}
	return out, nil
}
