package tariff

import (
	"fmt"
	"math"
)

// Scenario is a named partial charge, e.g. 20% to 80%.
type Scenario struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Fraction float64 `json:"fraction" yaml:"fraction"`
}

// ChargerPower is a charger class used for duration estimates.
type ChargerPower struct {
	KW   float64 `json:"kw" yaml:"kw"`
	Name string  `json:"name" yaml:"name"`
}

// Vehicle describes the EV the estimates are produced for.
type Vehicle struct {
	Model       string  `json:"model" yaml:"model"`
	BatteryKWh  float64 `json:"batteryKWh" yaml:"batteryKWh"`
	MilesPerKWh float64 `json:"milesPerKWh" yaml:"milesPerKWh"`
	RangeMiles  float64 `json:"rangeMiles" yaml:"rangeMiles"`
}

// Scenarios returns the standard charging scenarios.
func Scenarios() []Scenario {
	return []Scenario{
		{ID: "typical", Name: "20% → 80% (typical daily charge)", Fraction: 0.6},
		{ID: "full", Name: "0% → 100% (full charge)", Fraction: 1.0},
		{ID: "topup", Name: "10% → 50% (short top-up)", Fraction: 0.4},
		{ID: "journey", Name: "50% → 100% (long journey prep)", Fraction: 0.5},
	}
}

// ChargerPowers returns the standard charger classes.
func ChargerPowers() []ChargerPower {
	return []ChargerPower{
		{KW: 7.4, Name: "7.4 kW (Home Wallbox)"},
		{KW: 3.6, Name: "3.6 kW (Slow Charger)"},
		{KW: 22, Name: "22 kW (Fast Charger)"},
		{KW: 50, Name: "50 kW (Rapid Charger)"},
		{KW: 150, Name: "150 kW (Ultra-Rapid Charger)"},
	}
}

// DefaultVehicle is a 2021 Vauxhall Mokka-e.
func DefaultVehicle() Vehicle {
	return Vehicle{
		Model:       "2021 Vauxhall Mokka-e",
		BatteryKWh:  50,
		MilesPerKWh: 3.6,
		RangeMiles:  201,
	}
}

// ScenarioCost returns the cost in pounds of adding chargeFraction of a
// batteryKWh battery on tariff t.
//
// Unlike AnnualCost, the off-peak split applies whenever the tariff has an EV
// rate that differs from its unit rate, regardless of offPeakPct being zero.
func ScenarioCost(t Tariff, batteryKWh, chargeFraction, offPeakPct float64) (float64, error) {
	if err := checkRates(t); err != nil {
		return 0, err
	}
	if err := nonNegative("battery capacity", batteryKWh); err != nil {
		return 0, err
	}
	if err := checkFraction(chargeFraction); err != nil {
		return 0, err
	}
	if err := checkPercentage("off-peak percentage", offPeakPct); err != nil {
		return 0, err
	}

	kWh := batteryKWh * chargeFraction

	if t.EVRate != nil && *t.EVRate != t.UnitRate {
		offPeakKWh := kWh * (offPeakPct / 100)
		peakKWh := kWh - offPeakKWh
		return (offPeakKWh*(*t.EVRate) + peakKWh*t.UnitRate) / 100, nil
	}
	return kWh * t.ChargingRate() / 100, nil
}

// Duration is a charging time split into whole hours and remaining minutes.
type Duration struct {
	Hours   int `json:"hours" yaml:"hours"`
	Minutes int `json:"minutes" yaml:"minutes"`
}

// String renders "45 mins", "2 hrs", "1 hr" or "13 hrs 53 mins".
func (d Duration) String() string {
	if d.Hours == 0 {
		return fmt.Sprintf("%d mins", d.Minutes)
	}
	unit := "hrs"
	if d.Hours == 1 {
		unit = "hr"
	}
	if d.Minutes == 0 {
		return fmt.Sprintf("%d %s", d.Hours, unit)
	}
	return fmt.Sprintf("%d %s %d mins", d.Hours, unit, d.Minutes)
}

// ChargingDuration returns how long a powerKW charger takes to add
// chargeFraction of a batteryKWh battery. Minutes are rounded to the nearest
// integer; a remainder that rounds up to 60 carries into the hours.
func ChargingDuration(batteryKWh, chargeFraction, powerKW float64) (Duration, error) {
	if !finite(powerKW) || powerKW <= 0 {
		return Duration{}, invalid("charger power must be > 0 (got %v)", powerKW)
	}
	if err := nonNegative("battery capacity", batteryKWh); err != nil {
		return Duration{}, err
	}
	if err := checkFraction(chargeFraction); err != nil {
		return Duration{}, err
	}

	hours := batteryKWh * chargeFraction / powerKW
	whole := math.Floor(hours)
	minutes := math.Round((hours - whole) * 60)
	if minutes >= 60 {
		whole++
		minutes = 0
	}
	return Duration{Hours: int(whole), Minutes: int(minutes)}, nil
}
