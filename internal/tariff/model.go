package tariff

// TariffType distinguishes variable-rate plans from fixed-term ones.
type TariffType string

const (
	Variable TariffType = "Variable"
	Fixed    TariffType = "Fixed"
)

// Tariff is a single electricity pricing plan. Rates are pence per kWh and the
// standing charge is pence per day.
type Tariff struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	UnitRate       float64    `json:"unitRate" yaml:"unitRate"`
	EVRate         *float64   `json:"evRate" yaml:"evRate"`
	StandingCharge float64    `json:"standingCharge" yaml:"standingCharge"`
	TariffType     TariffType `json:"tariffType" yaml:"tariffType"`
	FixedTerm      string     `json:"fixedTerm,omitempty" yaml:"fixedTerm,omitempty"`
	OffPeakStart   string     `json:"offPeakStart,omitempty" yaml:"offPeakStart,omitempty"`
	OffPeakEnd     string     `json:"offPeakEnd,omitempty" yaml:"offPeakEnd,omitempty"`
	Notes          string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// HasEVRate reports whether the tariff defines a separate EV/off-peak rate.
func (t Tariff) HasEVRate() bool { return t.EVRate != nil }

// ChargingRate is the rate shown for EV charging: the EV rate when present,
// otherwise the unit rate.
func (t Tariff) ChargingRate() float64 {
	if t.EVRate != nil {
		return *t.EVRate
	}
	return t.UnitRate
}

// TariffWithCost is a tariff annotated with its estimated annual cost in
// pounds. It is derived on demand and never stored.
type TariffWithCost struct {
	Tariff     `yaml:",inline"`
	AnnualCost float64 `json:"annualCost" yaml:"annualCost"`
}

// UsageAssumptions describes household consumption. EVOffPeakPercentage is
// the share (0-100) of EV energy assumed to be drawn off-peak.
type UsageAssumptions struct {
	HouseholdUsage      float64 `json:"householdUsage" yaml:"householdUsage"`
	EVUsage             float64 `json:"evUsage" yaml:"evUsage"`
	EVOffPeakPercentage float64 `json:"evOffPeakPercentage" yaml:"evOffPeakPercentage"`
}

// Preferences holds UI state that survives reloads.
type Preferences struct {
	SelectedTariffForView string `json:"selectedTariffForView" yaml:"selectedTariffForView"`
	ActiveTab             string `json:"activeTab" yaml:"activeTab"`
}

// Rate returns a pointer to v, for populating Tariff.EVRate.
func Rate(v float64) *float64 { return &v }
