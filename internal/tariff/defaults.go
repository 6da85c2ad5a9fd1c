package tariff

// DefaultTariffs returns the tariff list a fresh install starts with.
func DefaultTariffs() []Tariff {
	return []Tariff{
		{
			ID:             "1",
			Name:           "So Flex (Current)",
			UnitRate:       26.17,
			StandingCharge: 58.63,
			TariffType:     Variable,
			Notes:          "Flat rate; no exit fee",
		},
		{
			ID:             "2",
			Name:           "Fuse Off-Peak Fixed (12m) v2 – Ideal Case",
			UnitRate:       27.58,
			EVRate:         Rate(12.76),
			StandingCharge: 48.13,
			TariffType:     Fixed,
			FixedTerm:      "12 months",
			OffPeakStart:   "01:30",
			OffPeakEnd:     "08:30",
			Notes:          "EV charged between 01:30–08:30",
		},
		{
			// Worst case: EV charged outside the off-peak window.
			ID:             "3",
			Name:           "Fuse Off-Peak Fixed (12m) v2 – Worst Case",
			UnitRate:       27.58,
			EVRate:         Rate(27.58),
			StandingCharge: 48.13,
			TariffType:     Fixed,
			FixedTerm:      "12 months",
			OffPeakStart:   "01:30",
			OffPeakEnd:     "08:30",
			Notes:          "EV charged outside off-peak hours",
		},
		{
			ID:             "4",
			Name:           "Fuse Single Rate Variable",
			UnitRate:       24.61,
			StandingCharge: 55.94,
			TariffType:     Variable,
			Notes:          "No peak/off-peak split",
		},
		{
			ID:             "5",
			Name:           "So Chestnut One Year",
			UnitRate:       21.97,
			StandingCharge: 61.2,
			TariffType:     Fixed,
			FixedTerm:      "12 months",
			Notes:          "Flat rate",
		},
	}
}

// DefaultUsageAssumptions returns the starting household profile.
func DefaultUsageAssumptions() UsageAssumptions {
	return UsageAssumptions{
		HouseholdUsage:      3190.5,
		EVUsage:             834,
		EVOffPeakPercentage: 100,
	}
}

// DefaultPreferences returns the starting UI preferences.
func DefaultPreferences() Preferences {
	return Preferences{ActiveTab: "ev-charging"}
}
