package tariff

import (
	"errors"
	"testing"
)

func TestValidateTariff(t *testing.T) {
	for _, tr := range DefaultTariffs() {
		if err := ValidateTariff(tr); err != nil {
			t.Errorf("default tariff %q rejected: %v", tr.Name, err)
		}
	}

	base := fuseIdeal()
	cases := map[string]func(*Tariff){
		"short name":        func(t *Tariff) { t.Name = " x " },
		"header in name":    func(t *Tariff) { t.Name = "Cheap\r\nBcc: someone@example.com" },
		"tab in name":       func(t *Tariff) { t.Name = "Cheap\tRate" },
		"nul in name":       func(t *Tariff) { t.Name = "Cheap\x00" },
		"negative unit":     func(t *Tariff) { t.UnitRate = -0.01 },
		"negative ev":       func(t *Tariff) { t.EVRate = Rate(-1) },
		"negative standing": func(t *Tariff) { t.StandingCharge = -1 },
		"unknown type":      func(t *Tariff) { t.TariffType = "Tracker" },
		"bad start":         func(t *Tariff) { t.OffPeakStart = "25:00" },
		"bad end":           func(t *Tariff) { t.OffPeakEnd = "8:30" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			tr := base
			mutate(&tr)
			if err := ValidateTariff(tr); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestValidateTariff_EVRateWithoutWindowIsAccepted(t *testing.T) {
	if err := ValidateTariff(fuseIdeal()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateUsage(t *testing.T) {
	if err := ValidateUsage(DefaultUsageAssumptions()); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	bad := []UsageAssumptions{
		{HouseholdUsage: 0, EVUsage: 1, EVOffPeakPercentage: 50},
		{HouseholdUsage: 100, EVUsage: -1, EVOffPeakPercentage: 50},
		{HouseholdUsage: 100, EVUsage: 1, EVOffPeakPercentage: -5},
		{HouseholdUsage: 100, EVUsage: 1, EVOffPeakPercentage: 100.5},
	}
	for _, u := range bad {
		if err := ValidateUsage(u); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", u, err)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[float64]string{
		1162.0328: "£1,162.03",
		3.828:     "£3.83",
		0:         "£0.00",
		0.005:     "£0.01",
		12345.5:   "£12,345.50",
		-2.5:      "-£2.50",
	}
	for in, want := range cases {
		if got := FormatCurrency(in); got != want {
			t.Errorf("FormatCurrency(%v): want %q got %q", in, want, got)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"01:30": "1:30 AM",
		"08:30": "8:30 AM",
		"12:00": "12:00 PM",
		"00:05": "12:05 AM",
		"23:59": "11:59 PM",
		"noon":  "noon",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%q): want %q got %q", in, want, got)
		}
	}
}
