package tariff

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidInput is wrapped by every validation and calculation failure so
// callers can map it to a user-facing message with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func nonNegative(field string, v float64) error {
	if !finite(v) || v < 0 {
		return invalid("%s must be a non-negative number (got %v)", field, v)
	}
	return nil
}

// checkRates validates the numeric fields the engine reads from a tariff.
func checkRates(t Tariff) error {
	if err := nonNegative("unitRate", t.UnitRate); err != nil {
		return err
	}
	if t.EVRate != nil {
		if err := nonNegative("evRate", *t.EVRate); err != nil {
			return err
		}
	}
	return nonNegative("standingCharge", t.StandingCharge)
}

func checkPercentage(field string, v float64) error {
	if !finite(v) || v < 0 || v > 100 {
		return invalid("%s must be between 0 and 100 (got %v)", field, v)
	}
	return nil
}

func checkFraction(v float64) error {
	if !finite(v) || v < 0 || v > 1 {
		return invalid("charge fraction must be between 0 and 1 (got %v)", v)
	}
	return nil
}

// ValidateTariff applies the input rules for a user-entered tariff.
func ValidateTariff(t Tariff) error {
	if len([]rune(strings.TrimSpace(t.Name))) < 2 {
		return invalid("tariff name must be at least 2 characters")
	}
	if strings.IndexFunc(t.Name, unicode.IsControl) >= 0 {
		return invalid("tariff name must not contain control characters")
	}
	if err := checkRates(t); err != nil {
		return err
	}
	switch t.TariffType {
	case Variable, Fixed:
	default:
		return invalid("tariffType must be %q or %q (got %q)", Variable, Fixed, t.TariffType)
	}
	if t.OffPeakStart != "" && !clockRe.MatchString(t.OffPeakStart) {
		return invalid("offPeakStart must be HH:MM (got %q)", t.OffPeakStart)
	}
	if t.OffPeakEnd != "" && !clockRe.MatchString(t.OffPeakEnd) {
		return invalid("offPeakEnd must be HH:MM (got %q)", t.OffPeakEnd)
	}
	return nil
}

// ValidateUsage applies the input rules for usage assumptions.
func ValidateUsage(u UsageAssumptions) error {
	if !finite(u.HouseholdUsage) || u.HouseholdUsage <= 0 {
		return invalid("householdUsage must be positive (got %v)", u.HouseholdUsage)
	}
	if err := nonNegative("evUsage", u.EVUsage); err != nil {
		return err
	}
	return checkPercentage("evOffPeakPercentage", u.EVOffPeakPercentage)
}

// checkUsage is the engine-side check; it accepts zero household usage since
// the calculation itself is well defined there.
func checkUsage(u UsageAssumptions) error {
	if err := nonNegative("householdUsage", u.HouseholdUsage); err != nil {
		return err
	}
	if err := nonNegative("evUsage", u.EVUsage); err != nil {
		return err
	}
	return checkPercentage("evOffPeakPercentage", u.EVOffPeakPercentage)
}
