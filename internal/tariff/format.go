package tariff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount of pounds as en-GB currency, e.g. £1,162.03.
func FormatCurrency(pounds float64) string {
	d := decimal.NewFromFloat(pounds).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	f, _ := d.Float64()
	return sign + "£" + humanize.FormatFloat("#,###.##", f)
}

// FormatPence renders a rate such as 12.76p/kWh.
func FormatPence(rate float64) string {
	return decimal.NewFromFloat(rate).String() + "p/kWh"
}

// FormatClock converts a 24-hour HH:MM time to 12-hour form ("1:30 AM").
// Empty input yields an empty string; unparseable input is returned as is.
func FormatClock(hhmm string) string {
	if hhmm == "" {
		return ""
	}
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	hours, err1 := strconv.Atoi(h)
	minutes, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil {
		return hhmm
	}
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	h12 := hours % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minutes, period)
}
