// Package format renders amounts and dates for display and checks
// email addresses the way the donation form does.
package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var indian = language.MustParse("en-IN")

// symbols for the currencies the form is deployed with. Anything else
// falls back to the ISO code.
var symbols = map[currency.Unit]string{
	currency.INR: "₹",
	currency.USD: "$",
	currency.EUR: "€",
	currency.GBP: "£",
}

// Currency formats amount as Indian Rupee text with 0 to 2 fraction digits.
func Currency(amount float64) string {
	return Money(currency.INR, amount)
}

// CurrencyString parses s and formats it with Currency.
// Non-numeric input is not an error; it renders as NaN.
func CurrencyString(s string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		v = math.NaN()
	}
	return Currency(v)
}

// Money formats amount in unit using en-IN grouping.
func Money(unit currency.Unit, amount float64) string {
	sym, ok := symbols[unit]
	if !ok {
		sym = unit.String() + " "
	}
	if math.IsNaN(amount) {
		return sym + "NaN"
	}
	p := message.NewPrinter(indian)
	return sym + p.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(0),
		number.MaxFractionDigits(2),
	))
}

const invalidDate = "Invalid Date"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date renders an ISO-like date-time as a long date plus hour and minute,
// e.g. "5 March 2024, 02:07 pm". Unparseable input yields "Invalid Date".
func Date(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return invalidDate
	}
	return t.Format("2 January 2006, 03:04 pm")
}

// ParseDate tries the accepted layouts in order.
// Layouts without a zone are read in local time.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// emailRe is deliberately loose: something@something.something with no
// whitespace and a single @ on each side.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}
