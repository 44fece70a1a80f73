package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// symbols holds the en-US display symbol of common currencies. Other valid
// codes are rendered as "<CODE> <amount>" with a no-break space.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
	"NZD": "NZ$",
	"MXN": "MX$",
	"BRL": "R$",
	"HKD": "HK$",
	"TWD": "NT$",
	"CNY": "CN¥",
	"INR": "₹",
	"KRW": "₩",
	"ILS": "₪",
	"VND": "₫",
	"PHP": "₱",
	"XAF": "FCFA",
}

// Money renders an amount in minor units, e.g. Money(123456, "usd") is
// "$1,234.56". A code that is not ISO 4217 gives "1234.56 <code>".
func (f *Formatter) Money(cents int64, code string) string {
	code = strings.TrimSpace(code)
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return strings.TrimSpace(fixed2(cents) + " " + code)
	}

	scale, _ := currency.Standard.Rounding(unit)
	amount, nonZero := f.scaled(cents, scale)

	sign := ""
	if cents < 0 && nonZero {
		sign = "-"
	}

	iso := unit.String()
	if sym, ok := symbols[iso]; ok {
		return sign + sym + amount
	}
	return sign + iso + "\u00a0" + amount
}

// Price is Money except that free events, missing prices and zero prices
// read "Free".
func (f *Formatter) Price(cents *int64, code string, isFree bool) string {
	if isFree || cents == nil || *cents == 0 {
		return "Free"
	}
	return f.Money(*cents, code)
}

// scaled renders |cents|/100 with the given number of fraction digits using
// integer arithmetic only. Halves round away from zero. nonZero reports
// whether the rendered amount differs from zero.
func (f *Formatter) scaled(cents int64, scale int) (amount string, nonZero bool) {
	abs := magnitude(cents)

	var major, minor uint64
	switch {
	case scale >= 2:
		// Split before widening so the minor digits cannot overflow.
		major = abs / 100
		minor = (abs % 100) * pow10(scale-2)
	default:
		div := pow10(2 - scale)
		units := (abs + div/2) / div
		major = units / pow10(scale)
		minor = units % pow10(scale)
	}

	whole := f.locale.printer().Sprintf("%d", major)
	nonZero = major > 0 || minor > 0
	if scale == 0 {
		return whole, nonZero
	}
	return fmt.Sprintf("%s.%0*d", whole, scale, minor), nonZero
}

// fixed2 is cents/100 with exactly two decimals and no grouping.
func fixed2(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
	}
	abs := magnitude(cents)
	return fmt.Sprintf("%s%d.%02d", sign, abs/100, abs%100)
}

// magnitude is |n|, exact for math.MinInt64.
func magnitude(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

func pow10(n int) uint64 {
	p := uint64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
