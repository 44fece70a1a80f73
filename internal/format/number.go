package format

import (
	"math"
	"strconv"
)

var compactSuffixes = []string{"", "K", "M", "B", "T"}

// CompactNumber renders short-scale compact notation: 999 is "999", 1200 is
// "1.2K", 12345 is "12K", 1500000 is "1.5M". Values below ten of a unit keep
// one decimal, larger ones are rounded to an integer.
func (f *Formatter) CompactNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	i := 0
	for n >= 1000 && i < len(compactSuffixes)-1 {
		n /= 1000
		i++
	}

	r := roundCompact(n)
	if r >= 1000 && i < len(compactSuffixes)-1 {
		r = roundCompact(r / 1000)
		i++
	}
	if r == 0 {
		sign = ""
	}

	return sign + strconv.FormatFloat(r, 'f', -1, 64) + compactSuffixes[i]
}

func roundCompact(n float64) float64 {
	if n < 10 {
		return math.Round(n*10) / 10
	}
	return math.Round(n)
}
