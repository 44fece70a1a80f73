package analytics

import (
	"ms-backoffice/internal/format"
)

const (
	// revenueWindowDays is the number of days either side of today in the
	// daily revenue series.
	revenueWindowDays = 14
	dayKeyLayout      = "2006-01-02"
	monthKeyLayout    = "2006-01"
	defaultCurrency   = "USD"
)

// Engine derives summaries from mapped entities. It holds no state besides
// the formatter, so one Engine may be shared between goroutines.
type Engine struct {
	f *format.Formatter
}

// NewEngine creates an Engine that reads "now" and the timezone from f.
func NewEngine(f *format.Formatter) *Engine {
	if f == nil {
		f = format.New()
	}
	return &Engine{f: f}
}
