package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 3:04 PM"
	timeLayout     = "3:04 PM"
)

// zonedLayouts carry their own offset; localLayouts are read in the
// formatter's timezone.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999Z07",
		"2006-01-02T15:04:05.999999999Z07",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		// A bare date is that calendar day in the display zone, not UTC midnight.
		"2006-01-02",
	}
)

// ParseTimestamp reads an ISO-8601 / RFC 3339 timestamp as stored by the
// remote database. ok is false for empty or unparseable input.
func (f *Formatter) ParseTimestamp(iso string) (t time.Time, ok bool) {
	s := strings.TrimSpace(iso)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, f.location); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders "Oct 16, 2026", or Placeholder.
func (f *Formatter) Date(iso string) string {
	return f.layout(iso, dateLayout)
}

// DateTime renders "Oct 16, 2026, 7:30 PM", or Placeholder.
func (f *Formatter) DateTime(iso string) string {
	return f.layout(iso, dateTimeLayout)
}

// Time renders "7:30 PM", or Placeholder.
func (f *Formatter) Time(iso string) string {
	return f.layout(iso, timeLayout)
}

func (f *Formatter) layout(iso, layout string) string {
	t, ok := f.ParseTimestamp(iso)
	if !ok {
		return Placeholder
	}
	return t.In(f.location).Format(layout)
}

// RelativeTime renders "just now", "5 minutes ago", "in 3 hours", "2 days ago".
// Anything 30 days or more away is rendered with Date.
func (f *Formatter) RelativeTime(iso string) string {
	t, ok := f.ParseTimestamp(iso)
	if !ok {
		return Placeholder
	}

	diff := f.clock.Now().Sub(t)
	future := diff < 0
	if future {
		diff = -diff
	}

	var n int
	var unit string
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		n, unit = int(diff/time.Minute), "minute"
	case diff < 24*time.Hour:
		n, unit = int(diff/time.Hour), "hour"
	case diff < 30*24*time.Hour:
		n, unit = int(diff/(24*time.Hour)), "day"
	default:
		return f.Date(iso)
	}

	if n != 1 {
		unit += "s"
	}
	if future {
		return fmt.Sprintf("in %d %s", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
