package analytics

import (
	"math"

	"github.com/samber/lo"

	"ms-backoffice/internal/mapper"
)

// CheckInSummary is the door progress of one event. CheckedIn counts tickets
// with at least one scan of any result.
type CheckInSummary struct {
	EventID        string  `json:"eventId"`
	EventTitle     string  `json:"eventTitle"`
	TotalTickets   int     `json:"totalTickets"`
	CheckedIn      int     `json:"checkedIn"`
	AttendeeCount  int     `json:"attendeeCount"`
	CompletionRate float64 `json:"completionRate"`
}

// CheckInSummary returns one entry per event, in the order given. Attendees
// whose event is not listed are ignored.
func (e *Engine) CheckInSummary(events []mapper.Event, attendees []mapper.Attendee) []CheckInSummary {
	byEvent := lo.GroupBy(attendees, func(a mapper.Attendee) string { return a.EventID })

	return lo.Map(events, func(ev mapper.Event, _ int) CheckInSummary {
		tickets := byEvent[ev.ID]
		scanned := lo.CountBy(tickets, func(a mapper.Attendee) bool { return a.ScanCount > 0 })

		rate := 0.0
		if len(tickets) > 0 {
			rate = math.Round(float64(scanned)/float64(len(tickets))*1000) / 10
		}
		return CheckInSummary{
			EventID:        ev.ID,
			EventTitle:     ev.Title,
			TotalTickets:   len(tickets),
			CheckedIn:      scanned,
			AttendeeCount:  ev.AttendeeCount,
			CompletionRate: rate,
		}
	})
}
