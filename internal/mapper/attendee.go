package mapper

import (
	"sort"

	"github.com/samber/lo"

	"ms-backoffice/internal/models"
	"ms-backoffice/internal/status"
)

// Attendee is a ticket holder. CheckInTime is the raw scan timestamp of the
// latest accepted check-in and is nil when there is none.
type Attendee struct {
	ID            string              `json:"id"`
	TicketID      string              `json:"ticketId"`
	TicketCode    string              `json:"ticketCode"`
	EventID       string              `json:"eventId"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	TicketType    string              `json:"ticketType"`
	Status        status.TicketStatus `json:"status"`
	StatusLabel   string              `json:"statusLabel"`
	StatusVariant status.Variant      `json:"statusVariant"`
	CheckedIn     bool                `json:"checkedIn"`
	CheckInTime   *string             `json:"checkInTime,omitempty"`
	ScanCount     int                 `json:"scanCount"`
}

func (m *Mapper) Attendee(row models.TicketRow) Attendee {
	st := status.NormalizeTicket(text(row.Status))

	name := fullName(row.AttendeeFirstName, row.AttendeeLastName)
	if name == "" {
		name = guestName
	}

	ticketType := "Ticket"
	if row.ReservationItem != nil && row.ReservationItem.TicketType != nil {
		ticketType = textOr(row.ReservationItem.TicketType.Name, ticketType)
	}

	latest, checkedIn := latestAccepted(row.CheckIns)
	var checkInTime *string
	if checkedIn && latest.ScannedAt != nil {
		at := *latest.ScannedAt
		checkInTime = &at
	}

	return Attendee{
		ID:            row.ID,
		TicketID:      row.ID,
		TicketCode:    textOr(row.Code, row.ID),
		EventID:       row.EventID,
		Name:          name,
		Email:         text(row.AttendeeEmail),
		TicketType:    ticketType,
		Status:        st,
		StatusLabel:   st.Label(),
		StatusVariant: st.Variant(),
		CheckedIn:     checkedIn,
		CheckInTime:   checkInTime,
		ScanCount:     len(row.CheckIns),
	}
}

func (m *Mapper) Attendees(rows []models.TicketRow) []Attendee {
	return lo.Map(rows, func(row models.TicketRow, _ int) Attendee { return m.Attendee(row) })
}

// latestAccepted picks the accepted scan with the greatest timestamp string.
func latestAccepted(checkIns []models.CheckInRow) (models.CheckInRow, bool) {
	accepted := lo.Filter(checkIns, func(c models.CheckInRow, _ int) bool {
		return status.NormalizeCheckIn(text(c.Result)) == status.CheckInAccepted
	})
	if len(accepted) == 0 {
		return models.CheckInRow{}, false
	}
	sort.SliceStable(accepted, func(i, j int) bool {
		return text(accepted[i].ScannedAt) > text(accepted[j].ScannedAt)
	})
	return accepted[0], true
}
