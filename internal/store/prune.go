package store

import "ms-backoffice/internal/models"

// A LEFT JOIN with no match scans into a zero struct. The prune helpers turn
// those back into nil relations so mappers see them as missing.

func pruneEvent(row *models.EventRow) {
	if row.Venue != nil && row.Venue.ID == "" {
		row.Venue = nil
	}
	if row.Organizer != nil && row.Organizer.ID == "" {
		row.Organizer = nil
	}
	for i := range row.Tags {
		if row.Tags[i].Tag != nil && row.Tags[i].Tag.ID == "" {
			row.Tags[i].Tag = nil
		}
	}
}

func pruneReservation(row *models.ReservationRow) {
	if row.Event != nil && row.Event.ID == "" {
		row.Event = nil
	}
	for i := range row.Items {
		if row.Items[i].TicketType != nil && row.Items[i].TicketType.ID == "" {
			row.Items[i].TicketType = nil
		}
	}
}

func pruneTicket(row *models.TicketRow) {
	item := row.ReservationItem
	if item == nil {
		return
	}
	if item.ID == "" {
		row.ReservationItem = nil
		return
	}
	if item.TicketType != nil && item.TicketType.ID == "" {
		item.TicketType = nil
	}
}
