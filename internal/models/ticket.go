package models

import (
	"github.com/uptrace/bun"
)

type TicketRow struct {
	bun.BaseModel `bun:"table:tickets,alias:tk"`

	ID                string  `bun:"id,pk" json:"id"`
	EventID           string  `bun:"event_id" json:"event_id"`
	ReservationItemID *string `bun:"reservation_item_id" json:"reservation_item_id"`
	Code              *string `bun:"code" json:"code"`
	AttendeeFirstName *string `bun:"attendee_first_name" json:"attendee_first_name"`
	AttendeeLastName  *string `bun:"attendee_last_name" json:"attendee_last_name"`
	AttendeeEmail     *string `bun:"attendee_email" json:"attendee_email"`
	Status            *string `bun:"status" json:"status"`
	CreatedAt         *string `bun:"created_at" json:"created_at"`

	ReservationItem *ReservationItemRow `bun:"rel:belongs-to,join:reservation_item_id=id" json:"reservation_items"`
	CheckIns        []CheckInRow        `bun:"rel:has-many,join:id=ticket_id" json:"check_ins"`
}

// CheckInRow is a single door scan of a ticket.
type CheckInRow struct {
	bun.BaseModel `bun:"table:check_ins,alias:ci"`

	ID        string  `bun:"id,pk" json:"id"`
	TicketID  string  `bun:"ticket_id" json:"ticket_id"`
	Result    *string `bun:"result" json:"result"`
	ScannedAt *string `bun:"scanned_at" json:"scanned_at"`
	ScannedBy *string `bun:"scanned_by" json:"scanned_by"`
}
