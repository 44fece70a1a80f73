package models

import (
	"github.com/uptrace/bun"
)

// ReservationRow is an order placed against an event. ServiceFeesCents is the
// platform fee snapshot taken when the reservation was created.
type ReservationRow struct {
	bun.BaseModel `bun:"table:reservations,alias:r"`

	ID               string  `bun:"id,pk" json:"id"`
	EventID          string  `bun:"event_id" json:"event_id"`
	BillingFirstName *string `bun:"billing_first_name" json:"billing_first_name"`
	BillingLastName  *string `bun:"billing_last_name" json:"billing_last_name"`
	BillingEmail     *string `bun:"billing_email" json:"billing_email"`
	TotalAmountCents *int64  `bun:"total_amount_cents" json:"total_amount_cents"`
	ServiceFeesCents *int64  `bun:"service_fees_cents" json:"service_fees_cents"`
	Currency         *string `bun:"currency" json:"currency"`
	Status           *string `bun:"status" json:"status"`
	CreatedAt        *string `bun:"created_at" json:"created_at"`

	Event *EventRow            `bun:"rel:belongs-to,join:event_id=id" json:"events"`
	Items []ReservationItemRow `bun:"rel:has-many,join:id=reservation_id" json:"reservation_items"`
}

type ReservationItemRow struct {
	bun.BaseModel `bun:"table:reservation_items,alias:ri"`

	ID             string  `bun:"id,pk" json:"id"`
	ReservationID  string  `bun:"reservation_id" json:"reservation_id"`
	TicketTypeID   *string `bun:"ticket_type_id" json:"ticket_type_id"`
	Quantity       *int    `bun:"quantity" json:"quantity"`
	UnitPriceCents *int64  `bun:"unit_price_cents" json:"unit_price_cents"`

	TicketType *TicketTypeRow `bun:"rel:belongs-to,join:ticket_type_id=id" json:"ticket_types"`
}

type TicketTypeRow struct {
	bun.BaseModel `bun:"table:ticket_types,alias:tt"`

	ID         string  `bun:"id,pk" json:"id"`
	EventID    string  `bun:"event_id" json:"event_id"`
	Name       *string `bun:"name" json:"name"`
	PriceCents *int64  `bun:"price_cents" json:"price_cents"`
}
