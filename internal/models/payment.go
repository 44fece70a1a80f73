package models

import (
	"github.com/uptrace/bun"
)

// PaymentRow is a payment attempt. AmountCents is the gross amount charged.
type PaymentRow struct {
	bun.BaseModel `bun:"table:payments,alias:p"`

	ID            string  `bun:"id,pk" json:"id"`
	ReservationID string  `bun:"reservation_id" json:"reservation_id"`
	AmountCents   *int64  `bun:"amount_cents" json:"amount_cents"`
	Currency      *string `bun:"currency" json:"currency"`
	Status        *string `bun:"status" json:"status"`
	Provider      *string `bun:"provider" json:"provider"`
	CreatedAt     *string `bun:"created_at" json:"created_at"`

	Reservation *ReservationRow `bun:"rel:belongs-to,join:reservation_id=id" json:"reservations"`
}
