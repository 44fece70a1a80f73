// Package status collapses the raw status strings of the event, reservation,
// ticket, payment and check-in tables into closed enumerations and maps them
// to badge variants and human labels.
package status

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type EventStatus string

const (
	EventPublished EventStatus = "published"
	EventDraft     EventStatus = "draft"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

type OrderStatus string

const (
	OrderConfirmed OrderStatus = "confirmed"
	OrderPending   OrderStatus = "pending"
	OrderCancelled OrderStatus = "cancelled"
	OrderExpired   OrderStatus = "expired"
	OrderRefunded  OrderStatus = "refunded"
	OrderDraft     OrderStatus = "draft"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentPending   PaymentStatus = "pending"
)

type TicketStatus string

const (
	TicketValid     TicketStatus = "valid"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
	TicketRefunded  TicketStatus = "refunded"
)

type CheckInResult string

const (
	CheckInAccepted CheckInResult = "accepted"
	CheckInRejected CheckInResult = "rejected"
)

// EventStatuses lists every event status in display order.
func EventStatuses() []EventStatus {
	return []EventStatus{EventPublished, EventDraft, EventCompleted, EventCancelled}
}

// OrderStatuses lists every order status in display order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderConfirmed, OrderPending, OrderCancelled, OrderExpired, OrderRefunded, OrderDraft}
}

// PaymentStatuses lists every payment status in display order.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentCompleted, PaymentFailed, PaymentPending}
}

func TicketStatuses() []TicketStatus {
	return []TicketStatus{TicketValid, TicketUsed, TicketCancelled, TicketRefunded}
}

func CheckInResults() []CheckInResult {
	return []CheckInResult{CheckInAccepted, CheckInRejected}
}

// canonical lower-cases and trims raw and folds the American spelling of
// "cancelled".
func canonical(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "canceled" {
		return "cancelled"
	}
	return s
}

// NormalizeEvent maps a raw events.status value. Unknown and empty values
// become EventDraft.
func NormalizeEvent(raw string) EventStatus {
	switch canonical(raw) {
	case "published":
		return EventPublished
	case "draft":
		return EventDraft
	case "completed":
		return EventCompleted
	case "cancelled":
		return EventCancelled
	default:
		return EventDraft
	}
}

// NormalizeOrder maps a raw reservations.status value. Unknown and empty values
// become OrderDraft.
func NormalizeOrder(raw string) OrderStatus {
	switch canonical(raw) {
	case "confirmed":
		return OrderConfirmed
	case "pending":
		return OrderPending
	case "cancelled":
		return OrderCancelled
	case "expired":
		return OrderExpired
	case "refunded":
		return OrderRefunded
	case "draft":
		return OrderDraft
	default:
		return OrderDraft
	}
}

// NormalizePayment maps a raw payments.status value. Unknown and empty values
// become PaymentPending.
func NormalizePayment(raw string) PaymentStatus {
	switch canonical(raw) {
	case "completed":
		return PaymentCompleted
	case "failed":
		return PaymentFailed
	case "pending":
		return PaymentPending
	default:
		return PaymentPending
	}
}

func NormalizeTicket(raw string) TicketStatus {
	switch canonical(raw) {
	case "valid":
		return TicketValid
	case "used":
		return TicketUsed
	case "cancelled":
		return TicketCancelled
	case "refunded":
		return TicketRefunded
	default:
		return TicketValid
	}
}

// NormalizeCheckIn maps a check_ins.result value. Anything that is not an
// explicit acceptance counts as rejected.
func NormalizeCheckIn(raw string) CheckInResult {
	switch canonical(raw) {
	case "accepted":
		return CheckInAccepted
	case "rejected":
		return CheckInRejected
	default:
		return CheckInRejected
	}
}

func (s EventStatus) Variant() Variant   { return BadgeVariant(string(s)) }
func (s OrderStatus) Variant() Variant   { return BadgeVariant(string(s)) }
func (s PaymentStatus) Variant() Variant { return BadgeVariant(string(s)) }
func (s TicketStatus) Variant() Variant  { return BadgeVariant(string(s)) }
func (s CheckInResult) Variant() Variant { return BadgeVariant(string(s)) }

func (s EventStatus) Label() string   { return Label(string(s)) }
func (s OrderStatus) Label() string   { return Label(string(s)) }
func (s PaymentStatus) Label() string { return Label(string(s)) }
func (s TicketStatus) Label() string  { return Label(string(s)) }
func (s CheckInResult) Label() string { return Label(string(s)) }

// Label turns a status such as "partially_refunded" into "Partially Refunded".
// Letters after the first one of each word are left untouched.
func Label(s string) string {
	if s == "" {
		return ""
	}
	// Casers keep state between calls, so each call gets its own.
	caser := cases.Title(language.English, cases.NoLower)
	return caser.String(strings.ReplaceAll(s, "_", " "))
}
