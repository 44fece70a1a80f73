package mapper

import (
	"github.com/samber/lo"

	"ms-backoffice/internal/models"
	"ms-backoffice/internal/status"
)

// Transaction is a payment with its fee split. NetAmount is GrossAmount minus
// PlatformFee and may be negative.
type Transaction struct {
	ID            string               `json:"id"`
	ReservationID string               `json:"reservationId"`
	EventID       string               `json:"eventId"`
	EventTitle    string               `json:"eventTitle"`
	CustomerName  string               `json:"customerName"`
	GrossAmount   int64                `json:"grossAmount"`
	PlatformFee   int64                `json:"platformFee"`
	NetAmount     int64                `json:"netAmount"`
	Currency      string               `json:"currency"`
	Gross         string               `json:"gross"`
	Fee           string               `json:"fee"`
	Net           string               `json:"net"`
	Status        status.PaymentStatus `json:"status"`
	StatusLabel   string               `json:"statusLabel"`
	StatusVariant status.Variant       `json:"statusVariant"`
	Provider      string               `json:"provider"`
	CreatedAt     string               `json:"createdAt"`
	OrderedAt     string               `json:"orderedAt"`
	Date          string               `json:"date"`
}

func (m *Mapper) Transaction(row models.PaymentRow) Transaction {
	st := status.NormalizePayment(text(row.Status))
	gross := centsOr(row.AmountCents, 0)

	var (
		fee        int64
		eventID    string
		eventTitle = unknownEvent
		customer   = guestName
		orderedAt  string
		resCur     *string
	)
	if res := row.Reservation; res != nil {
		fee = centsOr(res.ServiceFeesCents, 0)
		eventID = res.EventID
		orderedAt = text(res.CreatedAt)
		resCur = res.Currency
		if name := fullName(res.BillingFirstName, res.BillingLastName); name != "" {
			customer = name
		}
		if res.Event != nil {
			eventTitle = textOr(res.Event.Title, unknownEvent)
		}
	}

	currency := currencyCode(row.Currency, resCur)
	net := gross - fee
	createdAt := text(row.CreatedAt)

	return Transaction{
		ID:            row.ID,
		ReservationID: row.ReservationID,
		EventID:       eventID,
		EventTitle:    eventTitle,
		CustomerName:  customer,
		GrossAmount:   gross,
		PlatformFee:   fee,
		NetAmount:     net,
		Currency:      currency,
		Gross:         m.f.Money(gross, currency),
		Fee:           m.f.Money(fee, currency),
		Net:           m.f.Money(net, currency),
		Status:        st,
		StatusLabel:   st.Label(),
		StatusVariant: st.Variant(),
		Provider:      text(row.Provider),
		CreatedAt:     createdAt,
		OrderedAt:     orderedAt,
		Date:          m.f.DateTime(createdAt),
	}
}

func (m *Mapper) Transactions(rows []models.PaymentRow) []Transaction {
	return lo.Map(rows, func(row models.PaymentRow, _ int) Transaction { return m.Transaction(row) })
}
