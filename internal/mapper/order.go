package mapper

import (
	"fmt"

	"github.com/samber/lo"

	"ms-backoffice/internal/models"
	"ms-backoffice/internal/status"
)

type OrderItem struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type Order struct {
	ID               string             `json:"id"`
	EventID          string             `json:"eventId"`
	EventTitle       string             `json:"eventTitle"`
	CustomerName     string             `json:"customerName"`
	CustomerEmail    string             `json:"customerEmail"`
	TotalAmountCents int64              `json:"totalAmountCents"`
	ServiceFeesCents int64              `json:"serviceFeesCents"`
	Currency         string             `json:"currency"`
	Total            string             `json:"total"`
	Status           status.OrderStatus `json:"status"`
	StatusLabel      string             `json:"statusLabel"`
	StatusVariant    status.Variant     `json:"statusVariant"`
	OrderedAt        string             `json:"orderedAt"`
	OrderDate        string             `json:"orderDate"`
	Items            []OrderItem        `json:"items"`
	OfferType        string             `json:"offerType"`
	TicketCount      int                `json:"ticketCount"`
}

func (m *Mapper) Order(row models.ReservationRow) Order {
	st := status.NormalizeOrder(text(row.Status))
	currency := currencyCode(row.Currency)
	total := centsOr(row.TotalAmountCents, 0)

	customer := fullName(row.BillingFirstName, row.BillingLastName)
	if customer == "" {
		customer = guestName
	}

	eventTitle := unknownEvent
	if row.Event != nil {
		eventTitle = textOr(row.Event.Title, unknownEvent)
	}

	items := orderItems(row.Items)
	orderedAt := text(row.CreatedAt)

	return Order{
		ID:               row.ID,
		EventID:          row.EventID,
		EventTitle:       eventTitle,
		CustomerName:     customer,
		CustomerEmail:    text(row.BillingEmail),
		TotalAmountCents: total,
		ServiceFeesCents: centsOr(row.ServiceFeesCents, 0),
		Currency:         currency,
		Total:            m.f.Money(total, currency),
		Status:           st,
		StatusLabel:      st.Label(),
		StatusVariant:    st.Variant(),
		OrderedAt:        orderedAt,
		OrderDate:        m.f.Date(orderedAt),
		Items:            items,
		OfferType:        offerType(items),
		TicketCount:      lo.SumBy(items, func(it OrderItem) int { return it.Quantity }),
	}
}

func (m *Mapper) Orders(rows []models.ReservationRow) []Order {
	return lo.Map(rows, func(row models.ReservationRow, _ int) Order { return m.Order(row) })
}

func orderItems(rows []models.ReservationItemRow) []OrderItem {
	return lo.Map(rows, func(it models.ReservationItemRow, _ int) OrderItem {
		name := "Ticket"
		if it.TicketType != nil {
			name = textOr(it.TicketType.Name, name)
		}
		return OrderItem{
			Name:           name,
			Quantity:       max(0, intOr(it.Quantity, 0)),
			UnitPriceCents: centsOr(it.UnitPriceCents, 0),
		}
	})
}

// offerType is the single item name, "N types" for several distinct names,
// or a dash for an empty order.
func offerType(items []OrderItem) string {
	names := lo.Uniq(lo.Map(items, func(it OrderItem, _ int) string { return it.Name }))
	switch len(names) {
	case 0:
		return noOffer
	case 1:
		return names[0]
	default:
		return fmt.Sprintf("%d types", len(names))
	}
}
