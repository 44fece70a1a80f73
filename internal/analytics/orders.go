package analytics

import (
	"sort"

	"github.com/samber/lo"

	"ms-backoffice/internal/mapper"
	"ms-backoffice/internal/status"
)

// OrderStatusCount is the number and gross value of orders in one status.
type OrderStatusCount struct {
	Status     status.OrderStatus `json:"status"`
	Label      string             `json:"label"`
	Variant    status.Variant     `json:"variant"`
	Count      int                `json:"count"`
	TotalCents int64              `json:"totalCents"`
}

// TicketTypeSales is the quantity sold of one ticket type across orders.
type TicketTypeSales struct {
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	Orders       int    `json:"orders"`
	RevenueCents int64  `json:"revenueCents"`
}

// OrderStatusBreakdown returns every order status, in enumeration order,
// including the ones with no orders.
func (e *Engine) OrderStatusBreakdown(orders []mapper.Order) []OrderStatusCount {
	byStatus := lo.GroupBy(orders, func(o mapper.Order) status.OrderStatus { return o.Status })

	return lo.Map(status.OrderStatuses(), func(st status.OrderStatus, _ int) OrderStatusCount {
		group := byStatus[st]
		return OrderStatusCount{
			Status:     st,
			Label:      st.Label(),
			Variant:    st.Variant(),
			Count:      len(group),
			TotalCents: lo.SumBy(group, func(o mapper.Order) int64 { return o.TotalAmountCents }),
		}
	})
}

// TicketTypeSales sums item quantities by ticket type name, highest quantity
// first and then by name.
func (e *Engine) TicketTypeSales(orders []mapper.Order) []TicketTypeSales {
	sales := make(map[string]*TicketTypeSales)
	for _, o := range orders {
		seen := make(map[string]bool, len(o.Items))
		for _, it := range o.Items {
			s, ok := sales[it.Name]
			if !ok {
				s = &TicketTypeSales{Name: it.Name}
				sales[it.Name] = s
			}
			s.Quantity += it.Quantity
			s.RevenueCents += int64(it.Quantity) * it.UnitPriceCents
			if !seen[it.Name] {
				s.Orders++
				seen[it.Name] = true
			}
		}
	}

	out := make([]TicketTypeSales, 0, len(sales))
	for _, s := range sales {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return out
}
