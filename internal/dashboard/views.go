package dashboard

import (
	"context"

	"ms-backoffice/internal/analytics"
	"ms-backoffice/internal/cache"
	"ms-backoffice/internal/mapper"
)

// EventDashboard is everything the operator sees for one event.
type EventDashboard struct {
	Event           mapper.Event                  `json:"event"`
	KPIs            analytics.FinanceKPIs         `json:"kpis"`
	DailyRevenue    []analytics.DailyRevenuePoint `json:"dailyRevenue"`
	ReviewStats     analytics.ReviewStats         `json:"reviewStats"`
	CheckIn         analytics.CheckInSummary      `json:"checkIn"`
	StatusBreakdown []analytics.OrderStatusCount  `json:"statusBreakdown"`
	TicketSales     []analytics.TicketTypeSales   `json:"ticketSales"`
	Orders          []mapper.Order                `json:"orders"`
	Attendees       []mapper.Attendee             `json:"attendees"`
	Reviews         []mapper.Review               `json:"reviews"`
	Songs           []mapper.Song                 `json:"songs"`
	GeneratedAt     string                        `json:"generatedAt"`
}

// FinanceDashboard summarizes payments across all events.
type FinanceDashboard struct {
	KPIs            analytics.FinanceKPIs         `json:"kpis"`
	DailyRevenue    []analytics.DailyRevenuePoint `json:"dailyRevenue"`
	MonthlyTax      []analytics.MonthlyTaxRow     `json:"monthlyTax"`
	StatusBreakdown []analytics.OrderStatusCount  `json:"statusBreakdown"`
	CheckIns        []analytics.CheckInSummary    `json:"checkIns"`
	Transactions    []mapper.Transaction          `json:"transactions"`
	GeneratedAt     string                        `json:"generatedAt"`
}

func (s *Service) EventDashboard(ctx context.Context, eventID string) (*EventDashboard, error) {
	return cached(ctx, s, "event", cache.Key("dashboard", "event", eventID), func(ctx context.Context) (*EventDashboard, error) {
		return s.buildEventDashboard(ctx, eventID)
	})
}

func (s *Service) FinanceDashboard(ctx context.Context) (*FinanceDashboard, error) {
	return cached(ctx, s, "finance", cache.Key("dashboard", "finance"), s.buildFinanceDashboard)
}

func (s *Service) buildEventDashboard(ctx context.Context, eventID string) (*EventDashboard, error) {
	var (
		event     *mapper.Event
		orders    []mapper.Order
		txs       []mapper.Transaction
		attendees []mapper.Attendee
		reviews   []mapper.Review
		songs     []mapper.Song
	)
	err := fetch(ctx,
		func(ctx context.Context) (err error) { event, err = s.Event(ctx, eventID); return },
		func(ctx context.Context) (err error) { orders, err = s.Orders(ctx, eventID); return },
		func(ctx context.Context) (err error) { txs, err = s.Transactions(ctx, eventID); return },
		func(ctx context.Context) (err error) { attendees, err = s.Attendees(ctx, eventID); return },
		func(ctx context.Context) (err error) { reviews, err = s.Reviews(ctx, eventID); return },
		func(ctx context.Context) (err error) { songs, err = s.Songs(ctx, eventID); return },
	)
	if err != nil {
		return nil, err
	}

	return &EventDashboard{
		Event:           *event,
		KPIs:            s.engine.FinanceKPIs(txs),
		DailyRevenue:    s.engine.DailyRevenue(txs),
		ReviewStats:     s.engine.ReviewStats(reviews),
		CheckIn:         s.engine.CheckInSummary([]mapper.Event{*event}, attendees)[0],
		StatusBreakdown: s.engine.OrderStatusBreakdown(orders),
		TicketSales:     s.engine.TicketTypeSales(orders),
		Orders:          orders,
		Attendees:       attendees,
		Reviews:         reviews,
		Songs:           songs,
		GeneratedAt:     s.format.Now().Format(generatedLayout),
	}, nil
}

func (s *Service) buildFinanceDashboard(ctx context.Context) (*FinanceDashboard, error) {
	var (
		events    []mapper.Event
		orders    []mapper.Order
		txs       []mapper.Transaction
		attendees []mapper.Attendee
	)
	err := fetch(ctx,
		func(ctx context.Context) (err error) { events, err = s.Events(ctx); return },
		func(ctx context.Context) (err error) { orders, err = s.Orders(ctx, ""); return },
		func(ctx context.Context) (err error) { txs, err = s.Transactions(ctx, ""); return },
		func(ctx context.Context) (err error) { attendees, err = s.Attendees(ctx, ""); return },
	)
	if err != nil {
		return nil, err
	}

	return &FinanceDashboard{
		KPIs:            s.engine.FinanceKPIs(txs),
		DailyRevenue:    s.engine.DailyRevenue(txs),
		MonthlyTax:      s.engine.MonthlyTax(txs),
		StatusBreakdown: s.engine.OrderStatusBreakdown(orders),
		CheckIns:        s.engine.CheckInSummary(events, attendees),
		Transactions:    txs,
		GeneratedAt:     s.format.Now().Format(generatedLayout),
	}, nil
}
