package analytics_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-backoffice/internal/analytics"
	"ms-backoffice/internal/format"
	"ms-backoffice/internal/mapper"
	"ms-backoffice/internal/models"
	"ms-backoffice/internal/status"
)

var now = time.Date(2026, time.October, 16, 15, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newEngine(loc *time.Location) (*analytics.Engine, *mapper.Mapper) {
	f := format.New(format.WithClock(format.FixedClock{At: now}), format.WithLocation(loc))
	return analytics.NewEngine(f), mapper.New(f)
}

func payment(id string, amount, fee int64, paidAt, orderedAt string) models.PaymentRow {
	return models.PaymentRow{
		ID:            id,
		ReservationID: "res-" + id,
		AmountCents:   ptr(amount),
		Currency:      ptr("USD"),
		Status:        ptr("completed"),
		CreatedAt:     ptr(paidAt),
		Reservation: &models.ReservationRow{
			ID:               "res-" + id,
			ServiceFeesCents: ptr(fee),
			CreatedAt:        ptr(orderedAt),
		},
	}
}

func TestDailyRevenueShape(t *testing.T) {
	engine, m := newEngine(time.UTC)

	inputs := map[string][]mapper.Transaction{
		"empty": nil,
		"some": m.Transactions([]models.PaymentRow{
			payment("a", 1000, 100, "2026-10-16T09:00:00Z", "2026-10-15T09:00:00Z"),
			payment("b", 2500, 250, "2025-01-01T09:00:00Z", "2024-12-31T09:00:00Z"),
		}),
	}
	for name, txs := range inputs {
		points := engine.DailyRevenue(txs)
		require.Len(t, points, 29, name)

		today := 0
		for _, p := range points {
			if p.IsToday {
				today++
			}
		}
		assert.Equal(t, 1, today, name)
		assert.True(t, points[14].IsToday, name)
		assert.Equal(t, "Today", points[14].Label, name)
		assert.Equal(t, "Oct 2", points[0].Label, name)
		assert.Equal(t, "Oct 30, 2026", points[28].Date, name)
	}
}

func TestDailyRevenueBuckets(t *testing.T) {
	engine, m := newEngine(time.UTC)

	txs := m.Transactions([]models.PaymentRow{
		payment("a", 1000, 100, "2026-10-16T09:00:00Z", ""),
		payment("b", 500, 0, "2026-10-16T23:59:00Z", ""),
		payment("c", 700, 0, "2026-10-14T12:00:00Z", ""),
		payment("d", 900, 0, "not a date", ""),
		payment("e", 300, 0, "2026-10-25T12:00:00Z", ""),
	})
	points := engine.DailyRevenue(txs)

	assert.Equal(t, int64(1500), points[14].Value)
	assert.Equal(t, 2, points[14].ReservationCount)
	assert.Equal(t, int64(700), points[12].Value)
	assert.Equal(t, "Oct 14", points[12].Label)
	assert.Equal(t, int64(300), points[23].Value)
	assert.Equal(t, int64(0), points[13].Value)
	assert.Equal(t, 0, points[13].ReservationCount)
}

func TestDailyRevenueUsesLocalCalendarDay(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	engine, m := newEngine(est)

	// 02:00 UTC on the 16th is the evening of the 15th in EST.
	txs := m.Transactions([]models.PaymentRow{payment("a", 1000, 0, "2026-10-16T02:00:00Z", "")})
	points := engine.DailyRevenue(txs)

	assert.Equal(t, "2026-10-15", points[13].Key)
	assert.Equal(t, int64(1000), points[13].Value)
	assert.Equal(t, int64(0), points[14].Value)
}

func TestDailyRevenueAcrossMidnightDSTStart(t *testing.T) {
	// Santiago skips 00:00-01:00 on 2025-09-07.
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	at := time.Date(2025, time.September, 10, 12, 0, 0, 0, santiago)
	f := format.New(format.WithClock(format.FixedClock{At: at}), format.WithLocation(santiago))
	engine, m := analytics.NewEngine(f), mapper.New(f)

	txs := m.Transactions([]models.PaymentRow{payment("a", 5000, 0, "2025-09-07T12:00:00-03:00", "")})
	points := engine.DailyRevenue(txs)
	require.Len(t, points, 29)

	seen := map[string]bool{}
	for i, p := range points {
		assert.False(t, seen[p.Key], "duplicate day %s", p.Key)
		seen[p.Key] = true
		if i > 0 {
			prev, _ := time.Parse("2006-01-02", points[i-1].Key)
			cur, _ := time.Parse("2006-01-02", p.Key)
			assert.Equal(t, 24*time.Hour, cur.Sub(prev), "gap before %s", p.Key)
		}
	}

	assert.Equal(t, "2025-09-06", points[10].Key)
	assert.Equal(t, "2025-09-07", points[11].Key)
	assert.Equal(t, "Sep 7", points[11].Label)
	assert.Equal(t, "Sep 7, 2025", points[11].Date)
	assert.Equal(t, int64(5000), points[11].Value)
	assert.Equal(t, "2025-09-10", points[14].Key)
	assert.True(t, points[14].IsToday)
}

func TestMonthlyTaxGroupsByOrderMonth(t *testing.T) {
	engine, m := newEngine(time.UTC)

	txs := m.Transactions([]models.PaymentRow{
		payment("a", 10000, 500, "2026-10-01T10:00:00Z", "2026-09-30T22:00:00Z"),
		payment("b", 5000, 250, "2026-10-02T10:00:00Z", "2026-10-02T09:00:00Z"),
		payment("c", 2000, 100, "2026-10-03T10:00:00Z", "2026-10-03T09:00:00Z"),
		payment("d", 2000, 100, "2026-08-03T10:00:00Z", "garbage"),
		payment("e", 1000, 50, "2026-07-03T10:00:00Z", "2026-07-01"),
	})
	rows := engine.MonthlyTax(txs)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2026-07", "2026-09", "2026-10"}, []string{rows[0].Month, rows[1].Month, rows[2].Month})

	sep := rows[1]
	assert.Equal(t, int64(10000), sep.GrossAmount)
	assert.Equal(t, 1, sep.TransactionCount)
	assert.Equal(t, "Sep 2026", sep.Label)

	oct := rows[2]
	assert.Equal(t, int64(7000), oct.GrossAmount)
	assert.Equal(t, int64(350), oct.PlatformFee)
	assert.Equal(t, int64(6650), oct.NetAmount)
	assert.Equal(t, 2, oct.TransactionCount)
	assert.Equal(t, "$66.50", oct.Net)
}

func TestFinanceKPIsNetEqualsGrossMinusFees(t *testing.T) {
	engine, m := newEngine(time.UTC)

	sets := [][]models.PaymentRow{
		nil,
		{payment("a", 10000, 750, "2026-10-16T10:00:00Z", "")},
		{
			payment("a", 10000, 750, "2026-10-16T10:00:00Z", ""),
			payment("b", 100, 900, "2026-10-16T10:00:00Z", ""),
			{ID: "orphan", AmountCents: ptr(int64(4200))},
			{ID: "empty"},
		},
	}
	for _, rows := range sets {
		kpis := engine.FinanceKPIs(m.Transactions(rows))
		assert.Equal(t, kpis.TotalNet, kpis.TotalGross-kpis.TotalFees)
		assert.Equal(t, len(rows), kpis.TransactionCount)
	}

	kpis := engine.FinanceKPIs(m.Transactions(sets[2]))
	assert.Equal(t, int64(14300), kpis.TotalGross)
	assert.Equal(t, int64(1650), kpis.TotalFees)
	assert.Equal(t, "$126.50", kpis.Net)
}

func TestReviewStatsEmpty(t *testing.T) {
	engine, _ := newEngine(time.UTC)

	stats := engine.ReviewStats(nil)

	assert.Equal(t, 0, stats.Count)
	assert.Equal(t, 0.0, stats.Average)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.Distribution)
}

func TestReviewStatsClampsBeforeAveraging(t *testing.T) {
	engine, _ := newEngine(time.UTC)

	var reviews []mapper.Review
	for _, r := range []int{5, 5, 4, 3, 6, 0, 5} {
		reviews = append(reviews, mapper.Review{Rating: r})
	}
	stats := engine.ReviewStats(reviews)

	assert.Equal(t, 7, stats.Count)
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 1, 4: 1, 5: 4}, stats.Distribution)
	assert.Equal(t, 4.0, stats.Average)

	// Raw mean would be 7.
	skewed := engine.ReviewStats([]mapper.Review{{Rating: 10}, {Rating: 4}})
	assert.Equal(t, 4.5, skewed.Average)
	assert.Equal(t, 1, skewed.Distribution[5])
}

func TestReviewStatsRoundsToOneDecimal(t *testing.T) {
	engine, _ := newEngine(time.UTC)

	stats := engine.ReviewStats([]mapper.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	assert.Equal(t, 4.3, stats.Average)
}

func TestCheckInSummary(t *testing.T) {
	engine, m := newEngine(time.UTC)

	events := m.Events([]models.EventRow{
		{ID: "evt-1", Title: ptr("Launch"), AttendeeCount: ptr(120)},
		{ID: "evt-2", Title: ptr("Afterparty")},
	})
	attendees := m.Attendees([]models.TicketRow{
		{ID: "t1", EventID: "evt-1", CheckIns: []models.CheckInRow{{ID: "c1", Result: ptr("accepted")}}},
		{ID: "t2", EventID: "evt-1", CheckIns: []models.CheckInRow{{ID: "c2", Result: ptr("rejected")}}},
		{ID: "t3", EventID: "evt-1"},
		{ID: "t4", EventID: "evt-1"},
		{ID: "t5", EventID: "evt-9", CheckIns: []models.CheckInRow{{ID: "c3", Result: ptr("accepted")}}},
	})

	summary := engine.CheckInSummary(events, attendees)

	require.Len(t, summary, 2)
	assert.Equal(t, analytics.CheckInSummary{
		EventID:        "evt-1",
		EventTitle:     "Launch",
		TotalTickets:   4,
		CheckedIn:      2,
		AttendeeCount:  120,
		CompletionRate: 50,
	}, summary[0])
	assert.Equal(t, 0, summary[1].TotalTickets)
	assert.Equal(t, 0.0, summary[1].CompletionRate)
}

func TestOrderStatusBreakdownListsEveryStatus(t *testing.T) {
	engine, m := newEngine(time.UTC)

	orders := m.Orders([]models.ReservationRow{
		{ID: "r1", Status: ptr("confirmed"), TotalAmountCents: ptr(int64(1000))},
		{ID: "r2", Status: ptr("CONFIRMED"), TotalAmountCents: ptr(int64(500))},
		{ID: "r3", Status: ptr("canceled"), TotalAmountCents: ptr(int64(200))},
		{ID: "r4", Status: ptr("mystery")},
	})

	breakdown := engine.OrderStatusBreakdown(orders)

	require.Len(t, breakdown, len(status.OrderStatuses()))
	assert.Equal(t, status.OrderConfirmed, breakdown[0].Status)
	assert.Equal(t, 2, breakdown[0].Count)
	assert.Equal(t, int64(1500), breakdown[0].TotalCents)
	assert.Equal(t, status.OrderCancelled, breakdown[2].Status)
	assert.Equal(t, 1, breakdown[2].Count)
	assert.Equal(t, status.OrderDraft, breakdown[5].Status)
	assert.Equal(t, 1, breakdown[5].Count)
	assert.Equal(t, 0, breakdown[1].Count)
}

func TestTicketTypeSales(t *testing.T) {
	engine, m := newEngine(time.UTC)
	item := func(name string, qty int, price int64) models.ReservationItemRow {
		return models.ReservationItemRow{
			Quantity:       ptr(qty),
			UnitPriceCents: ptr(price),
			TicketType:     &models.TicketTypeRow{Name: ptr(name)},
		}
	}

	orders := m.Orders([]models.ReservationRow{
		{ID: "r1", Items: []models.ReservationItemRow{item("VIP", 2, 5000), item("General", 1, 2000)}},
		{ID: "r2", Items: []models.ReservationItemRow{item("General", 1, 2000), item("General", 1, 2000)}},
		{ID: "r3", Items: []models.ReservationItemRow{item("Balcony", 2, 3000)}},
	})

	sales := engine.TicketTypeSales(orders)

	require.Len(t, sales, 3)
	assert.Equal(t, analytics.TicketTypeSales{Name: "General", Quantity: 3, Orders: 2, RevenueCents: 6000}, sales[0])
	assert.Equal(t, "Balcony", sales[1].Name)
	assert.Equal(t, "VIP", sales[2].Name)
	assert.Equal(t, int64(10000), sales[2].RevenueCents)
}
