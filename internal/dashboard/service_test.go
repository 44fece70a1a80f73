package dashboard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ms-backoffice/internal/auth"
	"ms-backoffice/internal/cache"
	"ms-backoffice/internal/dashboard"
	"ms-backoffice/internal/format"
	"ms-backoffice/internal/kafka"
	"ms-backoffice/internal/logger"
	"ms-backoffice/internal/models"
	"ms-backoffice/internal/store"
	"ms-backoffice/internal/tickets/qr"
)

func ptr[T any](v T) *T { return &v }

var now = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListEvents(ctx context.Context) ([]models.EventRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.EventRow), args.Error(1)
}

func (m *MockStore) GetEvent(ctx context.Context, id string) (*models.EventRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventRow), args.Error(1)
}

func (m *MockStore) ListReservations(ctx context.Context, eventID string) ([]models.ReservationRow, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]models.ReservationRow), args.Error(1)
}

func (m *MockStore) ListPayments(ctx context.Context, eventID string) ([]models.PaymentRow, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]models.PaymentRow), args.Error(1)
}

func (m *MockStore) ListTickets(ctx context.Context, eventID string) ([]models.TicketRow, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]models.TicketRow), args.Error(1)
}

func (m *MockStore) GetTicket(ctx context.Context, id string) (*models.TicketRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketRow), args.Error(1)
}

func (m *MockStore) ListReviews(ctx context.Context, eventID string) ([]models.ReviewRow, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]models.ReviewRow), args.Error(1)
}

func (m *MockStore) ListSongs(ctx context.Context, eventID string) ([]models.SongSuggestionRow, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]models.SongSuggestionRow), args.Error(1)
}

func (m *MockStore) ListVenues(ctx context.Context) ([]models.VenueRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.VenueRow), args.Error(1)
}

// memorySnapshots is an in-process snapshot cache.
type memorySnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{data: map[string][]byte{}}
}

func (m *memorySnapshots) Get(_ context.Context, key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memorySnapshots) Set(_ context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.sets++
	return nil
}

func (m *memorySnapshots) Invalidate(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.ExportEvent
	err    error
}

func (p *recordingPublisher) PublishExport(_ context.Context, ev kafka.ExportEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func newFormatter() *format.Formatter {
	return format.New(format.WithClock(format.FixedClock{At: now}), format.WithLocation(time.UTC))
}

func seedEvent(m *MockStore, eventID string) {
	m.On("GetEvent", mock.Anything, eventID).Return(&models.EventRow{
		ID:            eventID,
		Title:         ptr("Launch"),
		Status:        ptr("published"),
		AttendeeCount: ptr(2),
	}, nil)
	m.On("ListReservations", mock.Anything, eventID).Return([]models.ReservationRow{
		{
			ID:               "res-1",
			EventID:          eventID,
			Status:           ptr("confirmed"),
			TotalAmountCents: ptr(int64(10000)),
			BillingFirstName: ptr("Ada"),
			Items: []models.ReservationItemRow{
				{Quantity: ptr(2), UnitPriceCents: ptr(int64(5000)), TicketType: &models.TicketTypeRow{Name: ptr("VIP")}},
			},
		},
	}, nil)
	m.On("ListPayments", mock.Anything, eventID).Return([]models.PaymentRow{
		{
			ID:          "pay-1",
			AmountCents: ptr(int64(10000)),
			Status:      ptr("completed"),
			CreatedAt:   ptr("2026-10-16T09:00:00Z"),
			Reservation: &models.ReservationRow{ID: "res-1", ServiceFeesCents: ptr(int64(800))},
		},
	}, nil)
	m.On("ListTickets", mock.Anything, eventID).Return([]models.TicketRow{
		{ID: "tkt-1", EventID: eventID, CheckIns: []models.CheckInRow{{ID: "c1", Result: ptr("accepted")}}},
		{ID: "tkt-2", EventID: eventID},
	}, nil)
	m.On("ListReviews", mock.Anything, eventID).Return([]models.ReviewRow{
		{ID: "rv-1", EventID: eventID, Rating: ptr(5)},
		{ID: "rv-2", EventID: eventID, Rating: ptr(9)},
	}, nil)
	m.On("ListSongs", mock.Anything, eventID).Return([]models.SongSuggestionRow{
		{ID: "s-1", EventID: eventID, Title: ptr("Blue Monday")},
	}, nil)
}

func TestEventDashboard(t *testing.T) {
	m := new(MockStore)
	seedEvent(m, "evt-1")
	svc := dashboard.NewService(m, newFormatter(), nil)

	d, err := svc.EventDashboard(context.Background(), "evt-1")
	require.NoError(t, err)

	assert.Equal(t, "Launch", d.Event.Title)
	assert.Equal(t, int64(10000), d.KPIs.TotalGross)
	assert.Equal(t, int64(800), d.KPIs.TotalFees)
	assert.Equal(t, int64(9200), d.KPIs.TotalNet)
	assert.Len(t, d.DailyRevenue, 29)
	assert.Equal(t, int64(10000), d.DailyRevenue[14].Value)
	assert.Equal(t, 2, d.ReviewStats.Count)
	assert.Equal(t, 5.0, d.ReviewStats.Average)
	assert.Equal(t, 2, d.CheckIn.TotalTickets)
	assert.Equal(t, 1, d.CheckIn.CheckedIn)
	assert.Equal(t, "VIP", d.TicketSales[0].Name)
	assert.Len(t, d.Songs, 1)
	assert.Equal(t, "2026-10-16T12:00:00Z", d.GeneratedAt)
	m.AssertExpectations(t)
}

func TestEventDashboardPropagatesStoreErrors(t *testing.T) {
	m := new(MockStore)
	m.On("GetEvent", mock.Anything, "missing").Return(nil, store.ErrNotFound)
	m.On("ListReservations", mock.Anything, "missing").Return([]models.ReservationRow{}, nil).Maybe()
	m.On("ListPayments", mock.Anything, "missing").Return([]models.PaymentRow{}, nil).Maybe()
	m.On("ListTickets", mock.Anything, "missing").Return([]models.TicketRow{}, nil).Maybe()
	m.On("ListReviews", mock.Anything, "missing").Return([]models.ReviewRow{}, nil).Maybe()
	m.On("ListSongs", mock.Anything, "missing").Return([]models.SongSuggestionRow{}, nil).Maybe()
	svc := dashboard.NewService(m, newFormatter(), nil)

	_, err := svc.EventDashboard(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEventDashboardUsesSnapshots(t *testing.T) {
	m := new(MockStore)
	seedEvent(m, "evt-1")
	snaps := newMemorySnapshots()
	svc := dashboard.NewService(m, newFormatter(), nil, dashboard.WithSnapshots(snaps))
	ctx := context.Background()

	first, err := svc.EventDashboard(ctx, "evt-1")
	require.NoError(t, err)
	second, err := svc.EventDashboard(ctx, "evt-1")
	require.NoError(t, err)

	assert.Equal(t, first.KPIs, second.KPIs)
	assert.Equal(t, first.ReviewStats, second.ReviewStats)
	assert.Equal(t, 1, snaps.sets)
	m.AssertNumberOfCalls(t, "GetEvent", 1)

	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.EventDashboard(ctx, "evt-1")
	require.NoError(t, err)
	m.AssertNumberOfCalls(t, "GetEvent", 2)
}

func TestFinanceDashboard(t *testing.T) {
	m := new(MockStore)
	m.On("ListEvents", mock.Anything).Return([]models.EventRow{{ID: "evt-1", Title: ptr("Launch")}}, nil)
	m.On("ListReservations", mock.Anything, "").Return([]models.ReservationRow{
		{ID: "res-1", Status: ptr("confirmed"), TotalAmountCents: ptr(int64(5000))},
		{ID: "res-2", Status: ptr("refunded"), TotalAmountCents: ptr(int64(2000))},
	}, nil)
	m.On("ListPayments", mock.Anything, "").Return([]models.PaymentRow{
		{
			ID:          "pay-1",
			AmountCents: ptr(int64(5000)),
			CreatedAt:   ptr("2026-10-15T09:00:00Z"),
			Reservation: &models.ReservationRow{ID: "res-1", ServiceFeesCents: ptr(int64(250)), CreatedAt: ptr("2026-10-15T08:00:00Z")},
		},
	}, nil)
	m.On("ListTickets", mock.Anything, "").Return([]models.TicketRow{{ID: "tkt-1", EventID: "evt-1"}}, nil)
	svc := dashboard.NewService(m, newFormatter(), nil)

	d, err := svc.FinanceDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, d.KPIs.TotalNet, d.KPIs.TotalGross-d.KPIs.TotalFees)
	require.Len(t, d.MonthlyTax, 1)
	assert.Equal(t, "2026-10", d.MonthlyTax[0].Month)
	require.Len(t, d.CheckIns, 1)
	assert.Equal(t, 1, d.CheckIns[0].TotalTickets)
	assert.Len(t, d.Transactions, 1)
}

func TestExportOrders(t *testing.T) {
	m := new(MockStore)
	seedEvent(m, "evt-1")
	pub := &recordingPublisher{}
	var logs bytes.Buffer
	svc := dashboard.NewService(m, newFormatter(), logger.NewWriterLogger(&logs), dashboard.WithPublisher(pub))
	ctx := auth.WithOperator(context.Background(), auth.Operator{Subject: "op-1"})

	out, err := svc.Export(ctx, "orders", "evt-1")
	require.NoError(t, err)

	assert.Equal(t, "orders-evt-1-2026-10-16.csv", out.Filename)
	assert.Equal(t, 1, out.Rows)
	lines := strings.Split(out.Content, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Order ID,Event,Customer,Email,Tickets,Quantity,Total,Status,Ordered", lines[0])
	assert.Equal(t, "res-1,Unknown Event,Ada,,VIP,2,$100.00,Confirmed,—", lines[1])

	require.Len(t, pub.events, 1)
	assert.Equal(t, "orders", pub.events[0].Entity)
	assert.Equal(t, "op-1", pub.events[0].OperatorID)
	assert.Contains(t, logs.String(), "[orders] orders-evt-1-2026-10-16.csv - 1 rows")
}

func TestExportIgnoresPublisherFailure(t *testing.T) {
	m := new(MockStore)
	m.On("ListVenues", mock.Anything).Return([]models.VenueRow{{ID: "v-1", Name: ptr("Hall, Main")}}, nil)
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := dashboard.NewService(m, newFormatter(), logger.NewWriterLogger(&bytes.Buffer{}), dashboard.WithPublisher(pub))

	out, err := svc.Export(context.Background(), "venues", "evt-1")
	require.NoError(t, err)
	assert.Equal(t, "venues-2026-10-16.csv", out.Filename)
	assert.Contains(t, out.Content, `"Hall, Main"`)
}

func TestExportUnknownEntity(t *testing.T) {
	svc := dashboard.NewService(new(MockStore), newFormatter(), nil)

	_, err := svc.Export(context.Background(), "passwords", "")
	assert.ErrorIs(t, err, dashboard.ErrUnknownEntity)
}

func TestTicketQR(t *testing.T) {
	m := new(MockStore)
	m.On("GetTicket", mock.Anything, "tkt-1").Return(&models.TicketRow{ID: "tkt-1", EventID: "evt-1"}, nil)
	m.On("GetTicket", mock.Anything, "nope").Return(nil, store.ErrNotFound)

	disabled := dashboard.NewService(m, newFormatter(), nil)
	_, err := disabled.TicketQR(context.Background(), "tkt-1")
	assert.ErrorIs(t, err, dashboard.ErrQRDisabled)

	gen, err := qr.NewQRGenerator("door-secret")
	require.NoError(t, err)
	svc := dashboard.NewService(m, newFormatter(), nil, dashboard.WithQRGenerator(gen))

	png, err := svc.TicketQR(context.Background(), "tkt-1")
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = svc.TicketQR(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
