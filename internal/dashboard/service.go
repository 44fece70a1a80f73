// Package dashboard loads rows from the store in parallel and turns them into
// the views and summaries served by the API.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ms-backoffice/internal/analytics"
	"ms-backoffice/internal/cache"
	"ms-backoffice/internal/format"
	"ms-backoffice/internal/kafka"
	"ms-backoffice/internal/logger"
	"ms-backoffice/internal/mapper"
	"ms-backoffice/internal/metrics"
	"ms-backoffice/internal/models"
	"ms-backoffice/internal/store"
	"ms-backoffice/internal/tickets/qr"
)

var (
	ErrUnknownEntity = errors.New("unknown export entity")
	ErrQRDisabled    = errors.New("ticket QR codes are not configured")
)

// Snapshots is the dashboard cache. *cache.SnapshotCache implements it.
type Snapshots interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context, prefix string) error
}

type Service struct {
	store     store.Store
	format    *format.Formatter
	mapper    *mapper.Mapper
	engine    *analytics.Engine
	snapshots Snapshots
	publisher kafka.Publisher
	qr        *qr.QRGenerator
	log       *logger.Logger
}

type Option func(*Service)

// WithSnapshots enables the dashboard cache.
func WithSnapshots(s Snapshots) Option {
	return func(svc *Service) { svc.snapshots = s }
}

// WithPublisher sends an audit event for every export.
func WithPublisher(p kafka.Publisher) Option {
	return func(svc *Service) {
		if p != nil {
			svc.publisher = p
		}
	}
}

func WithQRGenerator(g *qr.QRGenerator) Option {
	return func(svc *Service) { svc.qr = g }
}

func NewService(s store.Store, f *format.Formatter, log *logger.Logger, opts ...Option) *Service {
	if f == nil {
		f = format.New()
	}
	svc := &Service{
		store:     s,
		format:    f,
		mapper:    mapper.New(f),
		engine:    analytics.NewEngine(f),
		publisher: kafka.NoopPublisher{},
		log:       log,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) Formatter() *format.Formatter { return s.format }

// timed logs how long a store call took and how many rows it returned.
func timed[T any](s *Service, table string, fn func() ([]T, error)) ([]T, error) {
	start := time.Now()
	rows, err := fn()
	if err == nil && s.log != nil {
		s.log.LogQuery("SELECT", table, len(rows), time.Since(start))
	}
	return rows, err
}

func (s *Service) Events(ctx context.Context) ([]mapper.Event, error) {
	rows, err := timed(s, "events", func() ([]models.EventRow, error) { return s.store.ListEvents(ctx) })
	if err != nil {
		return nil, err
	}
	return s.mapper.Events(rows), nil
}

func (s *Service) Event(ctx context.Context, id string) (*mapper.Event, error) {
	row, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	ev := s.mapper.Event(*row)
	return &ev, nil
}

func (s *Service) Orders(ctx context.Context, eventID string) ([]mapper.Order, error) {
	rows, err := timed(s, "reservations", func() ([]models.ReservationRow, error) { return s.store.ListReservations(ctx, eventID) })
	if err != nil {
		return nil, err
	}
	return s.mapper.Orders(rows), nil
}

func (s *Service) Transactions(ctx context.Context, eventID string) ([]mapper.Transaction, error) {
	rows, err := timed(s, "payments", func() ([]models.PaymentRow, error) { return s.store.ListPayments(ctx, eventID) })
	if err != nil {
		return nil, err
	}
	return s.mapper.Transactions(rows), nil
}

func (s *Service) Attendees(ctx context.Context, eventID string) ([]mapper.Attendee, error) {
	rows, err := timed(s, "tickets", func() ([]models.TicketRow, error) { return s.store.ListTickets(ctx, eventID) })
	if err != nil {
		return nil, err
	}
	return s.mapper.Attendees(rows), nil
}

func (s *Service) Reviews(ctx context.Context, eventID string) ([]mapper.Review, error) {
	rows, err := timed(s, "reviews", func() ([]models.ReviewRow, error) { return s.store.ListReviews(ctx, eventID) })
	if err != nil {
		return nil, err
	}
	return s.mapper.Reviews(rows), nil
}

func (s *Service) Songs(ctx context.Context, eventID string) ([]mapper.Song, error) {
	rows, err := timed(s, "song_suggestions", func() ([]models.SongSuggestionRow, error) { return s.store.ListSongs(ctx, eventID) })
	if err != nil {
		return nil, err
	}
	return s.mapper.Songs(rows), nil
}

func (s *Service) Venues(ctx context.Context) ([]mapper.Venue, error) {
	rows, err := timed(s, "venues", func() ([]models.VenueRow, error) { return s.store.ListVenues(ctx) })
	if err != nil {
		return nil, err
	}
	return s.mapper.Venues(rows), nil
}

// TicketQR renders a fresh encrypted QR code for one ticket.
func (s *Service) TicketQR(ctx context.Context, ticketID string) ([]byte, error) {
	if s.qr == nil {
		return nil, ErrQRDisabled
	}
	row, err := s.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	payload := qr.PayloadFor(s.mapper.Attendee(*row), s.format.Now())
	png, err := s.qr.GenerateEncryptedQR(payload)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, err)
	}
	return png, nil
}

// Invalidate drops every cached dashboard.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	return s.snapshots.Invalidate(ctx, cache.Key("dashboard"))
}

// cached returns the snapshot at key when present, otherwise builds it and
// stores it. Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, s *Service, kind, key string, build func(context.Context) (*T, error)) (*T, error) {
	if s.snapshots != nil {
		var snap T
		err := s.snapshots.Get(ctx, key, &snap)
		switch {
		case err == nil:
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			return &snap, nil
		case errors.Is(err, cache.ErrMiss):
			metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		default:
			metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
			if s.log != nil {
				s.log.Warn("CACHE", fmt.Sprintf("Snapshot read failed for %s: %v", key, err))
			}
		}
	}

	start := time.Now()
	v, err := build(ctx)
	if err != nil {
		return nil, err
	}
	metrics.DashboardBuildSeconds.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if s.snapshots != nil {
		if err := s.snapshots.Set(ctx, key, v); err != nil && s.log != nil {
			s.log.Warn("CACHE", fmt.Sprintf("Snapshot write failed for %s: %v", key, err))
		} else if s.log != nil {
			s.log.LogCache("SET", key, kind+" snapshot stored")
		}
	}
	return v, nil
}

// fetch runs the loaders concurrently and returns the first error.
func fetch(ctx context.Context, loaders ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, load := range loaders {
		load := load
		g.Go(func() error { return load(gctx) })
	}
	return g.Wait()
}
