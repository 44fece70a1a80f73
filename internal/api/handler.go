package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ms-backoffice/internal/dashboard"
	"ms-backoffice/internal/export"
	"ms-backoffice/internal/logger"
	"ms-backoffice/internal/mapper"
	"ms-backoffice/internal/store"
)

// Service is the read side the handlers serve. *dashboard.Service implements it.
type Service interface {
	Events(ctx context.Context) ([]mapper.Event, error)
	Event(ctx context.Context, id string) (*mapper.Event, error)
	EventDashboard(ctx context.Context, eventID string) (*dashboard.EventDashboard, error)
	FinanceDashboard(ctx context.Context) (*dashboard.FinanceDashboard, error)
	Orders(ctx context.Context, eventID string) ([]mapper.Order, error)
	Transactions(ctx context.Context, eventID string) ([]mapper.Transaction, error)
	Attendees(ctx context.Context, eventID string) ([]mapper.Attendee, error)
	Reviews(ctx context.Context, eventID string) ([]mapper.Review, error)
	Songs(ctx context.Context, eventID string) ([]mapper.Song, error)
	Venues(ctx context.Context) ([]mapper.Venue, error)
	TicketQR(ctx context.Context, ticketID string) ([]byte, error)
	Export(ctx context.Context, entity, eventID string) (*dashboard.Export, error)
	Invalidate(ctx context.Context) error
}

type Handler struct {
	Service Service
	Logger  *logger.Logger
}

func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{
		Service: service,
		Logger:  log,
	}
}

// RegisterRoutes mounts the back-office API on r. Callers wrap r with the
// auth middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Route("/{eventId}", func(r chi.Router) {
			r.Get("/", h.GetEvent)
			r.Get("/dashboard", h.GetEventDashboard)
			r.Get("/orders", h.ListOrders)
			r.Get("/attendees", h.ListAttendees)
			r.Get("/reviews", h.ListReviews)
			r.Get("/songs", h.ListSongs)
		})
	})

	r.Route("/finance", func(r chi.Router) {
		r.Get("/", h.GetFinanceDashboard)
		r.Get("/transactions", h.ListTransactions)
	})

	r.Get("/venues", h.ListVenues)
	r.Get("/attendees/{ticketId}/qr", h.GetTicketQR)
	r.Get("/export/{entity}.csv", h.ExportCSV)
	r.Delete("/cache", h.InvalidateCache)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.Events(r.Context())
	if err != nil {
		h.sendError(w, "list events", err)
		return
	}
	sendJSONResponse(w, http.StatusOK, events)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	event, err := h.Service.Event(r.Context(), eventID)
	if err != nil {
		h.sendError(w, "get event "+eventID, err)
		return
	}
	sendJSONResponse(w, http.StatusOK, event)
}

func (h *Handler) GetEventDashboard(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	d, err := h.Service.EventDashboard(r.Context(), eventID)
	if err != nil {
		h.sendError(w, "event dashboard "+eventID, err)
		return
	}
	sendJSONResponse(w, http.StatusOK, d)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, "list orders", h.Service.Orders)
}

func (h *Handler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, "list attendees", h.Service.Attendees)
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, "list reviews", h.Service.Reviews)
}

func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, "list songs", h.Service.Songs)
}

func (h *Handler) GetFinanceDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.FinanceDashboard(r.Context())
	if err != nil {
		h.sendError(w, "finance dashboard", err)
		return
	}
	sendJSONResponse(w, http.StatusOK, d)
}

// ListTransactions accepts an optional ?eventId= filter.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Service.Transactions(r.Context(), r.URL.Query().Get("eventId"))
	if err != nil {
		h.sendError(w, "list transactions", err)
		return
	}
	sendJSONResponse(w, http.StatusOK, txs)
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.Service.Venues(r.Context())
	if err != nil {
		h.sendError(w, "list venues", err)
		return
	}
	sendJSONResponse(w, http.StatusOK, venues)
}

func (h *Handler) GetTicketQR(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")
	png, err := h.Service.TicketQR(r.Context(), ticketID)
	if err != nil {
		h.sendError(w, "ticket qr "+ticketID, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// ExportCSV serves /export/{entity}.csv with an optional ?eventId= filter.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	doc, err := h.Service.Export(r.Context(), entity, r.URL.Query().Get("eventId"))
	if err != nil {
		h.sendError(w, "export "+entity, err)
		return
	}

	var d export.Downloader = export.HTTPDownloader{W: w}
	if err := d.Download(doc.Filename, doc.Content); err != nil && h.Logger != nil {
		h.Logger.Error("EXPORT", fmt.Sprintf("Failed to send %s: %v", doc.Filename, err))
	}
}

func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Invalidate(r.Context()); err != nil {
		h.sendError(w, "invalidate cache", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// list serves an event-scoped collection.
func list[T any](h *Handler, w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, string) ([]T, error)) {
	eventID := chi.URLParam(r, "eventId")
	rows, err := fn(r.Context(), eventID)
	if err != nil {
		h.sendError(w, op+" "+eventID, err)
		return
	}
	sendJSONResponse(w, http.StatusOK, rows)
}

func (h *Handler) sendError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		sendJSONResponse(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, dashboard.ErrUnknownEntity):
		sendJSONResponse(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, dashboard.ErrQRDisabled):
		sendJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
	default:
		if h.Logger != nil {
			h.Logger.Error("API", fmt.Sprintf("Failed to %s: %v", op, err))
		}
		sendJSONResponse(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func sendJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, _ *http.Request) {
	sendJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RequestLogger logs method, path, status and latency of every request.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.LogAPI(r.Method, r.URL.Path, strconv.Itoa(status), time.Since(start).String())
		})
	}
}
