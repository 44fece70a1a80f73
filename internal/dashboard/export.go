package dashboard

import (
	"context"
	"fmt"

	"ms-backoffice/internal/auth"
	"ms-backoffice/internal/export"
	"ms-backoffice/internal/kafka"
	"ms-backoffice/internal/metrics"
)

const generatedLayout = "2006-01-02T15:04:05Z07:00"

// Export is a finished CSV document.
type Export struct {
	Entity   string
	Filename string
	Content  string
	Rows     int
}

// Export renders one entity as CSV. eventID narrows the rows to one event for
// entities that belong to an event and is ignored for events and venues.
func (s *Service) Export(ctx context.Context, entity, eventID string) (*Export, error) {
	columns, ok := export.ColumnsFor(entity)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}

	views, err := s.exportRows(ctx, entity, eventID)
	if err != nil {
		return nil, err
	}
	records, err := export.Records(views)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", entity, err)
	}

	prefix := entity
	if eventID != "" && entity != "events" && entity != "venues" {
		prefix = entity + "-" + eventID
	}
	out := &Export{
		Entity:   entity,
		Filename: export.Filename(prefix, s.format.Now()),
		Content:  export.GenerateCSV(records, columns),
		Rows:     len(records),
	}

	metrics.ExportsTotal.WithLabelValues(entity).Inc()
	metrics.ExportRowsTotal.WithLabelValues(entity).Add(float64(out.Rows))
	if s.log != nil {
		s.log.LogExport(entity, out.Filename, out.Rows)
	}

	ev := kafka.NewExportEvent(entity, eventID, out.Filename, out.Rows, auth.OperatorID(ctx), s.format.Now())
	if err := s.publisher.PublishExport(ctx, ev); err != nil && s.log != nil {
		s.log.Error("KAFKA", fmt.Sprintf("Failed to publish export event %s: %v", ev.ID, err))
	}
	return out, nil
}

func (s *Service) exportRows(ctx context.Context, entity, eventID string) (any, error) {
	switch entity {
	case "orders":
		return s.Orders(ctx, eventID)
	case "transactions":
		return s.Transactions(ctx, eventID)
	case "attendees":
		return s.Attendees(ctx, eventID)
	case "reviews":
		return s.Reviews(ctx, eventID)
	case "songs":
		return s.Songs(ctx, eventID)
	case "events":
		return s.Events(ctx)
	case "venues":
		return s.Venues(ctx)
	case "tax":
		txs, err := s.Transactions(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return s.engine.MonthlyTax(txs), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
}
