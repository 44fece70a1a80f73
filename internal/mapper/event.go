package mapper

import (
	"strings"

	"github.com/samber/lo"

	"ms-backoffice/internal/models"
	"ms-backoffice/internal/status"
)

type Event struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	StartsAt      string             `json:"startsAt"`
	EndsAt        string             `json:"endsAt"`
	Date          string             `json:"date"`
	Time          string             `json:"time"`
	Status        status.EventStatus `json:"status"`
	StatusLabel   string             `json:"statusLabel"`
	StatusVariant status.Variant     `json:"statusVariant"`
	Currency      string             `json:"currency"`
	MinPriceCents *int64             `json:"minPriceCents"`
	IsFree        bool               `json:"isFree"`
	Price         string             `json:"price"`
	AttendeeCount int                `json:"attendeeCount"`
	Capacity      int                `json:"capacity"`
	Location      string             `json:"location"`
	VenueName     string             `json:"venueName"`
	City          string             `json:"city"`
	OrganizerName string             `json:"organizerName"`
	Tags          []string           `json:"tags"`
	CoverImageURL string             `json:"coverImageUrl"`
}

func (m *Mapper) Event(row models.EventRow) Event {
	st := status.NormalizeEvent(text(row.Status))
	currency := currencyCode(row.Currency)

	isFree := false
	if row.IsFree != nil {
		isFree = *row.IsFree
	}

	var venueName, city string
	if row.Venue != nil {
		venueName = text(row.Venue.Name)
		city = text(row.Venue.City)
	}

	organizer := unknownOrganizer
	if row.Organizer != nil {
		organizer = textOr(row.Organizer.Name, unknownOrganizer)
	}

	startsAt := text(row.StartsAt)

	return Event{
		ID:            row.ID,
		Title:         textOr(row.Title, "Untitled Event"),
		Description:   text(row.Description),
		StartsAt:      startsAt,
		EndsAt:        text(row.EndsAt),
		Date:          m.f.Date(startsAt),
		Time:          m.f.Time(startsAt),
		Status:        st,
		StatusLabel:   st.Label(),
		StatusVariant: st.Variant(),
		Currency:      currency,
		MinPriceCents: row.MinPriceCents,
		IsFree:        isFree,
		Price:         m.f.Price(row.MinPriceCents, currency, isFree),
		AttendeeCount: max(0, intOr(row.AttendeeCount, 0)),
		Capacity:      max(0, intOr(row.Capacity, 0)),
		Location:      location(venueName, city),
		VenueName:     venueName,
		City:          city,
		OrganizerName: organizer,
		Tags:          tagLabels(row.Tags),
		CoverImageURL: text(row.CoverImageURL),
	}
}

func (m *Mapper) Events(rows []models.EventRow) []Event {
	return lo.Map(rows, func(row models.EventRow, _ int) Event { return m.Event(row) })
}

// location is "<venue>, <city>" with blank parts dropped, or "TBA".
func location(venueName, city string) string {
	loc := strings.Join(lo.Compact([]string{venueName, city}), ", ")
	if loc == "" {
		return noLocation
	}
	return loc
}

// tagLabels drops join entries whose tag is gone or unlabeled.
func tagLabels(tags []models.EventTagRow) []string {
	return lo.FilterMap(tags, func(t models.EventTagRow, _ int) (string, bool) {
		if t.Tag == nil {
			return "", false
		}
		label := text(t.Tag.Label)
		return label, label != ""
	})
}
