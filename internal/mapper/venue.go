package mapper

import (
	"strings"

	"github.com/samber/lo"

	"ms-backoffice/internal/models"
)

// Venue coordinates are set together or not at all.
type Venue struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	CountryCode string   `json:"countryCode"`
	Locality    string   `json:"locality"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Capacity    int      `json:"capacity"`
}

func (m *Mapper) Venue(row models.VenueRow) Venue {
	city, region := text(row.City), text(row.Region)
	country := strings.ToUpper(text(row.CountryCode))

	v := Venue{
		ID:          row.ID,
		Name:        textOr(row.Name, "Unnamed Venue"),
		Address:     text(row.Address),
		City:        city,
		Region:      region,
		CountryCode: country,
		Locality:    strings.Join(lo.Compact([]string{city, region, country}), ", "),
		Capacity:    max(0, intOr(row.Capacity, 0)),
	}
	if row.Lat != nil && row.Lng != nil {
		lat, lng := *row.Lat, *row.Lng
		v.Lat, v.Lng = &lat, &lng
	}
	return v
}

func (m *Mapper) Venues(rows []models.VenueRow) []Venue {
	return lo.Map(rows, func(row models.VenueRow, _ int) Venue { return m.Venue(row) })
}
