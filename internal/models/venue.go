package models

import (
	"github.com/uptrace/bun"
)

type VenueRow struct {
	bun.BaseModel `bun:"table:venues,alias:v"`

	ID          string   `bun:"id,pk" json:"id"`
	Name        *string  `bun:"name" json:"name"`
	Address     *string  `bun:"address" json:"address"`
	City        *string  `bun:"city" json:"city"`
	Region      *string  `bun:"region" json:"region"`
	CountryCode *string  `bun:"country_code" json:"country_code"`
	Lat         *float64 `bun:"lat" json:"lat"`
	Lng         *float64 `bun:"lng" json:"lng"`
	Capacity    *int     `bun:"capacity" json:"capacity"`
}
