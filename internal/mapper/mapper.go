// Package mapper turns joined database rows into display-ready view models.
// Mappers never fail: missing relations and null columns fall back to fixed
// defaults, and input rows are never modified.
package mapper

import (
	"strings"

	"github.com/samber/lo"

	"ms-backoffice/internal/format"
)

const (
	defaultCurrency  = "USD"
	unknownEvent     = "Unknown Event"
	unknownOrganizer = "Unknown"
	guestName        = "Guest"
	anonymousName    = "Anonymous"
	noOffer          = "—"
	noLocation       = "TBA"
)

// Mapper maps rows using one Formatter for every display string.
type Mapper struct {
	f *format.Formatter
}

func New(f *format.Formatter) *Mapper {
	if f == nil {
		f = format.New()
	}
	return &Mapper{f: f}
}

func (m *Mapper) Formatter() *format.Formatter { return m.f }

// text dereferences a nullable column and trims it.
func text(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// textOr is text with a fallback for null or blank values.
func textOr(p *string, fallback string) string {
	if s := text(p); s != "" {
		return s
	}
	return fallback
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func centsOr(p *int64, fallback int64) int64 {
	if p == nil {
		return fallback
	}
	return *p
}

// fullName joins the non-blank name parts with a single space.
func fullName(first, last *string) string {
	return strings.Join(lo.Compact([]string{text(first), text(last)}), " ")
}

// currencyCode trims the stored code, falling back to USD.
func currencyCode(codes ...*string) string {
	for _, c := range codes {
		if s := text(c); s != "" {
			return strings.ToUpper(s)
		}
	}
	return defaultCurrency
}
