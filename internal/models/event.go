package models

import (
	"github.com/uptrace/bun"
)

// EventRow is an events row joined with its venue, organizer and tag links.
// Every relation may be absent.
type EventRow struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID            string  `bun:"id,pk" json:"id"`
	Title         *string `bun:"title" json:"title"`
	Description   *string `bun:"description" json:"description"`
	StartsAt      *string `bun:"starts_at" json:"starts_at"`
	EndsAt        *string `bun:"ends_at" json:"ends_at"`
	Status        *string `bun:"status" json:"status"`
	Currency      *string `bun:"currency" json:"currency"`
	MinPriceCents *int64  `bun:"min_price_cents" json:"min_price_cents"`
	IsFree        *bool   `bun:"is_free" json:"is_free"`
	AttendeeCount *int    `bun:"attendee_count" json:"attendee_count"`
	Capacity      *int    `bun:"capacity" json:"capacity"`
	CoverImageURL *string `bun:"cover_image_url" json:"cover_image_url"`
	VenueID       *string `bun:"venue_id" json:"venue_id"`
	OrganizerID   *string `bun:"organizer_id" json:"organizer_id"`
	CreatedAt     *string `bun:"created_at" json:"created_at"`

	Venue     *VenueRow     `bun:"rel:belongs-to,join:venue_id=id" json:"venues"`
	Organizer *OrganizerRow `bun:"rel:belongs-to,join:organizer_id=id" json:"organizers"`
	Tags      []EventTagRow `bun:"rel:has-many,join:id=event_id" json:"event_tags"`
}

type OrganizerRow struct {
	bun.BaseModel `bun:"table:organizers,alias:o"`

	ID    string  `bun:"id,pk" json:"id"`
	Name  *string `bun:"name" json:"name"`
	Email *string `bun:"email" json:"email"`
}

// EventTagRow is the join-table entry between an event and a tag. Tag is nil
// when tag_id points at a deleted tag.
type EventTagRow struct {
	bun.BaseModel `bun:"table:event_tags,alias:et"`

	ID      int64   `bun:"id,pk,autoincrement" json:"id"`
	EventID string  `bun:"event_id" json:"event_id"`
	TagID   *string `bun:"tag_id" json:"tag_id"`

	Tag *TagRow `bun:"rel:belongs-to,join:tag_id=id" json:"tags"`
}

type TagRow struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID    string  `bun:"id,pk" json:"id"`
	Label *string `bun:"label" json:"label"`
}
