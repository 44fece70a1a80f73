package models

import (
	"github.com/uptrace/bun"
)

// ReviewRow carries the raw rating; the database does not enforce its range.
type ReviewRow struct {
	bun.BaseModel `bun:"table:reviews,alias:rv"`

	ID        string  `bun:"id,pk" json:"id"`
	EventID   string  `bun:"event_id" json:"event_id"`
	UserID    *string `bun:"user_id" json:"user_id"`
	Rating    *int    `bun:"rating" json:"rating"`
	Comment   *string `bun:"comment" json:"comment"`
	CreatedAt *string `bun:"created_at" json:"created_at"`

	Profile *ProfileRow `bun:"rel:belongs-to,join:user_id=id" json:"profiles"`
	Event   *EventRow   `bun:"rel:belongs-to,join:event_id=id" json:"events"`
}

type ProfileRow struct {
	bun.BaseModel `bun:"table:profiles,alias:pr"`

	ID        string  `bun:"id,pk" json:"id"`
	FullName  *string `bun:"full_name" json:"full_name"`
	AvatarURL *string `bun:"avatar_url" json:"avatar_url"`
}

type SongSuggestionRow struct {
	bun.BaseModel `bun:"table:song_suggestions,alias:ss"`

	ID          string  `bun:"id,pk" json:"id"`
	EventID     string  `bun:"event_id" json:"event_id"`
	Title       *string `bun:"title" json:"title"`
	Artist      *string `bun:"artist" json:"artist"`
	Album       *string `bun:"album" json:"album"`
	SuggestedBy *string `bun:"suggested_by" json:"suggested_by"`
	CreatedAt   *string `bun:"created_at" json:"created_at"`
}
