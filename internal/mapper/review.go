package mapper

import (
	"github.com/samber/lo"

	"ms-backoffice/internal/models"
)

// Review keeps the raw rating; clamping happens during aggregation.
type Review struct {
	ID         string `json:"id"`
	EventID    string `json:"eventId"`
	EventTitle string `json:"eventTitle"`
	UserName   string `json:"userName"`
	AvatarURL  string `json:"avatarUrl"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"createdAt"`
	Date       string `json:"date"`
	Helpful    int    `json:"helpful"`
}

func (m *Mapper) Review(row models.ReviewRow) Review {
	userName, avatar := anonymousName, ""
	if row.Profile != nil {
		userName = textOr(row.Profile.FullName, anonymousName)
		avatar = text(row.Profile.AvatarURL)
	}

	eventTitle := unknownEvent
	if row.Event != nil {
		eventTitle = textOr(row.Event.Title, unknownEvent)
	}

	createdAt := text(row.CreatedAt)
	return Review{
		ID:         row.ID,
		EventID:    row.EventID,
		EventTitle: eventTitle,
		UserName:   userName,
		AvatarURL:  avatar,
		Rating:     intOr(row.Rating, 0),
		Comment:    text(row.Comment),
		CreatedAt:  createdAt,
		Date:       m.f.Date(createdAt),
	}
}

func (m *Mapper) Reviews(rows []models.ReviewRow) []Review {
	return lo.Map(rows, func(row models.ReviewRow, _ int) Review { return m.Review(row) })
}

type Song struct {
	ID          string `json:"id"`
	EventID     string `json:"eventId"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	SuggestedBy string `json:"suggestedBy"`
	CreatedAt   string `json:"createdAt"`
}

func (m *Mapper) Song(row models.SongSuggestionRow) Song {
	return Song{
		ID:          row.ID,
		EventID:     row.EventID,
		Title:       textOr(row.Title, "Untitled"),
		Artist:      textOr(row.Artist, "Unknown Artist"),
		Album:       text(row.Album),
		SuggestedBy: text(row.SuggestedBy),
		CreatedAt:   text(row.CreatedAt),
	}
}

func (m *Mapper) Songs(rows []models.SongSuggestionRow) []Song {
	return lo.Map(rows, func(row models.SongSuggestionRow, _ int) Song { return m.Song(row) })
}
