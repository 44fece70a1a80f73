package analytics

import (
	"math"

	"ms-backoffice/internal/mapper"
)

const (
	minRating = 1
	maxRating = 5
)

// ReviewStats summarizes ratings. Distribution always has keys 1 through 5.
type ReviewStats struct {
	Count        int         `json:"count"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}

// ReviewStats clamps every rating into [1,5] before bucketing and averaging.
// The average is rounded to one decimal.
func (e *Engine) ReviewStats(reviews []mapper.Review) ReviewStats {
	stats := ReviewStats{Distribution: make(map[int]int, maxRating)}
	for r := minRating; r <= maxRating; r++ {
		stats.Distribution[r] = 0
	}
	if len(reviews) == 0 {
		return stats
	}

	sum := 0
	for _, rv := range reviews {
		r := clampRating(rv.Rating)
		stats.Distribution[r]++
		sum += r
	}
	stats.Count = len(reviews)
	stats.Average = math.Round(float64(sum)/float64(stats.Count)*10) / 10
	return stats
}

func clampRating(rating int) int {
	return max(minRating, min(maxRating, rating))
}
