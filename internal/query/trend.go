package query

import (
	"sort"
	"time"

	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
)

// TrendPoint is one step of the chronological sentiment trend.
// RunningAverage is the mean score over all records up to and
// including this one.
type TrendPoint struct {
	Timestamp      time.Time `json:"timestamp"`
	Score          float64   `json:"score"`
	RunningAverage float64   `json:"running_average"`
}

// Trend re-sorts the snapshot ascending by creation time and computes
// the running average with a single-pass accumulator. The snapshot's
// own ordering (descending by convention) is not relied upon.
func Trend(records []domain.FeedbackRecord) []TrendPoint {
	sorted := append([]domain.FeedbackRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	points := make([]TrendPoint, 0, len(sorted))
	var sum float64
	for i, r := range sorted {
		sum += r.SentimentScore
		points = append(points, TrendPoint{
			Timestamp:      r.CreatedAt,
			Score:          r.SentimentScore,
			RunningAverage: sum / float64(i+1),
		})
	}
	return points
}
