package query

import (
	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
)

// Summary holds the derived aggregates over a snapshot. Percentages
// are in [0, 100]. TopCategory is empty when the snapshot is empty.
type Summary struct {
	Total            int            `json:"total"`
	AverageSentiment float64        `json:"average_sentiment"`
	UrgencyRatio     float64        `json:"urgency_ratio"`
	TopCategory      string         `json:"top_category,omitempty"`
	TopCategoryCount int            `json:"top_category_count,omitempty"`
	PositiveRate     float64        `json:"positive_rate"`
	CriticalRate     float64        `json:"critical_rate"`
	SentimentCounts  map[string]int `json:"sentiment_counts"`
	ChannelCounts    map[string]int `json:"channel_counts"`
}

// Aggregate computes summary metrics over the full snapshot. An empty
// snapshot yields all-zero metrics, never a division by zero.
func Aggregate(records []domain.FeedbackRecord) Summary {
	summary := Summary{
		Total:           len(records),
		SentimentCounts: make(map[string]int),
		ChannelCounts:   make(map[string]int),
	}
	if summary.Total == 0 {
		return summary
	}

	var scoreSum float64
	var urgent, positive, critical int
	categoryCounts := make(map[string]int)
	// Map iteration order is randomized, so ties on the top category
	// are broken by first-encountered order tracked explicitly.
	categoryOrder := make([]string, 0, 8)

	for _, r := range records {
		scoreSum += r.SentimentScore
		if r.IsUrgent {
			urgent++
		}
		switch r.SentimentLabel {
		case domain.SentimentPositive:
			positive++
		case domain.SentimentCritical:
			critical++
		}
		if _, seen := categoryCounts[r.Category]; !seen {
			categoryOrder = append(categoryOrder, r.Category)
		}
		categoryCounts[r.Category]++
		summary.SentimentCounts[string(r.SentimentLabel)]++
		summary.ChannelCounts[r.SourceChannel]++
	}

	total := float64(summary.Total)
	summary.AverageSentiment = scoreSum / total
	summary.UrgencyRatio = float64(urgent) / total * 100
	summary.PositiveRate = float64(positive) / total * 100
	summary.CriticalRate = float64(critical) / total * 100

	for _, category := range categoryOrder {
		if categoryCounts[category] > summary.TopCategoryCount {
			summary.TopCategory = category
			summary.TopCategoryCount = categoryCounts[category]
		}
	}

	return summary
}
