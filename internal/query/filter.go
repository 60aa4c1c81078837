package query

import (
	"strings"

	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
)

// FilterSpec selects a subset of the snapshot. Zero values (empty
// strings) pass every record for that dimension.
type FilterSpec struct {
	SearchText string
	Status     string
	Sentiment  string
	Category   string
}

// Filter returns the records matching all provided dimensions, in
// snapshot order. Search text matches case-insensitively against
// customer name, email, raw text or category.
func Filter(records []domain.FeedbackRecord, spec FilterSpec) []domain.FeedbackRecord {
	search := strings.ToLower(spec.SearchText)

	filtered := make([]domain.FeedbackRecord, 0, len(records))
	for _, r := range records {
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		if spec.Status != "" && string(r.ResolutionStatus) != spec.Status {
			continue
		}
		if spec.Sentiment != "" && string(r.SentimentLabel) != spec.Sentiment {
			continue
		}
		if spec.Category != "" && r.Category != spec.Category {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func matchesSearch(r domain.FeedbackRecord, lowerSearch string) bool {
	return strings.Contains(strings.ToLower(r.CustomerName), lowerSearch) ||
		strings.Contains(strings.ToLower(r.CustomerEmail), lowerSearch) ||
		strings.Contains(strings.ToLower(r.RawText), lowerSearch) ||
		strings.Contains(strings.ToLower(r.Category), lowerSearch)
}
