package sentiment

import (
	"math"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
)

const (
	summaryMaxTokens = 10
	summaryMaxChars  = 50
)

// Band keyword sets, checked in priority order. Positive is checked
// before Critical, so text containing keywords from both bands
// classifies as Positive.
var (
	positiveKeywords = []string{"love", "great", "excellent", "amazing"}
	criticalKeywords = []string{"terrible", "worst", "broken", "urgent"}
	negativeKeywords = []string{"bad", "issue", "problem", "frustrated"}
)

// Result is the classifier's verdict for one piece of raw text.
type Result struct {
	Score    float64
	Label    domain.SentimentLabel
	IsUrgent bool
	Summary  string
}

// Classifier assigns sentiment verdicts to raw feedback text.
// The rand source controls where within a band the score lands;
// inject a fixed one for deterministic tests.
type Classifier struct {
	rnd func() float64
}

// NewClassifier creates a classifier using the default randomness source.
func NewClassifier() *Classifier {
	return &Classifier{rnd: rand.Float64}
}

// NewClassifierWithRand creates a classifier with an injected randomness
// source. rnd must return values in [0.0, 1.0).
func NewClassifierWithRand(rnd func() float64) *Classifier {
	return &Classifier{rnd: rnd}
}

// Classify assigns a score band, urgency flag and short summary to text.
// It never fails: empty or unmatched text yields the Neutral default.
func (c *Classifier) Classify(text string) Result {
	lower := strings.ToLower(text)

	score := 0.5
	label := domain.SentimentNeutral
	isUrgent := false

	switch {
	case containsAny(lower, positiveKeywords):
		score = 0.8 + c.rnd()*0.2
		label = domain.SentimentPositive
	case containsAny(lower, criticalKeywords):
		score = c.rnd() * 0.2
		label = domain.SentimentCritical
		isUrgent = true
	case containsAny(lower, negativeKeywords):
		score = 0.2 + c.rnd()*0.15
		label = domain.SentimentNegative
	}

	return Result{
		Score:    roundScore(score),
		Label:    label,
		IsUrgent: isUrgent,
		Summary:  Summarize(text),
	}
}

// Summarize keeps the first 10 whitespace-separated tokens, rejoined
// with single spaces, truncated to 50 characters plus an ellipsis when
// longer. Empty input yields an empty summary.
func Summarize(text string) string {
	tokens := strings.Fields(text)
	if len(tokens) > summaryMaxTokens {
		tokens = tokens[:summaryMaxTokens]
	}
	summary := strings.Join(tokens, " ")
	if utf8.RuneCountInString(summary) > summaryMaxChars {
		summary = string([]rune(summary)[:summaryMaxChars]) + "..."
	}
	return summary
}

func containsAny(lowerText string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
