package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
)

func TestAggregate_EmptySnapshot(t *testing.T) {
	summary := Aggregate(nil)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.AverageSentiment)
	assert.Equal(t, 0.0, summary.UrgencyRatio)
	assert.Empty(t, summary.TopCategory)
}

func TestAggregate_TopCategoryByCount(t *testing.T) {
	snapshot := []domain.FeedbackRecord{
		{Category: "Billing", SourceChannel: "Email", SentimentLabel: domain.SentimentNeutral},
		{Category: "Billing", SourceChannel: "Email", SentimentLabel: domain.SentimentNeutral},
		{Category: "Technical", SourceChannel: "Twitter", SentimentLabel: domain.SentimentNeutral},
	}
	summary := Aggregate(snapshot)
	assert.Equal(t, "Billing", summary.TopCategory)
	assert.Equal(t, 2, summary.TopCategoryCount)
}

func TestAggregate_TopCategoryTieBreaksFirstEncountered(t *testing.T) {
	snapshot := []domain.FeedbackRecord{
		{Category: "Shipping", SentimentLabel: domain.SentimentNeutral},
		{Category: "Legal", SentimentLabel: domain.SentimentNeutral},
		{Category: "Legal", SentimentLabel: domain.SentimentNeutral},
		{Category: "Shipping", SentimentLabel: domain.SentimentNeutral},
	}
	summary := Aggregate(snapshot)
	assert.Equal(t, "Shipping", summary.TopCategory)
	assert.Equal(t, 2, summary.TopCategoryCount)
}

func TestAggregate_AverageAndRatios(t *testing.T) {
	snapshot := []domain.FeedbackRecord{
		{SentimentScore: 0.9, SentimentLabel: domain.SentimentPositive, Category: "Product", SourceChannel: "Email"},
		{SentimentScore: 0.1, SentimentLabel: domain.SentimentCritical, IsUrgent: true, Category: "Billing", SourceChannel: "Twitter"},
		{SentimentScore: 0.5, SentimentLabel: domain.SentimentNeutral, Category: "Product", SourceChannel: "Email"},
		{SentimentScore: 0.5, SentimentLabel: domain.SentimentNeutral, Category: "Product", SourceChannel: "App Store"},
	}
	summary := Aggregate(snapshot)

	assert.Equal(t, 4, summary.Total)
	assert.InDelta(t, 0.5, summary.AverageSentiment, 1e-9)
	assert.InDelta(t, 25.0, summary.UrgencyRatio, 1e-9)
	assert.InDelta(t, 25.0, summary.PositiveRate, 1e-9)
	assert.InDelta(t, 25.0, summary.CriticalRate, 1e-9)
	assert.Equal(t, "Product", summary.TopCategory)
	assert.Equal(t, 2, summary.SentimentCounts["Neutral"])
	assert.Equal(t, 2, summary.ChannelCounts["Email"])
}
