package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SentimentLabel is the classifier's verdict band.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
	SentimentCritical SentimentLabel = "Critical"
)

// ResolutionStatus is the only mutable field of a feedback record.
// All six transitions between the three states are permitted.
type ResolutionStatus string

const (
	StatusNew        ResolutionStatus = "New"
	StatusInProgress ResolutionStatus = "In-Progress"
	StatusResolved   ResolutionStatus = "Resolved"
)

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s ResolutionStatus) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// FeedbackRecord is a single classified piece of customer feedback.
// Everything except ResolutionStatus is immutable after creation;
// ID and CreatedAt are assigned by the record store.
type FeedbackRecord struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	CustomerName     string           `json:"customer_name" db:"customer_name"`
	CustomerEmail    string           `json:"customer_email" db:"customer_email"`
	RawText          string           `json:"raw_text" db:"raw_text"`
	SourceChannel    string           `json:"source_channel" db:"source_channel"`
	Category         string           `json:"category" db:"category"`
	SentimentScore   float64          `json:"sentiment_score" db:"sentiment_score"`
	SentimentLabel   SentimentLabel   `json:"sentiment_label" db:"sentiment_label"`
	IsUrgent         bool             `json:"is_urgent" db:"is_urgent"`
	AISummary        string           `json:"ai_summary" db:"ai_summary"`
	ResolutionStatus ResolutionStatus `json:"resolution_status" db:"resolution_status"`
	AssignedAgent    string           `json:"assigned_agent,omitempty" db:"assigned_agent"`
}

// FeedbackDraft is the consumer-supplied part of a new record,
// before classification.
type FeedbackDraft struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	RawText       string `json:"raw_text"`
	SourceChannel string `json:"source_channel"`
	Category      string `json:"category"`
}

// NewFeedback is a draft combined with its classification verdict,
// ready to be written to the record store. The store assigns ID and
// CreatedAt on insert.
type NewFeedback struct {
	FeedbackDraft
	SentimentScore   float64
	SentimentLabel   SentimentLabel
	IsUrgent         bool
	AISummary        string
	ResolutionStatus ResolutionStatus
}

// SnapshotStatus describes the freshness of a cached snapshot.
type SnapshotStatus struct {
	IsLoading bool `json:"is_loading"`
	IsStale   bool `json:"is_stale"`
}

// --- Interfaces ---

// RecordStore is the durable source of truth for feedback records.
type RecordStore interface {
	// QueryAll returns the entire collection, by convention ordered by
	// created_at descending. Callers must not rely on the ordering.
	QueryAll(ctx context.Context) ([]FeedbackRecord, error)
	// Insert writes a classified record and returns it with ID and
	// CreatedAt assigned.
	Insert(ctx context.Context, feedback NewFeedback) (*FeedbackRecord, error)
	// UpdateStatus sets the resolution status of an existing record.
	UpdateStatus(ctx context.Context, id uuid.UUID, status ResolutionStatus) error
}

// ChangeListener receives zero-payload "something changed" signals from
// a change notifier. The signal carries no delta, so listeners must
// re-read the full collection.
type ChangeListener interface {
	OnChangeNotification()
}

// FeedbackService is the surface the synchronization cache exposes to
// consumers (HTTP handlers, reporting).
type FeedbackService interface {
	Snapshot() ([]FeedbackRecord, SnapshotStatus)
	Insert(ctx context.Context, draft FeedbackDraft) (*FeedbackRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status ResolutionStatus) error
}
