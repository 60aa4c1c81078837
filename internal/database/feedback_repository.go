package database

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
)

// ChangePublisher broadcasts a zero-payload "table changed" signal to
// other interested parties after a committed write.
type ChangePublisher interface {
	PublishChanged(ctx context.Context) error
}

// FeedbackRepo implements domain.RecordStore on top of PostgreSQL.
type FeedbackRepo struct {
	pool      *pgxpool.Pool
	publisher ChangePublisher
}

var _ domain.RecordStore = (*FeedbackRepo)(nil)

// NewFeedbackRepo creates the repository. publisher may be nil, in
// which case writes are not announced beyond the local process.
func NewFeedbackRepo(pool *pgxpool.Pool, publisher ChangePublisher) *FeedbackRepo {
	return &FeedbackRepo{pool: pool, publisher: publisher}
}

const selectColumns = `id, created_at, customer_name, customer_email, raw_text,
	source_channel, category, sentiment_score, sentiment_label, is_urgent,
	ai_summary, resolution_status, assigned_agent`

// QueryAll returns the full collection ordered by created_at descending.
func (r *FeedbackRepo) QueryAll(ctx context.Context) ([]domain.FeedbackRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM feedback_logs ORDER BY created_at DESC`)
	if err != nil {
		return nil, &domain.StoreReadError{Err: err}
	}
	defer rows.Close()

	records := make([]domain.FeedbackRecord, 0, 64)
	for rows.Next() {
		var rec domain.FeedbackRecord
		if err := rows.Scan(
			&rec.ID, &rec.CreatedAt, &rec.CustomerName, &rec.CustomerEmail,
			&rec.RawText, &rec.SourceChannel, &rec.Category, &rec.SentimentScore,
			&rec.SentimentLabel, &rec.IsUrgent, &rec.AISummary,
			&rec.ResolutionStatus, &rec.AssignedAgent,
		); err != nil {
			return nil, &domain.StoreReadError{Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreReadError{Err: err}
	}
	return records, nil
}

// Insert writes a classified record and returns it with the
// store-assigned id and timestamp.
func (r *FeedbackRepo) Insert(ctx context.Context, nf domain.NewFeedback) (*domain.FeedbackRecord, error) {
	record := domain.FeedbackRecord{
		CustomerName:     nf.CustomerName,
		CustomerEmail:    nf.CustomerEmail,
		RawText:          nf.RawText,
		SourceChannel:    nf.SourceChannel,
		Category:         nf.Category,
		SentimentScore:   nf.SentimentScore,
		SentimentLabel:   nf.SentimentLabel,
		IsUrgent:         nf.IsUrgent,
		AISummary:        nf.AISummary,
		ResolutionStatus: nf.ResolutionStatus,
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO feedback_logs (
			customer_name, customer_email, raw_text, source_channel, category,
			sentiment_score, sentiment_label, is_urgent, ai_summary, resolution_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`,
		nf.CustomerName, nf.CustomerEmail, nf.RawText, nf.SourceChannel, nf.Category,
		nf.SentimentScore, nf.SentimentLabel, nf.IsUrgent, nf.AISummary, nf.ResolutionStatus,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	r.announceChange(ctx)
	return &record, nil
}

// UpdateStatus sets the resolution status of an existing record.
func (r *FeedbackRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ResolutionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE feedback_logs SET resolution_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	r.announceChange(ctx)
	return nil
}

// announceChange publishes the zero-payload change signal. A publish
// failure is logged but never fails the write: the local cache already
// refetches after local writes, and remote instances reconcile on the
// next signal or reconcile tick.
func (r *FeedbackRepo) announceChange(ctx context.Context) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishChanged(ctx); err != nil {
		slog.Warn("Failed to publish change notification", "error", err)
	}
}
