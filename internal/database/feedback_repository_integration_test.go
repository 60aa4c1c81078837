//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
)

func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("feedback_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	databaseURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := Connect(ctx, databaseURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, RunMigrations(ctx, pool))
	return pool
}

func insertTestFeedback(t *testing.T, repo *FeedbackRepo, name, text string, label domain.SentimentLabel) *domain.FeedbackRecord {
	t.Helper()
	record, err := repo.Insert(context.Background(), domain.NewFeedback{
		FeedbackDraft: domain.FeedbackDraft{
			CustomerName:  name,
			CustomerEmail: name + "@example.com",
			RawText:       text,
			SourceChannel: "Email",
			Category:      "Technical",
		},
		SentimentScore:   0.5,
		SentimentLabel:   label,
		ResolutionStatus: domain.StatusNew,
	})
	require.NoError(t, err)
	return record
}

func TestFeedbackRepo_InsertAssignsIDAndTimestamp(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewFeedbackRepo(pool, nil)

	record := insertTestFeedback(t, repo, "ada", "works fine", domain.SentimentNeutral)
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.WithinDuration(t, time.Now(), record.CreatedAt, time.Minute)
	assert.Equal(t, domain.StatusNew, record.ResolutionStatus)
}

func TestFeedbackRepo_QueryAllOrdersDescending(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewFeedbackRepo(pool, nil)
	ctx := context.Background()

	first := insertTestFeedback(t, repo, "ada", "first", domain.SentimentNeutral)
	second := insertTestFeedback(t, repo, "grace", "second", domain.SentimentPositive)

	records, err := repo.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestFeedbackRepo_UpdateStatus(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewFeedbackRepo(pool, nil)
	ctx := context.Background()

	record := insertTestFeedback(t, repo, "ada", "please fix", domain.SentimentNegative)
	require.NoError(t, repo.UpdateStatus(ctx, record.ID, domain.StatusResolved))

	records, err := repo.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.StatusResolved, records[0].ResolutionStatus)
}

func TestFeedbackRepo_UpdateStatusUnknownID(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewFeedbackRepo(pool, nil)

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.StatusResolved)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
