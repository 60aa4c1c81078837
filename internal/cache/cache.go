package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
	"github.com/Tanishqstar/sentiment-command-center/internal/metrics"
	"github.com/Tanishqstar/sentiment-command-center/internal/sentiment"
)

// snapshot is an immutable view of the collection. Replaced wholesale,
// never mutated in place, so readers can hold it without locking.
type snapshot struct {
	records []domain.FeedbackRecord
	loaded  bool
	stale   bool
}

// Cache holds the most recently fetched snapshot of all feedback
// records and keeps it fresh against the record store.
type Cache struct {
	store      domain.RecordStore
	classifier *sentiment.Classifier
	clock      clockwork.Clock

	snap atomic.Pointer[snapshot]

	// mu guards the Idle/Fetching state machine below.
	mu             sync.Mutex
	fetching       bool
	refetchPending bool

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSubID   int

	fetchCtx context.Context
}

var _ domain.FeedbackService = (*Cache)(nil)
var _ domain.ChangeListener = (*Cache)(nil)

// New creates a cache backed by the given record store. Call Start to
// trigger the initial load.
func New(store domain.RecordStore, classifier *sentiment.Classifier, clock clockwork.Clock) *Cache {
	c := &Cache{
		store:       store,
		classifier:  classifier,
		clock:       clock,
		subscribers: make(map[int]func()),
		fetchCtx:    context.Background(),
	}
	c.snap.Store(&snapshot{})
	return c
}

// Start kicks off the initial load. ctx bounds all background fetches;
// cancel it to stop the cache from reaching the store.
func (c *Cache) Start(ctx context.Context) {
	c.fetchCtx = ctx
	c.Refresh()
}

// Snapshot returns the best-known records immediately, never blocking.
// IsLoading is true until the first successful fetch completes; IsStale
// is true when the latest fetch failed and the previous data is served.
func (c *Cache) Snapshot() ([]domain.FeedbackRecord, domain.SnapshotStatus) {
	s := c.snap.Load()
	return s.records, domain.SnapshotStatus{
		IsLoading: !s.loaded,
		IsStale:   s.stale,
	}
}

// Refresh requests a re-fetch of the full collection. If a fetch is
// already in flight the request coalesces: exactly one additional fetch
// runs after the current one completes, no matter how many triggers
// arrived in the meantime.
func (c *Cache) Refresh() {
	c.mu.Lock()
	if c.fetching {
		c.refetchPending = true
		c.mu.Unlock()
		metrics.SnapshotRefreshesCoalesced.Inc()
		return
	}
	c.fetching = true
	c.mu.Unlock()

	go c.fetchLoop()
}

// OnChangeNotification implements domain.ChangeListener. The signal
// carries no payload, so the only possible reaction is a full re-read.
func (c *Cache) OnChangeNotification() {
	c.Refresh()
}

// Insert classifies the draft and writes the combined record to the
// store. On success the cache schedules a refetch; on failure the
// snapshot is left untouched and the error is returned to the caller.
func (c *Cache) Insert(ctx context.Context, draft domain.FeedbackDraft) (*domain.FeedbackRecord, error) {
	if strings.TrimSpace(draft.CustomerName) == "" ||
		strings.TrimSpace(draft.CustomerEmail) == "" ||
		strings.TrimSpace(draft.RawText) == "" {
		return nil, domain.ErrMissingFields
	}

	verdict := c.classifier.Classify(draft.RawText)
	record, err := c.store.Insert(ctx, domain.NewFeedback{
		FeedbackDraft:    draft,
		SentimentScore:   verdict.Score,
		SentimentLabel:   verdict.Label,
		IsUrgent:         verdict.IsUrgent,
		AISummary:        verdict.Summary,
		ResolutionStatus: domain.StatusNew,
	})
	if err != nil {
		metrics.FeedbackInsertsTotal.WithLabelValues("error").Inc()
		return nil, &domain.StoreWriteError{Op: "insert", Err: err}
	}

	metrics.FeedbackInsertsTotal.WithLabelValues("success").Inc()
	metrics.ClassificationsTotal.WithLabelValues(string(verdict.Label)).Inc()
	slog.Info("Feedback inserted", "id", record.ID, "label", verdict.Label, "urgent", verdict.IsUrgent)

	c.Refresh()
	return record, nil
}

// UpdateStatus writes a new resolution status to the store. The status
// is validated before any store interaction; there is no optimistic
// update, so the visible status only changes after the store confirms
// and a refetch completes.
func (c *Cache) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ResolutionStatus) error {
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}

	if err := c.store.UpdateStatus(ctx, id, status); err != nil {
		metrics.StatusUpdatesTotal.WithLabelValues("error").Inc()
		if errors.Is(err, domain.ErrRecordNotFound) {
			return err
		}
		return &domain.StoreWriteError{Op: "update_status", Err: err}
	}

	metrics.StatusUpdatesTotal.WithLabelValues("success").Inc()
	slog.Info("Resolution status updated", "id", id, "status", status)

	c.Refresh()
	return nil
}

// Subscribe registers fn to run after every snapshot replacement.
// fn must not block. The returned unsubscribe function is idempotent
// and does not affect fetches already in flight.
func (c *Cache) Subscribe(fn func()) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subscribers, id)
		c.subMu.Unlock()
	}
}

// StartReconcileTimer starts a background loop that refreshes the
// snapshot every interval, a safety net against missed notifications.
// Returns a stop function that cleans up the goroutine.
func (c *Cache) StartReconcileTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				c.Refresh()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}

func (c *Cache) fetchLoop() {
	for {
		c.fetchOnce()

		c.mu.Lock()
		if c.refetchPending {
			c.refetchPending = false
			c.mu.Unlock()
			continue
		}
		c.fetching = false
		c.mu.Unlock()
		return
	}
}

func (c *Cache) fetchOnce() {
	start := c.clock.Now()
	records, err := c.store.QueryAll(c.fetchCtx)
	metrics.SnapshotFetchDuration.Observe(c.clock.Since(start).Seconds())

	prev := c.snap.Load()
	var next *snapshot
	if err != nil {
		// Keep the last-known-good records and flag them stale rather
		// than showing consumers an empty state.
		metrics.SnapshotFetchesTotal.WithLabelValues("error").Inc()
		metrics.SnapshotStale.Set(1)
		slog.Warn("Snapshot fetch failed, serving stale data", "error", err, "records", len(prev.records))
		next = &snapshot{records: prev.records, loaded: prev.loaded, stale: true}
	} else {
		metrics.SnapshotFetchesTotal.WithLabelValues("success").Inc()
		metrics.SnapshotStale.Set(0)
		metrics.SnapshotRecords.Set(float64(len(records)))
		next = &snapshot{records: records, loaded: true}
	}

	c.snap.Store(next)
	c.notifySubscribers()
}

func (c *Cache) notifySubscribers() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
