package redis

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
	"github.com/Tanishqstar/sentiment-command-center/internal/metrics"
)

// feedbackChangedChannel carries zero-payload change signals. The
// message itself says nothing about what changed; receivers refetch
// the whole collection.
const feedbackChangedChannel = "feedback:changed"

// ChangePublisher announces committed writes to all instances.
type ChangePublisher struct {
	rdb *goredis.Client
}

func NewChangePublisher(rdb *goredis.Client) *ChangePublisher {
	return &ChangePublisher{rdb: rdb}
}

// PublishChanged broadcasts the zero-payload change signal.
func (p *ChangePublisher) PublishChanged(ctx context.Context) error {
	if err := p.rdb.Publish(ctx, feedbackChangedChannel, "").Err(); err != nil {
		return fmt.Errorf("failed to publish feedback change: %w", err)
	}
	return nil
}

// ChangeSubscriber listens for change signals and forwards each one to
// a listener, typically the snapshot cache.
type ChangeSubscriber struct {
	rdb      *goredis.Client
	listener domain.ChangeListener
}

func NewChangeSubscriber(rdb *goredis.Client, listener domain.ChangeListener) *ChangeSubscriber {
	return &ChangeSubscriber{rdb: rdb, listener: listener}
}

// Start blocks until ctx is cancelled, delivering every received signal
// to the listener. Payloads are ignored.
func (s *ChangeSubscriber) Start(ctx context.Context) {
	pubsub := s.rdb.Subscribe(ctx, feedbackChangedChannel)
	defer func() { _ = pubsub.Close() }()

	ch := pubsub.Channel()
	for {
		select {
		case msg := <-ch:
			if msg == nil {
				return
			}
			metrics.ChangeNotificationsTotal.Inc()
			slog.Debug("Feedback change signal received")
			s.listener.OnChangeNotification()
		case <-ctx.Done():
			return
		}
	}
}
