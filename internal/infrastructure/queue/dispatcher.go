package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/api/metrics"
	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
	deliverTimeout = 15 * time.Second
)

type job struct {
	kind string
	fn   func(ctx context.Context) error
}

// NotificationDispatcher delivers Discord notifications off the request path.
// Enqueueing never blocks the caller: when the buffer is full the notification
// is dropped and counted, which is acceptable for fire-and-forget delivery.
// It implements ports.ReviewNotifier and ports.ReportNotifier by wrapping the
// synchronous notifier.
type NotificationDispatcher struct {
	reviews ports.ReviewNotifier
	reports ports.ReportNotifier
	jobs    chan job
	workers int
	log     zerolog.Logger
}

// NewNotificationDispatcher wraps the given notifiers. If numWorkers <= 0,
// defaultWorkers is used.
func NewNotificationDispatcher(reviews ports.ReviewNotifier, reports ports.ReportNotifier, numWorkers int, log zerolog.Logger) *NotificationDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &NotificationDispatcher{
		reviews: reviews,
		reports: reports,
		jobs:    make(chan job, channelBuffer),
		workers: numWorkers,
		log:     log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx, i)
	}
}

// NotifySubmission queues a reviewer notification. Always returns nil: the
// create transition must not observe delivery failures.
func (d *NotificationDispatcher) NotifySubmission(_ context.Context, sub *domain.WikiSubmission, preview string) error {
	s := *sub // copy; the worker outlives the request
	d.enqueue("review", func(ctx context.Context) error {
		return d.reviews.NotifySubmission(ctx, &s, preview)
	})
	return nil
}

func (d *NotificationDispatcher) NotifyApplication(_ context.Context, report ports.ApplicationReport) error {
	d.enqueue("application", func(ctx context.Context) error {
		return d.reports.NotifyApplication(ctx, report)
	})
	return nil
}

func (d *NotificationDispatcher) NotifyAppeal(_ context.Context, report ports.AppealReport) error {
	d.enqueue("appeal", func(ctx context.Context) error {
		return d.reports.NotifyAppeal(ctx, report)
	})
	return nil
}

func (d *NotificationDispatcher) enqueue(kind string, fn func(ctx context.Context) error) {
	select {
	case d.jobs <- job{kind: kind, fn: fn}:
	default:
		d.log.Warn().Str("kind", kind).Msg("notification queue full, dropping")
		metrics.NotificationFailuresTotal.WithLabelValues(kind).Inc()
	}
}

func (d *NotificationDispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-d.jobs:
			if !ok {
				return
			}
			deliverCtx, cancel := context.WithTimeout(ctx, deliverTimeout)
			err := j.fn(deliverCtx)
			cancel()
			if err != nil {
				d.log.Warn().Err(err).
					Str("kind", j.kind).
					Int("worker_id", id).
					Msg("notification delivery failed")
				metrics.NotificationFailuresTotal.WithLabelValues(j.kind).Inc()
			}
		}
	}
}
