package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/notify"
	"github.com/umputun/newsdigest/pkg/queue"
)

// maxDeliveryCatchUp limits how far back a late sweep replays missed hours
const maxDeliveryCatchUp = 24 * time.Hour

// DispatchDue enqueues delivery of PENDING digests whose users want them at the
// current hour of the digest time zone. Non-zero from is the slot the sweep was
// scheduled for, every hour between it and now is swept as well, so hours missed
// while the service was down are still delivered. Returns number of enqueued jobs.
func (dp *DigestProcessor) DispatchDue(ctx context.Context, from time.Time) (int, error) {
	now := dp.now()
	start := dp.hourStart(now)
	if !from.IsZero() && from.Before(start) {
		start = dp.hourStart(from)
		if limit := dp.hourStart(now.Add(-maxDeliveryCatchUp)); start.Before(limit) {
			lgr.Printf("[WARN] delivery sweep is %v late, hours before %s are skipped", now.Sub(from).Truncate(time.Minute),
				limit.Format(time.RFC3339))
			start = limit
		}
	}

	enqueued := 0
	for at := start; !at.After(now); at = at.Add(time.Hour) {
		n, err := dp.dispatchHour(ctx, at)
		enqueued += n
		if err != nil {
			return enqueued, err
		}
	}
	return enqueued, nil
}

// dispatchHour enqueues deliveries of PENDING digests due at the local hour of t
func (dp *DigestProcessor) dispatchHour(ctx context.Context, t time.Time) (int, error) {
	date, hour := dp.hourOf(t)
	enqueued := 0
	err := dp.digests.StreamPendingForHour(ctx, date, hour, func(rec *domain.DigestRecord) error {
		_, err := dp.delivery.Enqueue(ctx, domain.JobDeliverDigest, domain.DigestDeliveryJob{UserID: rec.UserID, Date: rec.Date},
			queue.WithJobID(deliveryJobID(rec.UserID, rec.Date)))
		switch {
		case err == nil:
			enqueued++
		case errors.Is(err, queue.ErrJobExists):
		default:
			lgr.Printf("[WARN] failed to enqueue delivery of digest %d for user %d: %v", rec.ID, rec.UserID, err)
		}
		return ctx.Err()
	})
	if err != nil {
		return enqueued, fmt.Errorf("stream pending digests for %s %02d:00: %w", date, hour, err)
	}
	if enqueued > 0 {
		lgr.Printf("[INFO] %d digests for %s queued for delivery at %02d:00", enqueued, date, hour)
	}
	return enqueued, nil
}

// Deliver sends the user's digest and marks it SENT. Digests no longer PENDING are
// skipped, send errors are returned for the queue to retry.
func (dp *DigestProcessor) Deliver(ctx context.Context, job domain.DigestDeliveryJob) error {
	date := job.Date
	if date == "" {
		date = dp.today()
	}

	rec, err := dp.digests.GetDigest(ctx, job.UserID, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return queue.Permanent(err)
		}
		return err
	}
	if rec.Status != domain.DigestPending {
		lgr.Printf("[DEBUG] digest %d of user %d is %s, delivery skipped", rec.ID, job.UserID, rec.Status)
		return nil
	}

	user, err := dp.users.GetUser(ctx, job.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return queue.Permanent(err)
		}
		return err
	}

	channel, err := dp.notifier.Send(ctx, user, notify.Message{Date: rec.Date, Teaser: rec.Content.Teaser})
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedChannel) || errors.Is(err, notify.ErrRejected) {
			return queue.Permanent(err)
		}
		return err
	}

	if err := dp.digests.MarkSent(ctx, rec.ID, channel); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			lgr.Printf("[WARN] digest %d was sent but is no longer pending", rec.ID)
			return nil
		}
		return fmt.Errorf("mark digest %d sent: %w", rec.ID, err)
	}
	digestsTotal.WithLabelValues(string(domain.DigestSent)).Inc()
	lgr.Printf("[INFO] digest %d delivered to user %d over %s", rec.ID, job.UserID, channel)
	return nil
}

// onDeliveryFailed moves the digest to FAILED once delivery attempts are exhausted
func (dp *DigestProcessor) onDeliveryFailed(ctx context.Context, job *queue.Job, jobErr error) {
	var payload domain.DigestDeliveryJob
	if err := job.Decode(&payload); err != nil {
		lgr.Printf("[WARN] %v", err)
		return
	}
	if payload.Date == "" {
		payload.Date = dp.today()
	}
	rec, err := dp.digests.GetDigest(ctx, payload.UserID, payload.Date)
	if err != nil {
		lgr.Printf("[WARN] failed to load digest of user %d for %s: %v", payload.UserID, payload.Date, err)
		return
	}
	if err := dp.digests.MarkFailed(ctx, rec.ID, jobErr.Error()); err != nil {
		lgr.Printf("[WARN] failed to mark digest %d failed: %v", rec.ID, err)
		return
	}
	digestsTotal.WithLabelValues(string(domain.DigestFailed)).Inc()
}
