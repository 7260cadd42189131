package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
)

// Run drains the queue until ctx is canceled. It runs Concurrency consumers plus a
// housekeeping loop firing due schedulers and requeueing jobs with expired leases.
func (q *Queue) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(q.opts.Concurrency + 1)

	g.Go(func() error {
		q.housekeeping(ctx)
		return nil
	})
	for i := 0; i < q.opts.Concurrency; i++ {
		g.Go(func() error {
			q.consume(ctx)
			return nil
		})
	}

	lgr.Printf("[INFO] queue %s started, concurrency %d, attempts %d", q.name, q.opts.Concurrency, q.opts.Attempts)
	err := g.Wait()
	lgr.Printf("[INFO] queue %s stopped", q.name)
	return err
}

func (q *Queue) housekeeping(ctx context.Context) {
	ticker := time.NewTicker(q.opts.PollInterval)
	defer ticker.Stop()

	for {
		if n, err := q.recoverExpired(ctx); err != nil {
			lgr.Printf("[WARN] %v", err)
		} else if n > 0 {
			lgr.Printf("[INFO] requeued %d jobs with expired lease on %s", n, q.name)
		}
		if _, err := q.fireDue(ctx); err != nil {
			lgr.Printf("[WARN] %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (q *Queue) consume(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		job, err := q.claim(ctx)
		if err != nil && ctx.Err() == nil {
			lgr.Printf("[WARN] %v", err)
		}
		if job == nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(q.opts.PollInterval):
			}
			continue
		}

		q.process(ctx, job)
	}
}

// process runs the handler for a claimed job and records the outcome
func (q *Queue) process(ctx context.Context, job *Job) {
	st := time.Now()
	err := q.execute(ctx, job)
	took := time.Since(st).Seconds()
	if err == nil {
		if err := q.complete(ctx, job); err != nil {
			lgr.Printf("[WARN] %v", err)
		}
		recordJob(q.name, job.Name, statusCompleted, took)
		return
	}

	if ctx.Err() != nil {
		// shutting down, the lease expires and the job is picked up again
		lgr.Printf("[DEBUG] job %s on %s interrupted: %v", job.ID, q.name, err)
		return
	}

	exhausted, ferr := q.fail(ctx, job, err)
	if ferr != nil {
		lgr.Printf("[WARN] %v", ferr)
		return
	}
	if !exhausted {
		recordJob(q.name, job.Name, statusRetried, took)
		lgr.Printf("[WARN] job %s (%s) on %s failed, attempt %d/%d, retry in %v: %v",
			job.ID, job.Name, q.name, job.Attempt, job.MaxAttempts, q.backoff(job.Attempt), err)
		return
	}

	recordJob(q.name, job.Name, statusFailed, took)
	lgr.Printf("[ERROR] job %s (%s) on %s failed permanently after %d attempts: %v",
		job.ID, job.Name, q.name, job.Attempt, err)
	q.mu.RLock()
	hook := q.onFailed
	q.mu.RUnlock()
	if hook != nil {
		hook(ctx, job, err)
	}
}

func (q *Queue) execute(ctx context.Context, job *Job) (err error) {
	q.mu.RLock()
	h, ok := q.handlers[job.Name]
	q.mu.RUnlock()
	if !ok {
		return Permanent(fmt.Errorf("no handler for job %s on %s", job.Name, q.name))
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", job.ID, r)
		}
	}()

	jctx, cancel := context.WithTimeout(ctx, q.opts.Timeout)
	defer cancel()
	return h(jctx, job)
}
