package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/queue"
)

const (
	generateKeyPrefix = "digest-generate:"
	deliverKey        = "digest-deliver:hourly"
)

// DigestProcessor generates per-user daily digests and delivers them at each
// user's preferred hour. All dates and hours are taken in the configured time zone.
type DigestProcessor struct {
	users       UserReader
	digests     DigestStore
	enricher    Enricher
	notifier    Notifier
	generation  Enqueuer
	delivery    Enqueuer
	maintenance RecurringQueue
	loc         *time.Location
	times       []string
	now         func() time.Time
}

// DigestProcessorParams holds dependencies of DigestProcessor
type DigestProcessorParams struct {
	Users       UserReader
	Digests     DigestStore
	Enricher    Enricher
	Notifier    Notifier
	Generation  Enqueuer       // digest-generation queue
	Delivery    Enqueuer       // digest-delivery queue
	Maintenance RecurringQueue // hosts fan-out and hourly sweep schedulers
	Location    *time.Location
	// GenerationTimes are HH:MM daily times of digest generation
	GenerationTimes []string
}

// NewDigestProcessor makes digest processor, default zone is UTC and default times are 06:00, 12:00 and 18:00
func NewDigestProcessor(p DigestProcessorParams) *DigestProcessor {
	if p.Location == nil {
		p.Location = time.UTC
	}
	if len(p.GenerationTimes) == 0 {
		p.GenerationTimes = []string{"06:00", "12:00", "18:00"}
	}
	return &DigestProcessor{
		users:       p.Users,
		digests:     p.Digests,
		enricher:    p.Enricher,
		notifier:    p.Notifier,
		generation:  p.Generation,
		delivery:    p.Delivery,
		maintenance: p.Maintenance,
		loc:         p.Location,
		times:       p.GenerationTimes,
		now:         time.Now,
	}
}

// today returns current date in the digest time zone
func (dp *DigestProcessor) today() string {
	return dp.now().In(dp.loc).Format(domain.DateLayout)
}

// ScheduleDigests upserts daily generation schedulers and the hourly delivery sweep.
// Generation schedulers for times no longer configured are removed.
func (dp *DigestProcessor) ScheduleDigests(ctx context.Context) error {
	wanted := map[string]bool{}
	for _, t := range dp.times {
		trigger, err := queue.ParseDailyAt(t, dp.loc)
		if err != nil {
			return fmt.Errorf("digest generation time: %w", err)
		}
		key := generateKeyPrefix + t
		wanted[key] = true
		if err := dp.maintenance.UpsertScheduler(ctx, key, trigger, domain.JobGenerateDigests, domain.DigestFanOutJob{Slot: t}); err != nil {
			return fmt.Errorf("schedule digest generation at %s: %w", t, err)
		}
	}

	hourly := queue.Every{Interval: time.Hour, Aligned: true}
	if err := dp.maintenance.UpsertScheduler(ctx, deliverKey, hourly, domain.JobDispatchDigests, nil); err != nil {
		return fmt.Errorf("schedule digest delivery: %w", err)
	}

	existing, err := dp.maintenance.Schedulers(ctx)
	if err != nil {
		return fmt.Errorf("list schedulers: %w", err)
	}
	for _, s := range existing {
		if strings.HasPrefix(s.Key, generateKeyPrefix) && !wanted[s.Key] {
			if err := dp.maintenance.RemoveScheduler(ctx, s.Key); err != nil {
				return fmt.Errorf("remove stale scheduler %s: %w", s.Key, err)
			}
			lgr.Printf("[INFO] removed stale scheduler %s", s.Key)
		}
	}

	lgr.Printf("[INFO] digests scheduled at %s (%s), delivery sweep hourly", strings.Join(dp.times, ", "), dp.loc)
	return nil
}

// FanOut enqueues one generation job per active user for today. Users are streamed
// through a cursor and a failing user doesn't stop the others. Job ids are per user,
// date and slot, so a repeated firing of the same slot doesn't duplicate jobs, while a
// later slot gives users whose generation failed another chance.
func (dp *DigestProcessor) FanOut(ctx context.Context, slot string) (int, error) {
	date := dp.today()
	enqueued, failed := 0, 0
	err := dp.users.StreamActiveUsers(ctx, func(u *domain.User) error {
		id := fmt.Sprintf("%s%d:%s", generateKeyPrefix, u.ID, date)
		if slot != "" {
			id += ":" + strings.ReplaceAll(slot, ":", "")
		}
		_, err := dp.generation.Enqueue(ctx, domain.JobGenerateDigest, domain.DigestGenerationJob{UserID: u.ID, Date: date},
			queue.WithJobID(id))
		switch {
		case err == nil:
			enqueued++
		case errors.Is(err, queue.ErrJobExists):
		default:
			failed++
			lgr.Printf("[WARN] failed to enqueue digest generation for user %d: %v", u.ID, err)
		}
		return ctx.Err()
	})
	if err != nil {
		return enqueued, fmt.Errorf("stream users: %w", err)
	}
	lgr.Printf("[INFO] digest generation for %s enqueued for %d users, %d failed", date, enqueued, failed)
	return enqueued, nil
}

// GenerateForUser generates the user's digest for the job date, today by default.
// Nothing is generated if a record for that date already exists.
func (dp *DigestProcessor) GenerateForUser(ctx context.Context, job domain.DigestGenerationJob) error {
	date := job.Date
	if date == "" {
		date = dp.today()
	}

	exists, err := dp.digests.Exists(ctx, job.UserID, date)
	if err != nil {
		return err
	}
	if exists {
		lgr.Printf("[DEBUG] digest of user %d for %s already exists", job.UserID, date)
		return nil
	}

	content, err := dp.enricher.GenerateDigest(ctx, job.UserID)
	if err != nil {
		return err
	}

	rec := &domain.DigestRecord{UserID: job.UserID, Date: date, Content: *content}
	created, err := dp.digests.CreatePending(ctx, rec)
	if err != nil {
		return fmt.Errorf("store digest of user %d: %w", job.UserID, err)
	}
	if !created {
		lgr.Printf("[DEBUG] digest of user %d for %s created concurrently", job.UserID, date)
		return nil
	}
	digestsTotal.WithLabelValues(string(domain.DigestPending)).Inc()
	lgr.Printf("[INFO] digest %d generated for user %d, %s, %d sections", rec.ID, job.UserID, date, len(content.Sections))
	return nil
}

// hourOf returns date and hour of t in the digest time zone
func (dp *DigestProcessor) hourOf(t time.Time) (date string, hour int) {
	local := t.In(dp.loc)
	return local.Format(domain.DateLayout), local.Hour()
}

// hourStart truncates t to the start of its hour in the digest time zone
func (dp *DigestProcessor) hourStart(t time.Time) time.Time {
	local := t.In(dp.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, dp.loc)
}

// deliveryJobID dedups delivery jobs per user and date
func deliveryJobID(userID int64, date string) string {
	return "deliver:" + strconv.FormatInt(userID, 10) + ":" + date
}
