// Package queue implements named job queues on top of Redis. Jobs are kept as
// JSON documents, ready jobs sit in a sorted set scored by run time, claimed jobs
// move to an active set scored by lease deadline. Failed jobs are retried with
// exponential backoff and land in a failed set once attempts are exhausted.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// queue errors
var (
	ErrJobExists   = errors.New("job already exists")
	ErrJobNotFound = errors.New("job not found")
)

// Job is a unit of work stored in a queue
type Job struct {
	ID          string          `json:"id"`
	Queue       string          `json:"queue"`
	Name        string          `json:"name"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Attempt     int             `json:"attempt"`
	MaxAttempts int             `json:"max_attempts"`
	LastError   string          `json:"last_error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	FailedAt    *time.Time      `json:"failed_at,omitempty"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"` // slot of the recurring job which produced it
}

// Decode unmarshals job payload into v
func (j *Job) Decode(v any) error {
	if len(j.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(j.Payload, v); err != nil {
		return Permanent(fmt.Errorf("decode payload of job %s: %w", j.ID, err))
	}
	return nil
}

// Options defines per-queue behavior
type Options struct {
	Concurrency  int           // number of parallel consumers
	Attempts     int           // max attempts per job, including the first one
	Backoff      time.Duration // base delay, doubled with each failed attempt
	Timeout      time.Duration // max handler run time
	Lease        time.Duration // how long a claimed job is owned before it is requeued
	PollInterval time.Duration // idle wait between claims
	Retention    time.Duration // how long exhausted jobs stay in the failed set
}

func (o *Options) setDefaults() {
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	if o.Attempts <= 0 {
		o.Attempts = 1
	}
	if o.Backoff <= 0 {
		o.Backoff = 5 * time.Second
	}
	if o.Timeout <= 0 {
		o.Timeout = 2 * time.Minute
	}
	if o.Lease <= 0 {
		o.Lease = 2*o.Timeout + 30*time.Second
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 500 * time.Millisecond
	}
	if o.Retention <= 0 {
		o.Retention = 24 * time.Hour
	}
}

// Handler processes a single job. Returning an error schedules a retry unless the
// error is wrapped with Permanent or attempts are exhausted.
type Handler func(ctx context.Context, job *Job) error

// FailedHook is called once a job is moved to the failed set
type FailedHook func(ctx context.Context, job *Job, err error)

// Queue is a named job queue. Handlers and hooks must be registered before Run.
type Queue struct {
	client *redis.Client
	name   string
	prefix string
	opts   Options
	now    func() time.Time

	mu       sync.RWMutex
	handlers map[string]Handler
	onFailed FailedHook
}

// New makes a queue with the given name. Keys are namespaced as prefix:name:*
func New(client *redis.Client, prefix, name string, opts Options) *Queue {
	opts.setDefaults()
	return &Queue{
		client:   client,
		name:     name,
		prefix:   prefix,
		opts:     opts,
		now:      time.Now,
		handlers: map[string]Handler{},
	}
}

// Name returns queue name
func (q *Queue) Name() string { return q.name }

// Handle registers handler for jobs with the given name
func (q *Queue) Handle(jobName string, h Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobName] = h
}

// OnFailed registers a hook called when a job is moved to the failed set
func (q *Queue) OnFailed(fn FailedHook) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onFailed = fn
}

// EnqueueOption customizes a single Enqueue call
type EnqueueOption func(*enqueueOpts)

type enqueueOpts struct {
	jobID       string
	delay       time.Duration
	scheduledAt time.Time
}

// WithJobID sets an explicit job id. While a job with this id is waiting, active
// or failed, another Enqueue with the same id returns ErrJobExists.
func WithJobID(id string) EnqueueOption {
	return func(o *enqueueOpts) { o.jobID = id }
}

// WithDelay postpones the first run of the job
func WithDelay(d time.Duration) EnqueueOption {
	return func(o *enqueueOpts) { o.delay = d }
}

// WithScheduledAt records the slot a recurring job was fired for
func WithScheduledAt(t time.Time) EnqueueOption {
	return func(o *enqueueOpts) { o.scheduledAt = t }
}

var enqueueScript = redis.NewScript(`
if redis.call('SET', KEYS[1], ARGV[1], 'NX') then
	redis.call('ZADD', KEYS[2], ARGV[2], ARGV[3])
	return 1
end
return 0
`)

// Enqueue adds a job with json-encoded payload and returns its id
func (q *Queue) Enqueue(ctx context.Context, jobName string, payload any, opts ...EnqueueOption) (string, error) {
	eo := enqueueOpts{}
	for _, opt := range opts {
		opt(&eo)
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("marshal payload for %s: %w", jobName, err)
		}
		raw = data
	}

	id := eo.jobID
	if id == "" {
		id = uuid.NewString()
	}

	now := q.now()
	job := Job{ID: id, Queue: q.name, Name: jobName, Payload: raw, MaxAttempts: q.opts.Attempts, CreatedAt: now.UTC()}
	if !eo.scheduledAt.IsZero() {
		at := eo.scheduledAt.UTC()
		job.ScheduledAt = &at
	}
	data, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshal job %s: %w", id, err)
	}

	res, err := enqueueScript.Run(ctx, q.client, []string{q.jobKey(id), q.key("waiting")},
		data, ms(now.Add(eo.delay)), id).Int()
	if err != nil {
		return "", fmt.Errorf("enqueue %s on %s: %w", jobName, q.name, err)
	}
	if res == 0 {
		return id, fmt.Errorf("enqueue %s on %s: %w", id, q.name, ErrJobExists)
	}
	return id, nil
}

var claimScript = redis.NewScript(`
local ids = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, 1)
if #ids == 0 then return false end
redis.call('ZREM', KEYS[1], ids[1])
redis.call('ZADD', KEYS[2], ARGV[2], ids[1])
return ids[1]
`)

// claim atomically moves the first due job to the active set, returns nil if nothing is due
func (q *Queue) claim(ctx context.Context) (*Job, error) {
	for {
		now := q.now()
		id, err := claimScript.Run(ctx, q.client, []string{q.key("waiting"), q.key("active")},
			ms(now), ms(now.Add(q.opts.Lease))).Text()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("claim from %s: %w", q.name, err)
		}

		job, err := q.load(ctx, id)
		if errors.Is(err, redis.Nil) {
			// job document is gone, drop the orphan id and try the next one
			if err := q.client.ZRem(ctx, q.key("active"), id).Err(); err != nil {
				return nil, fmt.Errorf("drop orphan %s: %w", id, err)
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		return job, nil
	}
}

func (q *Queue) load(ctx context.Context, id string) (*Job, error) {
	data, err := q.client.Get(ctx, q.jobKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("load job %s: %w", id, err)
	}
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshal job %s: %w", id, err)
	}
	return &job, nil
}

// Get returns a waiting, active or failed job by id
func (q *Queue) Get(ctx context.Context, id string) (*Job, error) {
	job, err := q.load(ctx, id)
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("job %s on %s: %w", id, q.name, ErrJobNotFound)
	}
	return job, err
}

// complete removes a finished job
func (q *Queue) complete(ctx context.Context, job *Job) error {
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, q.key("active"), job.ID)
		pipe.Del(ctx, q.jobKey(job.ID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("complete job %s: %w", job.ID, err)
	}
	return nil
}

// fail records a failed attempt. The job is either scheduled for a retry or moved
// to the failed set, the returned bool reports the latter.
func (q *Queue) fail(ctx context.Context, job *Job, jobErr error) (bool, error) {
	now := q.now()
	job.Attempt++
	job.LastError = jobErr.Error()
	exhausted := IsPermanent(jobErr) || job.Attempt >= job.MaxAttempts
	if exhausted {
		failedAt := now.UTC()
		job.FailedAt = &failedAt
	}

	data, err := json.Marshal(job)
	if err != nil {
		return false, fmt.Errorf("marshal job %s: %w", job.ID, err)
	}

	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, q.key("active"), job.ID)
		if !exhausted {
			pipe.Set(ctx, q.jobKey(job.ID), data, 0)
			pipe.ZAdd(ctx, q.key("waiting"), redis.Z{Score: float64(ms(now.Add(q.backoff(job.Attempt)))), Member: job.ID})
			return nil
		}
		pipe.Set(ctx, q.jobKey(job.ID), data, q.opts.Retention)
		pipe.ZAdd(ctx, q.key("failed"), redis.Z{Score: float64(ms(now)), Member: job.ID})
		pipe.ZRemRangeByScore(ctx, q.key("failed"), "-inf", strconv.FormatInt(ms(now.Add(-q.opts.Retention)), 10))
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("fail job %s: %w", job.ID, err)
	}
	return exhausted, nil
}

// backoff returns retry delay for the given attempt number, base * 2^(attempt-1)
func (q *Queue) backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 20 {
		attempt = 20
	}
	return q.opts.Backoff * time.Duration(1<<(attempt-1))
}

var recoverScript = redis.NewScript(`
local ids = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, id in ipairs(ids) do
	redis.call('ZREM', KEYS[1], id)
	redis.call('ZADD', KEYS[2], ARGV[1], id)
end
return #ids
`)

// recoverExpired returns jobs with expired leases back to the waiting set.
// Leases expire when a worker crashed or was stopped in the middle of a job.
func (q *Queue) recoverExpired(ctx context.Context) (int, error) {
	n, err := recoverScript.Run(ctx, q.client, []string{q.key("active"), q.key("waiting")}, ms(q.now())).Int()
	if err != nil {
		return 0, fmt.Errorf("recover expired leases on %s: %w", q.name, err)
	}
	return n, nil
}

// Failed lists jobs in the failed set, most recent first. Entries older than
// the retention period are trimmed.
func (q *Queue) Failed(ctx context.Context) ([]*Job, error) {
	cutoff := strconv.FormatInt(ms(q.now().Add(-q.opts.Retention)), 10)
	if err := q.client.ZRemRangeByScore(ctx, q.key("failed"), "-inf", cutoff).Err(); err != nil {
		return nil, fmt.Errorf("trim failed set: %w", err)
	}

	ids, err := q.client.ZRevRange(ctx, q.key("failed"), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list failed jobs: %w", err)
	}
	if len(ids) == 0 {
		return []*Job{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = q.jobKey(id)
	}
	vals, err := q.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load failed jobs: %w", err)
	}

	res := make([]*Job, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // expired document
		}
		var job Job
		if err := json.Unmarshal([]byte(s), &job); err != nil {
			return nil, fmt.Errorf("unmarshal failed job: %w", err)
		}
		res = append(res, &job)
	}
	return res, nil
}

// Stats holds queue counters
type Stats struct {
	Waiting    int64 `json:"waiting"`
	Active     int64 `json:"active"`
	Failed     int64 `json:"failed"`
	Schedulers int64 `json:"schedulers"`
}

// Stats returns current queue counters
func (q *Queue) Stats(ctx context.Context) (Stats, error) {
	var waiting, active, failed, schedulers *redis.IntCmd
	_, err := q.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		waiting = pipe.ZCard(ctx, q.key("waiting"))
		active = pipe.ZCard(ctx, q.key("active"))
		failed = pipe.ZCard(ctx, q.key("failed"))
		schedulers = pipe.HLen(ctx, q.key("schedulers"))
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("queue stats %s: %w", q.name, err)
	}
	return Stats{Waiting: waiting.Val(), Active: active.Val(), Failed: failed.Val(), Schedulers: schedulers.Val()}, nil
}

func (q *Queue) key(suffix string) string {
	return q.prefix + ":" + q.name + ":" + suffix
}

func (q *Queue) jobKey(id string) string {
	return q.key("job:" + id)
}

func ms(t time.Time) int64 {
	return t.UnixMilli()
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not retryable, the job goes straight to the failed set
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent checks if err was marked with Permanent
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}
