package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/redis/go-redis/v9"
)

// SchedulerInfo describes a recurring job registered on a queue
type SchedulerInfo struct {
	Key     string          `json:"key"`
	Trigger string          `json:"trigger"`
	Job     string          `json:"job"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Next    time.Time       `json:"next"`
}

type schedulerSpec struct {
	Trigger string          `json:"trigger"`
	Job     string          `json:"job"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// UpsertScheduler registers a recurring job under key, replacing the trigger and
// payload of an existing one. Upserting the identical spec keeps the current
// next-run time.
func (q *Queue) UpsertScheduler(ctx context.Context, key string, trigger Trigger, jobName string, payload any) error {
	spec := schedulerSpec{Trigger: trigger.String(), Job: jobName}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal scheduler payload %s: %w", key, err)
		}
		spec.Payload = raw
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshal scheduler %s: %w", key, err)
	}

	cur, err := q.client.HGet(ctx, q.key("schedulers"), key).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("get scheduler %s: %w", key, err)
	}
	if err == nil && bytes.Equal(cur, data) {
		return nil
	}

	next := trigger.Next(q.now())
	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, q.key("schedulers"), key, data)
		pipe.ZAdd(ctx, q.key("schedulers:next"), redis.Z{Score: float64(ms(next)), Member: key})
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert scheduler %s: %w", key, err)
	}
	lgr.Printf("[DEBUG] scheduler %s on %s set to %s, next run %s", key, q.name, spec.Trigger, next.Format(time.RFC3339))
	return nil
}

// RemoveScheduler deletes a recurring job, missing key is not an error
func (q *Queue) RemoveScheduler(ctx context.Context, key string) error {
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, q.key("schedulers"), key)
		pipe.ZRem(ctx, q.key("schedulers:next"), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove scheduler %s: %w", key, err)
	}
	return nil
}

// Schedulers lists registered recurring jobs ordered by next run
func (q *Queue) Schedulers(ctx context.Context) ([]SchedulerInfo, error) {
	entries, err := q.client.ZRangeWithScores(ctx, q.key("schedulers:next"), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list schedulers: %w", err)
	}
	specs, err := q.client.HGetAll(ctx, q.key("schedulers")).Result()
	if err != nil {
		return nil, fmt.Errorf("load schedulers: %w", err)
	}

	res := make([]SchedulerInfo, 0, len(entries))
	for _, e := range entries {
		key, _ := e.Member.(string)
		raw, ok := specs[key]
		if !ok {
			continue
		}
		var spec schedulerSpec
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			return nil, fmt.Errorf("unmarshal scheduler %s: %w", key, err)
		}
		res = append(res, SchedulerInfo{Key: key, Trigger: spec.Trigger, Job: spec.Job, Payload: spec.Payload,
			Next: time.UnixMilli(int64(e.Score))})
	}
	return res, nil
}

var advanceScript = redis.NewScript(`
local cur = redis.call('ZSCORE', KEYS[1], ARGV[1])
if not cur or tonumber(cur) ~= tonumber(ARGV[2]) then return 0 end
redis.call('ZADD', KEYS[1], ARGV[3], ARGV[1])
return 1
`)

// fireDue enqueues jobs of all schedulers whose next run is due. The next-run
// score is advanced with compare-and-set, so with several processes polling the
// same queue each slot fires once. Returns number of fired schedulers.
func (q *Queue) fireDue(ctx context.Context) (int, error) {
	now := q.now()
	due, err := q.client.ZRangeByScoreWithScores(ctx, q.key("schedulers:next"), &redis.ZRangeBy{
		Min: "-inf", Max: strconv.FormatInt(ms(now), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("list due schedulers: %w", err)
	}

	fired := 0
	for _, e := range due {
		key, _ := e.Member.(string)
		slot := int64(e.Score)
		ok, err := q.fireOne(ctx, key, slot, now)
		if err != nil {
			lgr.Printf("[WARN] scheduler %s on %s: %v", key, q.name, err)
			continue
		}
		if ok {
			fired++
		}
	}
	if fired > 0 {
		SchedulerFiredTotal.WithLabelValues(q.name).Add(float64(fired))
	}
	return fired, nil
}

func (q *Queue) fireOne(ctx context.Context, key string, slot int64, now time.Time) (bool, error) {
	raw, err := q.client.HGet(ctx, q.key("schedulers"), key).Bytes()
	if errors.Is(err, redis.Nil) {
		// removed between listing and firing
		return false, q.client.ZRem(ctx, q.key("schedulers:next"), key).Err()
	}
	if err != nil {
		return false, fmt.Errorf("get spec: %w", err)
	}

	var spec schedulerSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return false, fmt.Errorf("unmarshal spec: %w", err)
	}
	trigger, err := ParseTrigger(spec.Trigger)
	if err != nil {
		return false, err
	}

	next := trigger.Next(now)
	advanced, err := advanceScript.Run(ctx, q.client, []string{q.key("schedulers:next")}, key, slot, ms(next)).Int()
	if err != nil {
		return false, fmt.Errorf("advance next run: %w", err)
	}
	if advanced == 0 {
		return false, nil // another process took this slot
	}

	var payload any
	if len(spec.Payload) > 0 {
		payload = spec.Payload
	}
	jobID := "sched:" + key + ":" + strconv.FormatInt(slot, 10)
	if _, err := q.Enqueue(ctx, spec.Job, payload, WithJobID(jobID), WithScheduledAt(time.UnixMilli(slot))); err != nil && !errors.Is(err, ErrJobExists) {
		return false, fmt.Errorf("enqueue %s: %w", spec.Job, err)
	}
	lgr.Printf("[DEBUG] scheduler %s fired %s on %s, next run %s", key, spec.Job, q.name, next.Format(time.RFC3339))
	return true, nil
}
