package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// job outcome labels
const (
	statusCompleted = "completed"
	statusRetried   = "retried"
	statusFailed    = "failed"
)

var (
	// JobsTotal counts processed jobs by queue and outcome
	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdigest",
			Subsystem: "queue",
			Name:      "jobs_total",
			Help:      "Total number of processed jobs",
		},
		[]string{"queue", "status"},
	)

	// JobDuration measures handler run time
	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsdigest",
			Subsystem: "queue",
			Name:      "job_duration_seconds",
			Help:      "Duration of job handlers in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"queue", "job"},
	)

	// SchedulerFiredTotal counts jobs produced by recurring schedulers
	SchedulerFiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdigest",
			Subsystem: "queue",
			Name:      "scheduler_fired_total",
			Help:      "Total number of jobs enqueued by schedulers",
		},
		[]string{"queue"},
	)
)

func recordJob(queue, job, status string, seconds float64) {
	JobsTotal.WithLabelValues(queue, status).Inc()
	JobDuration.WithLabelValues(queue, job).Observe(seconds)
}
