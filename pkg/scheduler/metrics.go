package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// feed item outcomes
const (
	itemNew       = "new"
	itemDuplicate = "duplicate"
	itemSkipped   = "skipped"
	itemFailed    = "failed"
)

var (
	feedItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdigest",
			Subsystem: "feed",
			Name:      "poll_items_total",
			Help:      "Total number of polled feed items by outcome",
		},
		[]string{"result"},
	)

	digestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdigest",
			Subsystem: "digest",
			Name:      "records_total",
			Help:      "Total number of digest state changes",
		},
		[]string{"status"},
	)
)
