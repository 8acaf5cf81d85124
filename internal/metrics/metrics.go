// Package metrics defines and registers all custom Prometheus metrics for
// the parking facility service. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parking"

// ── Session metrics ───────────────────────────────────────────────────────────

// EntriesTotal counts vehicles admitted to the facility.
// Label:
//   - category: "CAR" or "BIKE"
var EntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_total",
		Help:      "Total number of vehicles admitted, by category.",
	},
	[]string{"category"},
)

// ExitsTotal counts vehicles released from the facility.
// Labels:
//   - category: "CAR" or "BIKE"
//   - discounted: "true" when the loyalty discount applied
var ExitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exits_total",
		Help:      "Total number of vehicles released, by category and discount.",
	},
	[]string{"category", "discounted"},
)

// EntriesRejectedTotal counts admissions that failed.
// Label:
//   - reason: short description ("facility_full", "already_parked", "invalid_input")
var EntriesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_rejected_total",
		Help:      "Total number of rejected admissions, by reason.",
	},
	[]string{"reason"},
)

// FareAmount tracks the distribution of settled fares.
// Label:
//   - category: "CAR" or "BIKE"
var FareAmount = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fare_amount",
		Help:      "Distribution of settled fare amounts.",
		Buckets:   []float64{0, 0.5, 1, 2, 5, 10, 25, 50, 100},
	},
	[]string{"category"},
)

// OccupiedSpots tracks the number of spots currently occupied per category.
var OccupiedSpots = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "occupied_spots",
		Help:      "Number of spots currently occupied, by category.",
	},
	[]string{"category"},
)

// ── Gate event metrics ────────────────────────────────────────────────────────

// GateEventsErrorsTotal counts gate events that failed processing.
// Label:
//   - direction: "entry" or "exit"
var GateEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_events_errors_total",
		Help:      "Total number of gate events that failed processing.",
	},
	[]string{"direction"},
)

// GateEventsDedupedTotal counts gate events skipped as replays.
// Label:
//   - direction: "entry" or "exit"
var GateEventsDedupedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_events_deduped_total",
		Help:      "Total number of gate events skipped because they were already processed.",
	},
	[]string{"direction"},
)

// GateEventsQueueDepth tracks the events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var GateEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "gate_events_queue_depth",
		Help:      "Current number of gate events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
