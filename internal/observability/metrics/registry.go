// Package metrics provides centralized Prometheus metrics for the race simulation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Round metrics track each advance of the whole field.
var (
	// RoundsTotal counts rounds by status (success, failure)
	RoundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hippodrome_rounds_total",
			Help: "Total number of race rounds by status",
		},
		[]string{"status"},
	)

	// RoundDuration measures how long one concurrent round takes
	RoundDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hippodrome_round_duration_seconds",
			Help:    "Time taken to advance every horse once",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)
)

// Race metrics track whole races and the current field.
var (
	// RacesTotal counts finished races by status (finished, exhausted, cancelled, failed)
	RacesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hippodrome_races_total",
			Help: "Total number of races by outcome",
		},
		[]string{"status"},
	)

	// HorsesInRace tracks the size of the current field
	HorsesInRace = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hippodrome_horses",
			Help: "Number of horses in the current race",
		},
	)

	// LeaderDistance tracks the distance of the current leader
	LeaderDistance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hippodrome_leader_distance",
			Help: "Distance covered by the current race leader",
		},
	)

	// RaceRounds records how many rounds each race needed
	RaceRounds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hippodrome_race_rounds",
			Help:    "Number of rounds run per race",
			Buckets: prometheus.LinearBuckets(10, 10, 15),
		},
	)
)
