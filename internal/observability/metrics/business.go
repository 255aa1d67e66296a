package metrics

import (
	"time"
)

// RecordRound records the outcome and duration of a single round.
func RecordRound(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	RoundsTotal.WithLabelValues(status).Inc()
	RoundDuration.Observe(duration.Seconds())
}

// RecordLeader updates the leader distance gauge.
func RecordLeader(distance float64) {
	LeaderDistance.Set(distance)
}

// RecordRaceStarted sets the field size for a new race and resets the leader.
func RecordRaceStarted(horses int) {
	HorsesInRace.Set(float64(horses))
	LeaderDistance.Set(0)
}

// RecordRaceCompleted records the outcome of a race.
// Status is one of "finished", "exhausted", "cancelled" or "failed".
func RecordRaceCompleted(status string, rounds int) {
	RacesTotal.WithLabelValues(status).Inc()
	RaceRounds.Observe(float64(rounds))
}
