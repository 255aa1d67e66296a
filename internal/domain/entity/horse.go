// Package entity defines the race participants and their validation rules.
// A Horse keeps a fixed name and speed and accumulates distance each time it moves.
package entity

import (
	"math"
	"strings"
)

// Bounds of the random factor drawn on every move.
const (
	MinMoveFactor = 0.2
	MaxMoveFactor = 0.9
)

// Horse is a single race participant.
// Name and speed never change after construction; distance only grows through Move.
// A horse is not safe for concurrent use by itself, but different horses share
// no state and may move at the same time.
type Horse struct {
	name       string
	speed      float64
	distance   float64
	randomizer Randomizer
}

// HorseOption configures optional horse fields.
type HorseOption func(*Horse)

// WithDistance sets the distance the horse starts with. Defaults to 0.
func WithDistance(distance float64) HorseOption {
	return func(h *Horse) {
		h.distance = distance
	}
}

// WithRandomizer injects the randomizer used by Move.
// Without it the horse uses DefaultRandomizer at the time of each move.
func WithRandomizer(r Randomizer) HorseOption {
	return func(h *Horse) {
		h.randomizer = r
	}
}

// NewHorse validates its arguments and returns a horse.
// Checks run in order: blank name, negative speed, negative distance.
// NaN and infinite speeds or distances count as negative.
// Every failure is an *ArgumentError matching ErrInvalidArgument.
func NewHorse(name string, speed float64, opts ...HorseOption) (*Horse, error) {
	return NewHorseFromNullable(&name, speed, opts...)
}

// NewHorseFromNullable is NewHorse for callers whose name may be absent,
// such as decoded roster entries. A nil name fails with ErrNameNull before
// any other check.
func NewHorseFromNullable(name *string, speed float64, opts ...HorseOption) (*Horse, error) {
	if name == nil {
		return nil, ErrNameNull
	}
	if strings.TrimSpace(*name) == "" {
		return nil, ErrNameBlank
	}
	if !isNonNegative(speed) {
		return nil, ErrSpeedNegative
	}

	h := &Horse{name: *name, speed: speed}
	for _, opt := range opts {
		opt(h)
	}

	if !isNonNegative(h.distance) {
		return nil, ErrDistanceNegative
	}
	return h, nil
}

// Name returns the horse's name.
func (h *Horse) Name() string { return h.name }

// Speed returns the horse's speed.
func (h *Horse) Speed() float64 { return h.speed }

// Distance returns the distance covered so far.
func (h *Horse) Distance() float64 { return h.distance }

// Move advances the horse by speed times a random factor in
// [MinMoveFactor, MaxMoveFactor].
func (h *Horse) Move() {
	r := h.currentRandomizer().RandomDouble(MinMoveFactor, MaxMoveFactor)
	h.distance += h.speed * r
}

func (h *Horse) currentRandomizer() Randomizer {
	if h.randomizer != nil {
		return h.randomizer
	}
	return DefaultRandomizer()
}

// isNonNegative reports whether v is a finite number >= 0.
func isNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
