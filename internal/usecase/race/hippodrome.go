package race

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hippodrome/internal/domain/entity"
)

// Hippodrome owns the fixed field of horses of one race.
// The set and order of horses never change after construction.
// Horses must be distinct: the same horse listed twice would be moved by two
// goroutines in the same round.
type Hippodrome struct {
	id     string
	horses []*entity.Horse
	round  int
}

// Option configures a Hippodrome.
type Option func(*Hippodrome)

// WithID overrides the generated race ID.
func WithID(id string) Option {
	return func(h *Hippodrome) {
		h.id = id
	}
}

// New creates a hippodrome holding the given horses in the given order.
// A nil slice fails with entity.ErrHorsesNull and an empty one with
// entity.ErrHorsesEmpty. The slice is copied; the horses are shared.
func New(horses []*entity.Horse, opts ...Option) (*Hippodrome, error) {
	if horses == nil {
		return nil, entity.ErrHorsesNull
	}
	if len(horses) == 0 {
		return nil, entity.ErrHorsesEmpty
	}

	h := &Hippodrome{
		id:     uuid.New().String(),
		horses: slices.Clone(horses),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// ID returns the race identifier used in logs and traces.
func (h *Hippodrome) ID() string { return h.id }

// Round returns the number of rounds completed so far.
func (h *Hippodrome) Round() int { return h.round }

// Horses returns the horses in construction order.
// The returned slice is a fresh copy; modifying it does not affect the race.
func (h *Hippodrome) Horses() []*entity.Horse {
	return slices.Clone(h.horses)
}

// Move advances every horse exactly once, one goroutine per horse, and returns
// when all of them are done. A panic raised while advancing a horse (for example
// by its randomizer) aborts the round with an error wrapping ErrAdvanceFailed.
// The context is checked before the round starts; a started round is not interrupted.
func (h *Hippodrome) Move(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var eg errgroup.Group
	for i, horse := range h.horses {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: #%d %q: %v", ErrAdvanceFailed, i, horse.Name(), r)
				}
			}()
			horse.Move()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	h.round++
	return nil
}

// Winner returns the horse with the greatest distance.
// Ties go to the horse that comes first in construction order.
func (h *Hippodrome) Winner() (*entity.Horse, error) {
	if len(h.horses) == 0 {
		return nil, ErrInvalidState
	}

	winner := h.horses[0]
	for _, horse := range h.horses[1:] {
		if horse.Distance() > winner.Distance() {
			winner = horse
		}
	}
	return winner, nil
}

// Standings returns the horses ordered by distance, leader first.
// Horses with equal distance keep their construction order.
func (h *Hippodrome) Standings() []*entity.Horse {
	standings := slices.Clone(h.horses)
	slices.SortStableFunc(standings, func(a, b *entity.Horse) int {
		return cmp.Compare(b.Distance(), a.Distance())
	})
	return standings
}
