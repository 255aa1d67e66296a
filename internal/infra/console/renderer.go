// Package console renders race progress as text.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"hippodrome/internal/domain/entity"
)

// Renderer draws each horse as a trail of dots, one dot per unit of distance,
// followed by its name. It implements race.Observer.
type Renderer struct {
	mu sync.Mutex
	w  io.Writer
	// ByStandings prints the leader first instead of keeping the start order.
	ByStandings bool
	order       []*entity.Horse
	err         error
}

// NewRenderer returns a renderer writing to w. horses fixes the print order
// used when ByStandings is false.
func NewRenderer(w io.Writer, horses []*entity.Horse) *Renderer {
	return &Renderer{w: w, order: horses}
}

// OnRound prints one line per horse followed by a blank line.
func (r *Renderer) OnRound(_ int, standings []*entity.Horse) {
	horses := r.order
	if r.ByStandings || len(horses) == 0 {
		horses = standings
	}

	var b strings.Builder
	for _, h := range horses {
		b.WriteString(Track(h))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	r.write(b.String())
}

// OnFinish announces the winner.
func (r *Renderer) OnFinish(winner *entity.Horse) {
	r.write(fmt.Sprintf("The winner is %s!\n", winner.Name()))
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Renderer) write(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

// MaxTrackDots caps the trail printed for a single horse.
const MaxTrackDots = 1000

// Track renders a single horse line: one dot per whole unit of distance,
// at most MaxTrackDots, followed by the name.
func Track(h *entity.Horse) string {
	return strings.Repeat(".", trackDots(h.Distance())) + h.Name()
}

func trackDots(distance float64) int {
	switch {
	case !(distance >= 0):
		return 0
	case distance >= MaxTrackDots:
		return MaxTrackDots
	default:
		return int(distance)
	}
}
