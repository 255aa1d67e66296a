// Package roster loads the list of horses entering a race from YAML.
//
// A roster file looks like:
//
//	horses:
//	  - name: Bucephalus
//	    speed: 2.4
//	  - name: Cherry
//	    speed: 3
//	    distance: 0
//
// Each call to Horses builds fresh horses, so one roster can seed many races.
package roster

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"hippodrome/internal/domain/entity"
)

// Entry is one horse as written in a roster file.
// Name is a pointer so that a missing or null name can be told apart from a blank one.
type Entry struct {
	Name     *string `yaml:"name"`
	Speed    float64 `yaml:"speed"`
	Distance float64 `yaml:"distance"`
}

// Roster is a decoded roster file.
type Roster struct {
	Entries []Entry `yaml:"horses"`
}

// Decode reads a roster document from r.
// Unknown fields are rejected to catch typos such as "sped".
func Decode(r io.Reader) (*Roster, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var roster Roster
	if err := dec.Decode(&roster); err != nil {
		if errors.Is(err, io.EOF) {
			return &roster, nil
		}
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return &roster, nil
}

// Load reads and decodes the roster file at path.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data))
}

// Horses validates every entry and builds a new horse for each.
// The first invalid entry stops the build; its *entity.ArgumentError is
// wrapped with the entry position and still matches entity.ErrInvalidArgument.
// A roster without entries yields an empty, non-nil slice.
func (r *Roster) Horses(opts ...entity.HorseOption) ([]*entity.Horse, error) {
	horses := make([]*entity.Horse, 0, len(r.Entries))
	for i, e := range r.Entries {
		hopts := append([]entity.HorseOption{entity.WithDistance(e.Distance)}, opts...)
		h, err := entity.NewHorseFromNullable(e.Name, e.Speed, hopts...)
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i+1, err)
		}
		horses = append(horses, h)
	}
	return horses, nil
}

// Default returns the classic seven-horse field.
func Default() *Roster {
	return &Roster{Entries: []Entry{
		entry("Bucephalus", 2.4),
		entry("Ace of Spades", 2.5),
		entry("Zephyr", 2.6),
		entry("Blaze", 2.7),
		entry("Lobster", 2.8),
		entry("Pegasus", 2.9),
		entry("Cherry", 3),
	}}
}

func entry(name string, speed float64) Entry {
	return Entry{Name: &name, Speed: speed}
}
