package game

import (
	"fmt"
	"time"
)

type BeatEvent struct {
	Time time.Duration // When the note should be hit, relative to the start of the track
	Lane int
}

// Beatmap is an ordered, read-only sequence of beat events.
// Events are sorted by Time and every lane is within [0, Lanes).
type Beatmap struct {
	events []BeatEvent
	lanes  int
}

// NewBeatmap copies events into a Beatmap, rejecting unordered times or
// lanes outside [0, lanes).
func NewBeatmap(events []BeatEvent, lanes int) (*Beatmap, error) {
	if lanes < 1 {
		return nil, fmt.Errorf("beatmap needs at least one lane, got %v", lanes)
	}
	evs := make([]BeatEvent, len(events))
	for i, e := range events {
		if e.Lane < 0 || e.Lane >= lanes {
			return nil, fmt.Errorf("event %v: lane %v out of range [0, %v)", i, e.Lane, lanes)
		}
		if e.Time < 0 {
			return nil, fmt.Errorf("event %v: negative time %v", i, e.Time)
		}
		if i > 0 && e.Time < events[i-1].Time {
			return nil, fmt.Errorf("event %v: time %v before previous %v", i, e.Time, events[i-1].Time)
		}
		evs[i] = e
	}
	return &Beatmap{events: evs, lanes: lanes}, nil
}

func (b *Beatmap) Len() int {
	return len(b.events)
}

func (b *Beatmap) At(i int) BeatEvent {
	return b.events[i]
}

func (b *Beatmap) Lanes() int {
	return b.lanes
}

// Events returns a copy of the underlying events.
func (b *Beatmap) Events() []BeatEvent {
	evs := make([]BeatEvent, len(b.events))
	copy(evs, b.events)
	return evs
}
