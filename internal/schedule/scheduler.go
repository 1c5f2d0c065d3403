package schedule

import (
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

// Scheduler turns beat events into live notes as the clock reaches them.
// Events are consumed through a single cursor, so each spawns exactly once.
type Scheduler struct {
	track   Track
	beatmap *game.Beatmap
	cursor  int
	live    []*game.Note // In spawn order
}

func NewScheduler(track Track) *Scheduler {
	return &Scheduler{track: track}
}

func (s *Scheduler) Track() Track {
	return s.track
}

// Load replaces the beatmap and clears all state.
func (s *Scheduler) Load(b *game.Beatmap) {
	s.beatmap = b
	s.Reset()
}

func (s *Scheduler) Reset() {
	s.cursor = 0
	s.live = nil
}

func (s *Scheduler) Cursor() int {
	return s.cursor
}

// Done reports whether every event has spawned and left the field.
func (s *Scheduler) Done() bool {
	return nil == s.beatmap || (s.cursor >= s.beatmap.Len() && len(s.live) == 0)
}

// Tick spawns the notes due at now, moves every live note to now, then
// removes the notes that passed the hit zone unjudged.
func (s *Scheduler) Tick(now time.Duration) (spawned, expired []*game.Note) {
	if nil == s.beatmap {
		return nil, nil
	}
	travel := s.track.TravelTime()
	for s.cursor < s.beatmap.Len() {
		e := s.beatmap.At(s.cursor)
		if now < e.Time-travel {
			break
		}
		n := &game.Note{
			Lane:      e.Lane,
			SpawnTime: now,
			Time:      e.Time,
			Alive:     true,
		}
		s.live = append(s.live, n)
		spawned = append(spawned, n)
		s.cursor++
	}

	live := s.live[:0]
	for _, n := range s.live {
		n.Offset = now - n.Time
		if s.track.Expired(n) {
			n.Alive = false
			expired = append(expired, n)
			continue
		}
		live = append(live, n)
	}
	s.live = live
	return spawned, expired
}

// Live returns the live notes, oldest first.
func (s *Scheduler) Live() []*game.Note {
	return s.live
}

// InLane returns the live notes of lane, most recently spawned first.
func (s *Scheduler) InLane(lane int) []*game.Note {
	notes := []*game.Note{}
	for i := len(s.live) - 1; i >= 0; i-- {
		if s.live[i].Lane == lane {
			notes = append(notes, s.live[i])
		}
	}
	return notes
}

// Remove takes a judged note out of the live set.
func (s *Scheduler) Remove(n *game.Note) {
	for i, l := range s.live {
		if l == n {
			n.Alive = false
			s.live = append(s.live[:i], s.live[i+1:]...)
			return
		}
	}
}
