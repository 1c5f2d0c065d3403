package session

import (
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

type NoteView struct {
	Lane     int
	Position float64 // 0 at the spawn zone, 1 at the hit zone centre
	Offset   time.Duration
}

// Frame is everything the presentation needs to draw one frame.
type Frame struct {
	State  game.State
	Time   time.Duration
	LeadIn time.Duration
	Lanes  int
	Notes  []NoteView
	Score  game.Score
}

func (s *Session) Frame() Frame {
	f := Frame{
		State:  s.state,
		Time:   s.clock.Now(),
		LeadIn: s.leadIn,
		Score:  s.tally.Score(),
	}
	if nil != s.track {
		f.Lanes = s.track.Beatmap.Lanes()
	}
	track := s.scheduler.Track()
	live := s.scheduler.Live()
	f.Notes = make([]NoteView, len(live))
	for i, n := range live {
		f.Notes[i] = NoteView{Lane: n.Lane, Position: track.Normalized(n), Offset: n.Offset}
	}
	return f
}
