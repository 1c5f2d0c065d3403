package session

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/beatmap"
	"git.lost.host/meutraa/fluxbeat/internal/game"
)

// Replay plays inputs back against track and returns the score they earn.
// Notes only depend on the clock time they are observed at, so stepping the
// clock by step instead of the original frame times gives the same result.
func Replay(track *beatmap.Track, inputs []game.Input, opts Options, step time.Duration) (game.Score, error) {
	if step <= 0 {
		return game.Score{}, fmt.Errorf("%w: replay step %v", game.ErrInvalidConfig, step)
	}
	s, err := New(opts)
	if nil != err {
		return game.Score{}, err
	}
	s.Start(track)
	s.Tick(s.leadIn)

	for _, in := range inputs {
		s.advanceTo(in.HitTime, step)
		s.HandleInput(in.Lane)
	}
	for !s.scheduler.Done() {
		s.Tick(step)
	}
	s.AudioEnded()
	return s.Score(), nil
}

func (s *Session) advanceTo(t, step time.Duration) {
	for s.clock.Now() < t {
		d := t - s.clock.Now()
		if d > step {
			d = step
		}
		s.Tick(d)
	}
}
