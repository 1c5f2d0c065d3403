package score

import (
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

// Tally accumulates the score of one session.
type Tally struct {
	score   game.Score
	offsets []time.Duration
}

func (t *Tally) Hit(tier game.Tier, offset time.Duration) {
	switch tier {
	case game.Perfect:
		t.score.PerfectCount++
	case game.Good:
		t.score.GoodCount++
	case game.Okay:
		t.score.OkayCount++
	default:
		t.Miss()
		return
	}
	t.score.NoteCount++
	t.score.Total += game.Points[tier]
	t.offsets = append(t.offsets, offset)
}

func (t *Tally) Miss() {
	t.score.NoteCount++
	t.score.MissCount++
}

func (t *Tally) Score() game.Score {
	return t.score
}

// Offsets are the signed timing errors of every hit, in order.
func (t *Tally) Offsets() []time.Duration {
	return t.offsets
}

func (t *Tally) Reset() {
	t.score = game.Score{}
	t.offsets = nil
}
