package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
	"git.lost.host/meutraa/fluxbeat/internal/schedule"
)

// LiveSet is the set of notes that can still be judged, see schedule.Scheduler.
type LiveSet interface {
	// InLane returns live notes, most recently spawned first
	InLane(lane int) []*game.Note
	Remove(n *game.Note)
}

type Judgement struct {
	Note     *game.Note // nil on a miss
	Tier     game.Tier
	Distance float64       // From the hit zone centre
	Offset   time.Duration // Signed, positive when late
}

type Judge interface {
	// Apply resolves an input on lane against the live notes, consuming at
	// most one note and recording the result in tally.
	Apply(lane int, live LiveSet, tally *Tally) Judgement
}

type DefaultJudge struct {
	Track  schedule.Track
	Window HitWindow
}

func (j *DefaultJudge) Apply(lane int, live LiveSet, tally *Tally) Judgement {
	for _, n := range live.InLane(lane) {
		if !n.Alive || !j.Track.InZone(n) {
			continue
		}
		d := math.Abs(j.Track.Position(n))
		tier, ok := j.Window.Classify(d)
		if !ok {
			continue
		}
		live.Remove(n)
		tally.Hit(tier, n.Offset)
		return Judgement{Note: n, Tier: tier, Distance: d, Offset: n.Offset}
	}
	// Too early, too late and an empty lane are all the same miss
	tally.Miss()
	return Judgement{Tier: game.Miss, Distance: math.Inf(1)}
}
