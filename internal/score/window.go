package score

import (
	"fmt"
	"math"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

// HitWindow maps the distance of a note from the hit zone centre to a tier.
// Okay covers everything up to the edge of the hit zone.
type HitWindow struct {
	Perfect float64
	Good    float64
	Okay    float64
}

func NewHitWindow(perfect, good, okay float64) (HitWindow, error) {
	w := HitWindow{Perfect: perfect, Good: good, Okay: okay}
	if !(perfect > 0) || !(good > perfect) || !(okay >= good) || math.IsInf(okay, 1) {
		return HitWindow{}, fmt.Errorf("%w: hit window %+v must satisfy 0 < perfect < good <= okay", game.ErrInvalidConfig, w)
	}
	return w, nil
}

// Classify returns the tightest tier containing distance, or false when it
// is outside every tier.
func (w HitWindow) Classify(distance float64) (game.Tier, bool) {
	switch {
	case distance < w.Perfect:
		return game.Perfect, true
	case distance < w.Good:
		return game.Good, true
	case distance <= w.Okay:
		return game.Okay, true
	}
	return game.Miss, false
}
