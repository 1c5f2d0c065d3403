package schedule

import (
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

// Track is the geometry notes travel along. Distances are measured from the
// hit zone centre, negative towards the spawn zone.
type Track struct {
	Speed         float64 // Distance per second
	SpawnDistance float64 // From the spawn zone to the hit zone centre
	HitZone       float64 // Half width of the hit zone
}

func NewTrack(speed, spawnDistance, hitZone float64) (Track, error) {
	t := Track{Speed: speed, SpawnDistance: spawnDistance, HitZone: hitZone}
	for _, v := range []float64{speed, spawnDistance, hitZone} {
		if !(v > 0) || math.IsInf(v, 1) {
			return Track{}, fmt.Errorf("%w: track %+v must be positive and finite", game.ErrInvalidConfig, t)
		}
	}
	if hitZone >= spawnDistance {
		return Track{}, fmt.Errorf("%w: hit zone %v reaches the spawn zone %v", game.ErrInvalidConfig, hitZone, spawnDistance)
	}
	return t, nil
}

// TravelTime is the lead a note needs to reach the hit zone centre on time.
func (t Track) TravelTime() time.Duration {
	return time.Duration(math.Round(t.SpawnDistance / t.Speed * float64(time.Second)))
}

func (t Track) Position(n *game.Note) float64 {
	return n.Position(t.Speed)
}

// Normalized is 0 at the spawn zone and 1 at the hit zone centre.
func (t Track) Normalized(n *game.Note) float64 {
	return 1 + t.Position(n)/t.SpawnDistance
}

func (t Track) InZone(n *game.Note) bool {
	return math.Abs(t.Position(n)) <= t.HitZone
}

// Expired notes have scrolled past the far edge of the hit zone.
func (t Track) Expired(n *game.Note) bool {
	return t.Position(n) > t.HitZone
}
