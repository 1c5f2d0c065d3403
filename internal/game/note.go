package game

import (
	"time"
)

type Note struct {
	Lane      int
	SpawnTime time.Duration // Clock time the note was spawned at
	Time      time.Duration // The time the note should be hit

	// This is state
	Offset time.Duration // Clock time minus Time, negative while approaching
	Alive  bool          // Cleared once the note is hit or has scrolled past the hit zone
}

// Position is the signed distance of the note from the hit zone centre.
func (n *Note) Position(speed float64) float64 {
	return n.Offset.Seconds() * speed
}
