package game

import "time"

type EventKind int

const (
	NoteSpawned EventKind = iota
	NoteHit
	NoteMissed
)

func (k EventKind) String() string {
	switch k {
	case NoteSpawned:
		return "NoteSpawned"
	case NoteHit:
		return "NoteHit"
	case NoteMissed:
		return "NoteMissed"
	}
	return "Unknown"
}

// Event is emitted to the presentation layer for feedback.
type Event struct {
	Kind    EventKind
	Lane    int
	Tier    Tier          // Miss for NoteMissed
	Offset  time.Duration // Signed timing error of a hit
	Expired bool          // NoteMissed because the note left the hit zone unjudged
	Time    time.Duration // Session clock time
}

type Input struct {
	Lane    int
	HitTime time.Duration
}
