package game

type Score struct {
	Total        int64
	NoteCount    uint64 // Judgements made, hits and misses
	PerfectCount uint64
	GoodCount    uint64
	OkayCount    uint64
	MissCount    uint64
}

// Weighted is the total the tier counts are worth under Points.
func (s Score) Weighted() int64 {
	return int64(s.PerfectCount)*Points[Perfect] +
		int64(s.GoodCount)*Points[Good] +
		int64(s.OkayCount)*Points[Okay]
}

func (s Score) Count(t Tier) uint64 {
	switch t {
	case Perfect:
		return s.PerfectCount
	case Good:
		return s.GoodCount
	case Okay:
		return s.OkayCount
	case Miss:
		return s.MissCount
	}
	return 0
}
