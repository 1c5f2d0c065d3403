package game

// Tier is a scoring category, ordered tightest first.
type Tier int

const (
	Perfect Tier = iota
	Good
	Okay
	Miss
)

func (t Tier) String() string {
	switch t {
	case Perfect:
		return "Perfect"
	case Good:
		return "Good"
	case Okay:
		return "Okay"
	case Miss:
		return "Miss"
	}
	return "Unknown"
}

// Points awarded per tier
var Points = map[Tier]int64{
	Perfect: 300,
	Good:    100,
	Okay:    50,
	Miss:    0,
}
