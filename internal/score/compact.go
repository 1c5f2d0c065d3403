package score

import (
	"sort"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

type InputsCompact struct {
	Lane  int
	Times []time.Duration
}

// compactInputs groups inputs by lane, keeping their order within a lane.
func compactInputs(inputs []game.Input) []InputsCompact {
	laneCount := 0
	for _, i := range inputs {
		if i.Lane+1 > laneCount {
			laneCount = i.Lane + 1
		}
	}
	ins := make([]InputsCompact, laneCount)
	for l := range ins {
		ins[l] = InputsCompact{Lane: l, Times: []time.Duration{}}
	}
	for _, i := range inputs {
		ins[i.Lane].Times = append(ins[i.Lane].Times, i.HitTime)
	}
	return ins
}

// uncompactInputs restores inputs in time order. Inputs at the same time
// keep lane order.
func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Lane: i.Lane, HitTime: t})
		}
	}
	sortInputs(ins)
	return ins
}

func sortInputs(ins []game.Input) {
	sort.SliceStable(ins, func(i, j int) bool {
		return ins[i].HitTime < ins[j].HitTime
	})
}
