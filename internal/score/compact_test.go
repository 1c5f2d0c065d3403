package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

var compactTests = []struct {
	inputs  []game.Input
	compact []InputsCompact
}{
	{[]game.Input{}, []InputsCompact{}},
	{[]game.Input{{Lane: 0, HitTime: 100}}, []InputsCompact{
		{Lane: 0, Times: []time.Duration{100}},
	}},
	{[]game.Input{{Lane: 0, HitTime: 100}, {Lane: 3, HitTime: 200}}, []InputsCompact{
		{Lane: 0, Times: []time.Duration{100}},
		{Lane: 1, Times: []time.Duration{}},
		{Lane: 2, Times: []time.Duration{}},
		{Lane: 3, Times: []time.Duration{200}},
	}},
	{[]game.Input{{Lane: 1, HitTime: 1}, {Lane: 0, HitTime: 2}, {Lane: 1, HitTime: 2}}, []InputsCompact{
		{Lane: 0, Times: []time.Duration{2}},
		{Lane: 1, Times: []time.Duration{1, 2}},
	}},
}

func equalCompact(p, q []InputsCompact) bool {
	if len(p) != len(q) {
		return false
	}
	for i := 0; i < len(p); i++ {
		pi, qi := p[i], q[i]
		if pi.Lane != qi.Lane {
			return false
		}
		if len(pi.Times) != len(qi.Times) {
			return false
		}
		for j := 0; j < len(pi.Times); j++ {
			if pi.Times[j] != qi.Times[j] {
				return false
			}
		}
	}
	return true
}

func TestCompactInputs(t *testing.T) {
	for _, test := range compactTests {
		out := compactInputs(test.inputs)
		if !equalCompact(out, test.compact) {
			t.Log("out     ", out)
			t.Log("expected", test.compact)
			t.Fail()
		}
	}
}

func TestUncompactInputs(t *testing.T) {
	for _, test := range compactTests {
		out := uncompactInputs(test.compact)
		if len(out) != len(test.inputs) {
			t.Log("out     ", out)
			t.Log("expected", test.inputs)
			t.Fail()
			continue
		}
		for i := range out {
			if out[i] != test.inputs[i] {
				t.Log("out     ", out)
				t.Log("expected", test.inputs)
				t.Fail()
				break
			}
		}
	}
}
