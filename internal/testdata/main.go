package testdata

import (
	"encoding/json"
	"math"
	"math/rand"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

// Silence is n zero samples.
func Silence(n int) []float64 {
	return make([]float64, n)
}

// Impulse is frames of silence with a single full scale sample in the middle of frame k.
func Impulse(frames, frameSize, k int) []float64 {
	samples := make([]float64, frames*frameSize)
	samples[k*frameSize+frameSize/2] = 1
	return samples
}

// Bursts is a quiet noise bed with a loud noise burst starting at each of the given frames.
func Bursts(frames, frameSize int, seed int64, starts ...int) []float64 {
	r := rand.New(rand.NewSource(seed))
	samples := make([]float64, frames*frameSize)
	for i := range samples {
		samples[i] = 0.001 * (r.Float64()*2 - 1)
	}
	for _, k := range starts {
		for i := k * frameSize; i < (k+1)*frameSize && i < len(samples); i++ {
			samples[i] = 0.8 * (r.Float64()*2 - 1)
		}
	}
	return samples
}

// Tone is a sine wave.
func Tone(n int, sampleRate, hz float64) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * hz * float64(i) / sampleRate)
	}
	return samples
}

type event struct {
	Seconds float64
	Lane    int
}

// GetBeatmap is a short hand written four lane beatmap.
func GetBeatmap() (*game.Beatmap, error) {
	var events []event
	if err := json.Unmarshal([]byte(data), &events); nil != err {
		return nil, err
	}
	evs := make([]game.BeatEvent, len(events))
	for i, e := range events {
		evs[i] = game.BeatEvent{
			Time: time.Duration(math.Round(e.Seconds * float64(time.Second))),
			Lane: e.Lane,
		}
	}
	return game.NewBeatmap(evs, 4)
}

const data = `[
	{"Seconds": 2.048, "Lane": 0},
	{"Seconds": 2.56, "Lane": 3},
	{"Seconds": 3.072, "Lane": 1},
	{"Seconds": 3.072, "Lane": 2},
	{"Seconds": 4.096, "Lane": 0},
	{"Seconds": 4.352, "Lane": 0},
	{"Seconds": 5.12, "Lane": 2}
]`
