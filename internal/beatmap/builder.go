package beatmap

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

// ErrEmptyBeatmap is returned when no onsets were detected. A session cannot start without events.
var ErrEmptyBeatmap = errors.New("no onsets detected")

// LaneSource picks lanes, *rand.Rand satisfies it.
type LaneSource interface {
	Intn(n int) int
}

// Fixed cycles through its lanes in order, for reproducible beatmaps.
type Fixed struct {
	Lanes []int
	i     int
}

func (f *Fixed) Intn(n int) int {
	if len(f.Lanes) == 0 {
		return 0
	}
	l := f.Lanes[f.i%len(f.Lanes)] % n
	f.i++
	return l
}

type Builder struct {
	lanes int

	mu  sync.Mutex
	rng LaneSource
}

func NewBuilder(lanes int, rng LaneSource) (*Builder, error) {
	if lanes < 1 {
		return nil, fmt.Errorf("%w: need at least one lane, got %v", game.ErrInvalidConfig, lanes)
	}
	if nil == rng {
		return nil, fmt.Errorf("%w: no lane source", game.ErrInvalidConfig)
	}
	return &Builder{lanes: lanes, rng: rng}, nil
}

func (b *Builder) Lanes() int {
	return b.lanes
}

// FrameTime converts a flux index into seconds using the analysis frame rate.
func FrameTime(i, sampleRate, frameSize int) time.Duration {
	framesPerSecond := float64(sampleRate) / float64(frameSize)
	return time.Duration(math.Round(float64(i) / framesPerSecond * float64(time.Second)))
}

// Build places a note on a random lane at the time of every peak.
// Peaks must be in increasing order, as onset.Detector returns them.
func (b *Builder) Build(peaks []int, sampleRate, frameSize int) (*game.Beatmap, error) {
	if sampleRate <= 0 || frameSize <= 0 {
		return nil, fmt.Errorf("%w: sample rate %v, frame size %v", game.ErrInvalidConfig, sampleRate, frameSize)
	}
	if len(peaks) == 0 {
		return nil, ErrEmptyBeatmap
	}

	b.mu.Lock()
	events := make([]game.BeatEvent, len(peaks))
	for i, p := range peaks {
		events[i] = game.BeatEvent{
			Time: FrameTime(p, sampleRate, frameSize),
			Lane: b.rng.Intn(b.lanes),
		}
	}
	b.mu.Unlock()

	return game.NewBeatmap(events, b.lanes)
}
