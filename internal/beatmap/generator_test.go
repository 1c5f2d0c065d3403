package beatmap

import (
	"context"
	"errors"
	"testing"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/analysis"
	"git.lost.host/meutraa/fluxbeat/internal/audio"
	"git.lost.host/meutraa/fluxbeat/internal/onset"
	"git.lost.host/meutraa/fluxbeat/internal/testdata"
)

type fakeDecoder struct {
	pcm *audio.PCM
	err error
}

func (d *fakeDecoder) Decode(ctx context.Context, src audio.Source) (*audio.PCM, error) {
	return d.pcm, d.err
}

func newGenerator(t *testing.T, d audio.Decoder) *Generator {
	t.Helper()
	a, err := analysis.NewAnalyzer(2048, analysis.Rect)
	if nil != err {
		t.Fatal(err)
	}
	det, err := onset.NewDetector(500)
	if nil != err {
		t.Fatal(err)
	}
	b, err := NewBuilder(4, &Fixed{Lanes: []int{0, 1, 2, 3}})
	if nil != err {
		t.Fatal(err)
	}
	return &Generator{Decoder: d, Analyzer: a, Detector: det, Builder: b}
}

func TestGenerateBursts(t *testing.T) {
	pcm := &audio.PCM{
		Samples:    testdata.Bursts(40, 2048, 3, 5, 12, 30),
		SampleRate: 8000,
		Sum:        "abc",
	}
	g := newGenerator(t, &fakeDecoder{pcm: pcm})
	track, err := g.Generate(context.Background(), audio.FromBytes("x.wav", nil))
	if nil != err {
		t.Fatal(err)
	}
	// Bursts begin in frames 5, 12 and 30, entered from flux indexes 4, 11 and 29
	expected := []time.Duration{
		FrameTime(4, 8000, 2048),
		FrameTime(11, 8000, 2048),
		FrameTime(29, 8000, 2048),
	}
	bm := track.Beatmap
	if bm.Len() != len(expected) {
		t.Fatalf("expected %v events, got %v", len(expected), bm.Events())
	}
	for i, e := range expected {
		if bm.At(i).Time != e || bm.At(i).Lane != i {
			t.Log("event   ", bm.At(i))
			t.Log("expected", e, i)
			t.Fail()
		}
	}
	if track.Sum != "abc" || len(track.Flux) != 39 || track.Duration != 10240*time.Millisecond {
		t.Log(track.Sum, len(track.Flux), track.Duration)
		t.Fail()
	}
}

func TestGenerateSilenceIsEmpty(t *testing.T) {
	pcm := &audio.PCM{Samples: testdata.Silence(2048 * 10), SampleRate: 8000}
	g := newGenerator(t, &fakeDecoder{pcm: pcm})
	if _, err := g.Generate(context.Background(), audio.Source{}); !errors.Is(err, ErrEmptyBeatmap) {
		t.Fatalf("expected ErrEmptyBeatmap, got %v", err)
	}
}

func TestGenerateDecodeFailure(t *testing.T) {
	g := newGenerator(t, &fakeDecoder{err: audio.ErrDecodeFailure})
	if _, err := g.Generate(context.Background(), audio.Source{}); !errors.Is(err, audio.ErrDecodeFailure) {
		t.Fatalf("expected ErrDecodeFailure, got %v", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	pcm := &audio.PCM{Samples: testdata.Bursts(10, 2048, 1, 3), SampleRate: 8000}
	g := newGenerator(t, &fakeDecoder{pcm: pcm})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Generate(ctx, audio.Source{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
