package analysis

import (
	"errors"
	"math"
	"testing"

	"git.lost.host/meutraa/fluxbeat/internal/game"
	"git.lost.host/meutraa/fluxbeat/internal/testdata"
)

func TestNewAnalyzerRejectsFrameSize(t *testing.T) {
	for _, size := range []int{-2048, 0, 1, 3, 1000, 2047} {
		if _, err := NewAnalyzer(size, Rect); !errors.Is(err, game.ErrInvalidConfig) {
			t.Log("frame size", size, "err", err)
			t.Fail()
		}
	}
	if _, err := NewAnalyzer(2048, Hann); nil != err {
		t.Fatal(err)
	}
}

func TestSpectraDropsIncompleteFrame(t *testing.T) {
	a, _ := NewAnalyzer(256, Rect)
	s := a.Spectra(make([]float64, 256*3+100))
	if s.Len() != 3 {
		t.Fatalf("expected 3 frames, got %v", s.Len())
	}
	count := 0
	for spectrum, ok := s.Next(); ok; spectrum, ok = s.Next() {
		if len(spectrum) != a.Bins() {
			t.Fatalf("expected %v bins, got %v", a.Bins(), len(spectrum))
		}
		count++
	}
	if count != 3 {
		t.Fatalf("expected 3 spectra, got %v", count)
	}
	if _, ok := s.Next(); ok {
		t.Fatal("exhausted iterator yielded again")
	}
}

func TestSpectrumPeaksAtToneBin(t *testing.T) {
	const size, rate = 1024, 8000.0
	// bin 64 is exactly 500 Hz
	hz := 64 * rate / size
	a, _ := NewAnalyzer(size, Rect)
	spectrum, ok := a.Spectra(testdata.Tone(size, rate, hz)).Next()
	if !ok {
		t.Fatal("expected one frame")
	}
	best := 0
	for i, m := range spectrum {
		if m < 0 {
			t.Fatalf("negative magnitude %v at bin %v", m, i)
		}
		if m > spectrum[best] {
			best = i
		}
	}
	if best != 64 {
		t.Fatalf("expected peak at bin 64, got %v", best)
	}
	// A unit sine has magnitude N/2 in its bin
	if math.Abs(spectrum[64]-size/2) > 1e-6 {
		t.Fatalf("expected magnitude %v, got %v", size/2, spectrum[64])
	}
}

func TestSpectraDeterministic(t *testing.T) {
	samples := testdata.Bursts(8, 512, 7, 2, 5)
	for _, w := range []Window{Rect, Hann} {
		a, _ := NewAnalyzer(512, w)
		p, q := a.Spectra(samples), a.Spectra(samples)
		for {
			x, okx := p.Next()
			y, oky := q.Next()
			if okx != oky {
				t.Fatal("iterators disagree on length")
			}
			if !okx {
				break
			}
			for i := range x {
				if x[i] != y[i] {
					t.Fatalf("bin %v differs: %v != %v", i, x[i], y[i])
				}
			}
		}
	}
}

func BenchmarkSpectra(b *testing.B) {
	a, _ := NewAnalyzer(2048, Hann)
	samples := testdata.Bursts(64, 2048, 1, 10, 20, 30)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		s := a.Spectra(samples)
		for _, ok := s.Next(); ok; _, ok = s.Next() {
		}
	}
}
