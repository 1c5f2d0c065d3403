package analysis

import (
	"fmt"
	"math/cmplx"

	"git.lost.host/meutraa/fluxbeat/internal/game"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
)

type DefaultAnalyzer struct {
	frameSize int
	window    []float64 // nil for a rectangular window
}

func NewAnalyzer(frameSize int, w Window) (*DefaultAnalyzer, error) {
	if frameSize < 2 || frameSize&(frameSize-1) != 0 {
		return nil, fmt.Errorf("%w: frame size must be a power of two, got %v", game.ErrInvalidConfig, frameSize)
	}
	a := &DefaultAnalyzer{frameSize: frameSize}
	if w == Hann {
		a.window = window.Hann(frameSize)
	}
	return a, nil
}

func (a *DefaultAnalyzer) FrameSize() int {
	return a.frameSize
}

// Bins is the length of every spectrum.
func (a *DefaultAnalyzer) Bins() int {
	return a.frameSize / 2
}

func (a *DefaultAnalyzer) Spectra(samples []float64) *Spectra {
	return &Spectra{
		analyzer: a,
		samples:  samples,
		fft:      fourier.NewFFT(a.frameSize),
		frame:    make([]float64, a.frameSize),
	}
}

// Spectra is a one-pass iterator over the frames of a sample buffer.
// A trailing incomplete frame is never yielded.
type Spectra struct {
	analyzer *DefaultAnalyzer
	samples  []float64
	pos      int

	// Each iterator owns its transform, so one analyzer can serve concurrent loads
	fft    *fourier.FFT
	frame  []float64
	coeffs []complex128
}

// Len is the number of complete frames in the buffer.
func (s *Spectra) Len() int {
	return len(s.samples) / s.analyzer.frameSize
}

// Next returns the spectrum of the next frame. The slice is owned by the caller.
func (s *Spectra) Next() ([]float64, bool) {
	n := s.analyzer.frameSize
	if s.pos+n > len(s.samples) {
		return nil, false
	}
	copy(s.frame, s.samples[s.pos:s.pos+n])
	s.pos += n
	if nil != s.analyzer.window {
		for i, w := range s.analyzer.window {
			s.frame[i] *= w
		}
	}

	s.coeffs = s.fft.Coefficients(s.coeffs, s.frame)
	spectrum := make([]float64, n/2)
	for i := range spectrum {
		spectrum[i] = cmplx.Abs(s.coeffs[i])
	}
	return spectrum, true
}
