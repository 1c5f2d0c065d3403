package onset

import (
	"fmt"
	"math"

	"git.lost.host/meutraa/fluxbeat/internal/game"
	"gonum.org/v1/gonum/floats"
)

// SpectrumSource yields spectra in frame order, see analysis.Spectra.
type SpectrumSource interface {
	Next() ([]float64, bool)
}

type Detector struct {
	threshold float64
}

func NewDetector(threshold float64) (*Detector, error) {
	if !(threshold > 0) || math.IsInf(threshold, 1) {
		return nil, fmt.Errorf("%w: flux threshold must be positive and finite, got %v", game.ErrInvalidConfig, threshold)
	}
	return &Detector{threshold: threshold}, nil
}

func (d *Detector) Threshold() float64 {
	return d.threshold
}

// Flux sums the increases in magnitude from prev to cur, ignoring decreases.
// scratch must be at least as long as cur.
func Flux(prev, cur, scratch []float64) float64 {
	diff := floats.SubTo(scratch[:len(cur)], cur, prev)
	flux := 0.0
	for _, v := range diff {
		if v > 0 {
			flux += v
		}
	}
	return flux
}

// Flux consumes src and returns one value per pair of consecutive spectra.
// flux[i] is the onset energy going from frame i to frame i+1.
func (d *Detector) Flux(src SpectrumSource) []float64 {
	flux := []float64{}
	prev, ok := src.Next()
	if !ok {
		return flux
	}
	scratch := make([]float64, len(prev))
	for cur, ok := src.Next(); ok; cur, ok = src.Next() {
		flux = append(flux, Flux(prev, cur, scratch))
		prev = cur
	}
	return flux
}

// Peaks returns the indexes of flux values above the threshold that rise
// from their predecessor. Index 0 has no predecessor and is never a peak.
// The successor is not consulted, so a rising run of values above the
// threshold yields a peak at every step.
func (d *Detector) Peaks(flux []float64) []int {
	peaks := []int{}
	for i := 1; i < len(flux); i++ {
		if flux[i] > d.threshold && flux[i] > flux[i-1] {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

func (d *Detector) Detect(src SpectrumSource) (flux []float64, peaks []int) {
	flux = d.Flux(src)
	return flux, d.Peaks(flux)
}
