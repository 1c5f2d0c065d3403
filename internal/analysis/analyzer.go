package analysis

type Window int

const (
	Rect Window = iota
	Hann
)

func ParseWindow(s string) Window {
	if s == "hann" {
		return Hann
	}
	return Rect
}

type Analyzer interface {
	// Spectra slices samples into consecutive frames and lazily yields the
	// magnitude spectrum of each complete frame.
	Spectra(samples []float64) *Spectra
	FrameSize() int
}
