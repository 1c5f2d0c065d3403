package beatmap

import (
	"context"
	"math"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/analysis"
	"git.lost.host/meutraa/fluxbeat/internal/audio"
	"git.lost.host/meutraa/fluxbeat/internal/game"
	"git.lost.host/meutraa/fluxbeat/internal/onset"
	"go.uber.org/zap"
)

type Track struct {
	Beatmap  *game.Beatmap
	Sum      string        // Hash of the encoded audio
	Duration time.Duration // Length of the decoded audio
	Flux     []float64
}

// Generator runs the whole offline pipeline from an encoded song to a beatmap.
type Generator struct {
	Decoder  audio.Decoder
	Analyzer analysis.Analyzer
	Detector *onset.Detector
	Builder  *Builder
	Logger   *zap.Logger
}

func (g *Generator) Generate(ctx context.Context, src audio.Source) (*Track, error) {
	logger := g.Logger
	if nil == logger {
		logger = zap.NewNop()
	}
	start := time.Now()

	pcm, err := g.Decoder.Decode(ctx, src)
	if nil != err {
		return nil, err
	}
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	return g.FromPCM(ctx, pcm, logger.With(zap.Stringer("source", src), zap.Duration("decode", time.Since(start))))
}

// FromPCM skips decoding, for audio that is already in memory.
func (g *Generator) FromPCM(ctx context.Context, pcm *audio.PCM, logger *zap.Logger) (*Track, error) {
	if nil == logger {
		logger = zap.NewNop()
	}
	frameSize := g.Analyzer.FrameSize()
	flux, peaks := g.Detector.Detect(g.Analyzer.Spectra(pcm.Samples))
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	beatmap, err := g.Builder.Build(peaks, pcm.SampleRate, frameSize)
	if nil != err {
		logger.Info("no beatmap", zap.Int("flux", len(flux)), zap.Error(err))
		return nil, err
	}

	duration := time.Duration(math.Round(float64(len(pcm.Samples)) / float64(pcm.SampleRate) * float64(time.Second)))
	logger.Info("generated beatmap",
		zap.Int("samples", len(pcm.Samples)),
		zap.Int("sample_rate", pcm.SampleRate),
		zap.Int("events", beatmap.Len()),
		zap.Duration("duration", duration),
	)
	return &Track{
		Beatmap:  beatmap,
		Sum:      pcm.Sum,
		Duration: duration,
		Flux:     flux,
	}, nil
}
