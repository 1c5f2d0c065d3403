package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/analysis"
	"git.lost.host/meutraa/fluxbeat/internal/audio"
	"git.lost.host/meutraa/fluxbeat/internal/beatmap"
	"git.lost.host/meutraa/fluxbeat/internal/config"
	"git.lost.host/meutraa/fluxbeat/internal/logging"
	"git.lost.host/meutraa/fluxbeat/internal/onset"
	"git.lost.host/meutraa/fluxbeat/internal/schedule"
	"git.lost.host/meutraa/fluxbeat/internal/score"
	"git.lost.host/meutraa/fluxbeat/internal/session"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	if err := config.Parse(args); nil != err {
		return err
	}

	logFile := *config.LogFile
	if logFile == "" && config.Command == "play" {
		logFile = "fluxbeat.log"
	}
	logger, err := logging.New(
		logging.WithLevel(*config.LogLevel),
		logging.WithDevelopment(*config.Development),
		logging.WithOutput(logFile),
		logging.WithFields(map[string]interface{}{"command": config.Command}),
	)
	if nil != err {
		return fmt.Errorf("unable to create logger: %w", err)
	}
	defer logger.Sync()

	seed := *config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src := audio.Parse(config.Source)
	switch config.Command {
	case "play":
		p := &Program{Logger: logger, seed: seed}
		if err := p.Init(ctx, src); nil != err {
			p.Deinit()
			return err
		}
		defer p.Deinit()
		return p.Run(ctx)
	case "map":
		return printBeatmap(ctx, logger, src, seed)
	case "history":
		return printHistory(ctx, logger, src)
	}
	return fmt.Errorf("unknown command %v", config.Command)
}

// currentSettings collects the flags a beatmap and its judging depend on.
func currentSettings() score.Settings {
	return score.Settings{
		Rate:          *config.Rate,
		FrameSize:     *config.FrameSize,
		Threshold:     *config.Threshold,
		Window:        *config.Window,
		Lanes:         *config.Lanes,
		Speed:         *config.Speed,
		SpawnDistance: *config.SpawnDistance,
		HitZone:       *config.HitZone,
		Perfect:       *config.Perfect,
		Good:          *config.Good,
	}
}

func newGenerator(logger *zap.Logger, seed int64, s score.Settings) (*beatmap.Generator, error) {
	analyzer, err := analysis.NewAnalyzer(s.FrameSize, analysis.ParseWindow(s.Window))
	if nil != err {
		return nil, err
	}
	detector, err := onset.NewDetector(s.Threshold)
	if nil != err {
		return nil, err
	}
	builder, err := beatmap.NewBuilder(s.Lanes, rand.New(rand.NewSource(seed)))
	if nil != err {
		return nil, err
	}
	return &beatmap.Generator{
		Decoder:  &audio.DefaultDecoder{SampleRate: s.Rate},
		Analyzer: analyzer,
		Detector: detector,
		Builder:  builder,
		Logger:   logger,
	}, nil
}

func sessionOptions(logger *zap.Logger, generator session.Generator, s score.Settings) (session.Options, error) {
	track, err := schedule.NewTrack(s.Speed, s.SpawnDistance, s.HitZone)
	if nil != err {
		return session.Options{}, err
	}
	window, err := score.NewHitWindow(s.Perfect, s.Good, s.HitZone)
	if nil != err {
		return session.Options{}, err
	}
	return session.Options{Track: track, Window: window, Generator: generator, Logger: logger}, nil
}

func printBeatmap(ctx context.Context, logger *zap.Logger, src audio.Source, seed int64) error {
	g, err := newGenerator(logger, seed, currentSettings())
	if nil != err {
		return err
	}
	track, err := g.Generate(ctx, src)
	if nil != err {
		return err
	}
	fmt.Printf("# %v\n# sum %v seed %v length %v\n", src, track.Sum, seed, track.Duration)
	for i, e := range track.Beatmap.Events() {
		fmt.Printf("%5v  %10.3f  %v\n", i, e.Time.Seconds(), e.Lane)
	}
	return nil
}

// printHistory replays every stored run of a song against the beatmap it was
// played on, regenerated from the run's own seed and settings.
func printHistory(ctx context.Context, logger *zap.Logger, src audio.Source) error {
	data, err := src.Read(ctx)
	if nil != err {
		return fmt.Errorf("unable to read %v: %w", src, err)
	}
	history, err := score.OpenHistory(*config.Database)
	if nil != err {
		return err
	}
	defer history.Close()

	runs, err := history.Load(audio.Sum(data))
	if nil != err {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded for", src)
		return nil
	}

	step := time.Duration(float64(time.Second) / *config.FPS)
	type key struct {
		seed     int64
		settings score.Settings
	}
	tracks := map[key]*beatmap.Track{}
	for _, run := range runs {
		if run.Settings == (score.Settings{}) {
			fmt.Printf("%v  %8v  (no settings recorded, not replayed)\n", run.When.Format(time.RFC3339), run.Score.Total)
			continue
		}
		k := key{seed: run.Seed, settings: run.Settings}
		track, ok := tracks[k]
		if !ok {
			g, err := newGenerator(logger, run.Seed, run.Settings)
			if nil != err {
				return err
			}
			track, err = g.Generate(ctx, audio.FromBytes(src.Name, data))
			if nil != err {
				return err
			}
			tracks[k] = track
		}

		opts, err := sessionOptions(logger, nil, run.Settings)
		if nil != err {
			return err
		}
		replayed, err := session.Replay(track, run.Inputs, opts, step)
		if nil != err {
			return err
		}
		if replayed != run.Score {
			logger.Warn("replay differs from the recorded score",
				zap.Time("when", run.When),
				zap.Int64("recorded", run.Score.Total),
				zap.Int64("replayed", replayed.Total),
			)
		}
		fmt.Printf("%v  %8v  %4v/%4v/%4v/%4v  (replayed %v)\n",
			run.When.Format(time.RFC3339), run.Score.Total,
			run.Score.PerfectCount, run.Score.GoodCount, run.Score.OkayCount, run.Score.MissCount,
			replayed.Total,
		)
	}
	return nil
}
