package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/audio"
	"git.lost.host/meutraa/fluxbeat/internal/beatmap"
	"git.lost.host/meutraa/fluxbeat/internal/clock"
	"git.lost.host/meutraa/fluxbeat/internal/game"
	"git.lost.host/meutraa/fluxbeat/internal/schedule"
	"git.lost.host/meutraa/fluxbeat/internal/score"
	"go.uber.org/zap"
)

// ErrLoadSuperseded is the outcome of a load abandoned for a newer session.
var ErrLoadSuperseded = fmt.Errorf("load superseded: %w", context.Canceled)

type Generator interface {
	Generate(ctx context.Context, src audio.Source) (*beatmap.Track, error)
}

type Options struct {
	Track     schedule.Track
	Window    score.HitWindow
	Generator Generator // Only needed by LoadSession
	Logger    *zap.Logger
}

// Session owns all mutable state of one play: the clock, the beatmap, the
// live notes and the score. It is not safe for concurrent use; Tick and the
// control methods must be called from the same goroutine.
type Session struct {
	state     game.State
	clock     clock.Clock
	scheduler *schedule.Scheduler
	judge     score.Judge
	tally     score.Tally
	track     *beatmap.Track
	inputs    []game.Input
	leadIn    time.Duration // Start delay left while Loading with a beatmap

	generator  Generator
	logger     *zap.Logger
	generation uint64
	pending    *load // The load the session is waiting for

	mu    sync.Mutex
	inbox []loadResult // Finished loads, written by the load goroutines

	onEvent []func(game.Event)
	onState []func(from, to game.State)
	onEnded []func(game.Score)
}

type load struct {
	generation uint64
	cancel     context.CancelFunc
	done       chan error
}

type loadResult struct {
	load  *load
	track *beatmap.Track
	err   error
}

func New(opts Options) (*Session, error) {
	track, err := schedule.NewTrack(opts.Track.Speed, opts.Track.SpawnDistance, opts.Track.HitZone)
	if nil != err {
		return nil, err
	}
	window, err := score.NewHitWindow(opts.Window.Perfect, opts.Window.Good, opts.Window.Okay)
	if nil != err {
		return nil, err
	}
	if window.Okay > track.HitZone {
		return nil, fmt.Errorf("%w: okay window %v is wider than the hit zone %v", game.ErrInvalidConfig, window.Okay, track.HitZone)
	}
	logger := opts.Logger
	if nil == logger {
		logger = zap.NewNop()
	}
	return &Session{
		state:     game.Idle,
		scheduler: schedule.NewScheduler(track),
		judge:     &score.DefaultJudge{Track: track, Window: window},
		generator: opts.Generator,
		logger:    logger,
	}, nil
}

func (s *Session) OnEvent(cb func(game.Event)) {
	s.onEvent = append(s.onEvent, cb)
}

func (s *Session) OnStateChange(cb func(from, to game.State)) {
	s.onState = append(s.onState, cb)
}

// OnSessionEnded is called with the final score when the audio finishes.
func (s *Session) OnSessionEnded(cb func(game.Score)) {
	s.onEnded = append(s.onEnded, cb)
}

func (s *Session) State() game.State {
	return s.state
}

func (s *Session) Now() time.Duration {
	return s.clock.Now()
}

func (s *Session) Score() game.Score {
	return s.tally.Score()
}

func (s *Session) Summary() score.Summary {
	return score.Summarize(s.tally.Offsets())
}

// Track is the loaded beatmap, nil until a load completes.
func (s *Session) Track() *beatmap.Track {
	return s.track
}

// Inputs is every input handled while playing, with the clock time it was judged at.
func (s *Session) Inputs() []game.Input {
	return s.inputs
}

func (s *Session) transition(to game.State) bool {
	from := s.state
	if !canTransition(from, to) {
		s.logger.Debug("ignored transition", zap.Stringer("from", from), zap.Stringer("to", to))
		return false
	}
	s.state = to
	s.logger.Debug("transition", zap.Stringer("from", from), zap.Stringer("to", to))
	for _, cb := range s.onState {
		cb(from, to)
	}
	return true
}

func (s *Session) emit(e game.Event) {
	for _, cb := range s.onEvent {
		cb(e)
	}
}

// reset clears everything owned by the current play and abandons any load in flight.
func (s *Session) reset() {
	if nil != s.pending {
		s.pending.cancel()
		s.pending.done <- ErrLoadSuperseded
		s.logger.Debug("superseded load", zap.Uint64("generation", s.pending.generation))
		s.pending = nil
	}
	s.clock.Reset()
	s.scheduler.Load(nil)
	s.tally.Reset()
	s.track = nil
	s.inputs = nil
	s.leadIn = 0
}

// LoadSession starts decoding and analysing src in the background. Any
// session in progress, including an earlier load, is abandoned and its
// channel receives ErrLoadSuperseded. The outcome is applied and sent on the
// returned channel by Tick, so a failure wrapping audio.ErrDecodeFailure or
// beatmap.ErrEmptyBeatmap is only received once the session is back to Idle.
func (s *Session) LoadSession(ctx context.Context, src audio.Source) <-chan error {
	if nil == s.generator {
		done := make(chan error, 1)
		done <- fmt.Errorf("%w: session has no beatmap generator", game.ErrInvalidConfig)
		return done
	}

	s.reset()
	s.transition(game.Loading)
	s.generation++
	ctx, cancel := context.WithCancel(ctx)
	l := &load{generation: s.generation, cancel: cancel, done: make(chan error, 1)}
	s.pending = l
	s.logger.Info("loading", zap.Stringer("source", src), zap.Uint64("generation", l.generation))

	go func() {
		track, err := s.generator.Generate(ctx, src)
		s.mu.Lock()
		s.inbox = append(s.inbox, loadResult{load: l, track: track, err: err})
		s.mu.Unlock()
	}()
	return l.done
}

// Start loads an already generated track, skipping decoding.
func (s *Session) Start(track *beatmap.Track) {
	s.reset()
	s.transition(game.Loading)
	s.apply(track)
}

func (s *Session) apply(track *beatmap.Track) {
	s.track = track
	s.scheduler.Load(track.Beatmap)
	s.leadIn = s.scheduler.Track().TravelTime()
	if track.Beatmap.Len() > 0 {
		s.leadIn += track.Beatmap.At(0).Time
	}
	s.logger.Info("loaded",
		zap.Int("events", track.Beatmap.Len()),
		zap.Duration("lead_in", s.leadIn),
	)
}

// collect applies the result of the pending load, if it has finished.
func (s *Session) collect() {
	s.mu.Lock()
	inbox := s.inbox
	s.inbox = nil
	s.mu.Unlock()

	for _, r := range inbox {
		if r.load != s.pending {
			s.logger.Debug("discarded stale load", zap.Uint64("generation", r.load.generation))
			continue
		}
		s.pending = nil
		r.load.cancel()
		if nil != r.err {
			s.logger.Warn("load failed", zap.Error(r.err))
			s.transition(game.Idle)
			r.load.done <- r.err
			continue
		}
		s.apply(r.track)
		r.load.done <- nil
	}
}

// Tick advances the session by the wall time elapsed since the previous tick.
// Notes are spawned and expired here, before any input that follows is judged.
func (s *Session) Tick(delta time.Duration) {
	s.collect()

	switch s.state {
	case game.Loading:
		if nil == s.track {
			return
		}
		if delta > 0 {
			s.leadIn -= delta
		}
		if s.leadIn <= 0 {
			s.leadIn = 0
			s.transition(game.Playing)
		}
	case game.Playing:
		s.clock.Advance(delta)
		now := s.clock.Now()
		spawned, expired := s.scheduler.Tick(now)
		for _, n := range spawned {
			s.emit(game.Event{Kind: game.NoteSpawned, Lane: n.Lane, Time: now})
		}
		for _, n := range expired {
			s.emit(game.Event{Kind: game.NoteMissed, Lane: n.Lane, Tier: game.Miss, Expired: true, Offset: n.Offset, Time: now})
		}
	}
}

// HandleInput judges a press on lane against the live notes. Presses outside
// of Playing, or on a lane the beatmap does not have, are ignored.
func (s *Session) HandleInput(lane int) score.Judgement {
	if s.state != game.Playing {
		return score.Judgement{Tier: game.Miss}
	}
	if lane < 0 || lane >= s.track.Beatmap.Lanes() {
		s.logger.Debug("ignored input", zap.Int("lane", lane))
		return score.Judgement{Tier: game.Miss}
	}
	now := s.clock.Now()
	s.inputs = append(s.inputs, game.Input{Lane: lane, HitTime: now})

	j := s.judge.Apply(lane, s.scheduler, &s.tally)
	if nil == j.Note {
		s.emit(game.Event{Kind: game.NoteMissed, Lane: lane, Tier: game.Miss, Time: now})
	} else {
		s.emit(game.Event{Kind: game.NoteHit, Lane: lane, Tier: j.Tier, Offset: j.Offset, Time: now})
	}
	return j
}

func (s *Session) Pause() {
	if s.transition(game.Paused) {
		s.clock.Pause()
	}
}

// FocusLost pauses, as the player can no longer see the notes.
func (s *Session) FocusLost() {
	s.Pause()
}

func (s *Session) Resume() {
	if s.state == game.Paused && s.transition(game.Playing) {
		s.clock.Resume()
	}
}

// AudioEnded finishes the session when playback completes.
func (s *Session) AudioEnded() {
	if s.state != game.Playing || !s.transition(game.Ended) {
		return
	}
	final := s.tally.Score()
	s.logger.Info("session ended",
		zap.Int64("score", final.Total),
		zap.Uint64("perfect", final.PerfectCount),
		zap.Uint64("good", final.GoodCount),
		zap.Uint64("okay", final.OkayCount),
		zap.Uint64("miss", final.MissCount),
	)
	for _, cb := range s.onEnded {
		cb(final)
	}
}

func (s *Session) ReturnToMenu() {
	if s.state != game.Ended && s.state != game.Paused {
		return
	}
	s.reset()
	s.transition(game.Idle)
}
