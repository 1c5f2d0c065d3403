package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/fluxbeat/internal/audio"
	"git.lost.host/meutraa/fluxbeat/internal/config"
	"git.lost.host/meutraa/fluxbeat/internal/game"
	"git.lost.host/meutraa/fluxbeat/internal/render"
	"git.lost.host/meutraa/fluxbeat/internal/score"
	"git.lost.host/meutraa/fluxbeat/internal/session"
	"git.lost.host/meutraa/fluxbeat/internal/theme"
	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"go.uber.org/zap"
)

type Program struct {
	Session  *session.Session
	Renderer render.Renderer
	Theme    theme.Theme
	History  score.History
	Logger   *zap.Logger

	seed     int64
	settings score.Settings
	source   audio.Source
	loaded <-chan error

	keys   <-chan keyboard.KeyEvent
	ended  chan struct{}
	music  *beep.Ctrl
	stream beep.StreamSeekCloser

	width, height int
	hitRow, top   int
	sideCol       int
	columns       []int

	drawn []position // Notes drawn last frame
	quit  bool
}

type position struct {
	row, col int
}

func (p *Program) Init(ctx context.Context, src audio.Source) error {
	// Ensure our Default implementations are used as interfaces
	p.Renderer = render.NewDefaultRenderer()
	p.Theme = &theme.DefaultTheme{}

	// Read once, the same bytes are decoded for analysis and for playback
	data, err := src.Read(ctx)
	if nil != err {
		return fmt.Errorf("unable to read %v: %w", src, err)
	}
	p.source = audio.FromBytes(src.Name, data)

	var format beep.Format
	p.stream, format, err = audio.Open(data, src.Name)
	if nil != err {
		return fmt.Errorf("%w: %v: %v", audio.ErrDecodeFailure, src, err)
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); nil != err {
		return fmt.Errorf("unable to open speaker: %w", err)
	}
	p.ended = make(chan struct{}, 1)
	p.music = &beep.Ctrl{
		Streamer: beep.Seq(p.stream, beep.Callback(func() {
			select {
			case p.ended <- struct{}{}:
			default:
			}
		})),
		Paused: true,
	}
	speaker.Play(p.music)

	history, err := score.OpenHistory(*config.Database)
	if nil != err {
		return err
	}
	p.History = history

	p.settings = currentSettings()
	g, err := newGenerator(p.Logger, p.seed, p.settings)
	if nil != err {
		return err
	}
	opts, err := sessionOptions(p.Logger, g, p.settings)
	if nil != err {
		return err
	}
	p.Session, err = session.New(opts)
	if nil != err {
		return err
	}
	p.Session.OnStateChange(p.stateChanged)
	p.Session.OnEvent(p.event)
	p.Session.OnSessionEnded(p.save)

	p.keys, err = keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	if err := p.Renderer.Init(); nil != err {
		return err
	}
	return p.Resize()
}

func (p *Program) Deinit() {
	if nil != p.music {
		speaker.Clear()
	}
	if nil != p.stream {
		p.stream.Close()
	}
	if nil != p.Renderer {
		if err := p.Renderer.Deinit(); nil != err {
			p.Logger.Warn("unable to restore terminal", zap.Error(err))
		}
	}
	if nil != p.keys {
		if err := keyboard.Close(); nil != err {
			p.Logger.Warn("unable to close keyboard", zap.Error(err))
		}
	}
	if nil != p.History {
		p.History.Close()
	}
}

func (p *Program) Resize() error {
	width, height, err := p.Renderer.Size()
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	p.width, p.height = width, height
	p.top = 2
	p.hitRow = height - 3

	lanes := *config.Lanes
	middle := width >> 1
	p.columns = make([]int, lanes)
	for i := range p.columns {
		p.columns[i] = middle + 4*(2*i-(lanes-1))
	}
	p.sideCol = p.columns[0] - 36
	if p.sideCol < 2 {
		p.sideCol = 2
	}
	return nil
}

func (p *Program) Run(ctx context.Context) error {
	p.loaded = p.Session.LoadSession(ctx, p.source)
	var loadErr error

	p.Renderer.RenderLoop(time.Duration(float64(time.Second) / *config.FPS), func(delta time.Duration) bool {
		if nil != ctx.Err() {
			return false
		}
		select {
		case <-p.ended:
			p.Session.AudioEnded()
		default:
		}

		p.Update()
		p.Session.Tick(delta)

		// Tick delivers the outcome of the load, a failure leaves the session Idle
		select {
		case err := <-p.loaded:
			loadErr = err
			p.loaded = nil
		default:
		}
		if p.Session.State() == game.Idle {
			return false
		}

		p.Render(p.Session.Frame())
		return !p.quit
	})
	return loadErr
}

// Update handles the key presses that arrived since the previous frame.
func (p *Program) Update() {
	for {
		var key keyboard.KeyEvent
		select {
		case key = <-p.keys:
		default:
			return
		}
		if nil != key.Err {
			p.Logger.Warn("keyboard", zap.Error(key.Err))
			continue
		}

		state := p.Session.State()
		switch {
		case key.Key == keyboard.KeyEsc || key.Rune == 'q':
			switch state {
			case game.Playing:
				p.Session.Pause()
			case game.Paused, game.Ended:
				p.Session.ReturnToMenu()
			default:
				p.quit = true
			}
		case key.Key == keyboard.KeySpace:
			p.Session.Resume()
		default:
			if lane := config.KeyLane(key.Rune); lane >= 0 {
				p.Session.HandleInput(lane)
			}
		}
	}
}

func (p *Program) stateChanged(from, to game.State) {
	speaker.Lock()
	p.music.Paused = to != game.Playing
	speaker.Unlock()
	p.Renderer.Clear()
	p.drawn = nil
}

func (p *Program) event(e game.Event) {
	if e.Kind == game.NoteSpawned {
		return
	}
	c := p.Theme.JudgementColor(e.Tier)
	mark := fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, "^")
	col := uint16(p.columns[e.Lane%len(p.columns)])
	p.Renderer.AddDecoration(col, uint16(p.hitRow+1), mark, 12)

	// Timing error, drawn left of the centre when early
	if e.Kind == game.NoteHit {
		x := (p.width >> 1) + int(e.Offset/(10*time.Millisecond))
		p.Renderer.AddDecoration(uint16(x), uint16(p.hitRow+2), mark, 120)
	}
}

func (p *Program) save(final game.Score) {
	track := p.Session.Track()
	if nil == track {
		return
	}
	run := &score.Run{
		Sum:      track.Sum,
		Seed:     p.seed,
		Settings: p.settings,
		When:     time.Now(),
		Inputs:   p.Session.Inputs(),
		Score:    final,
	}
	if err := p.History.Save(run); nil != err {
		p.Logger.Error("unable to save run", zap.Error(err))
	}
}

func (p *Program) row(pos float64) int {
	return p.top + int(math.Round(pos*float64(p.hitRow-p.top)))
}

func (p *Program) Render(f session.Frame) {
	for _, d := range p.drawn {
		p.Renderer.Fill(uint16(d.row), uint16(d.col), " ")
	}
	p.drawn = p.drawn[:0]

	for i, col := range p.columns {
		p.Renderer.Fill(uint16(p.hitRow), uint16(col), p.Theme.RenderHitField(i))
	}

	for _, n := range f.Notes {
		row := p.row(n.Position)
		if row < p.top || row > p.height {
			continue
		}
		col := p.columns[n.Lane%len(p.columns)]
		p.Renderer.FillColor(uint16(row), uint16(col), p.Theme.NoteColor(n.Lane), p.Theme.RenderNote(n.Lane))
		p.drawn = append(p.drawn, position{row: row, col: col})
	}

	summary := p.Session.Summary()
	side := uint16(p.sideCol)
	p.Renderer.Fill(4, side, fmt.Sprintf("      State:  %-8v", f.State))
	p.Renderer.Fill(5, side, fmt.Sprintf("       Time:  %6.1f s", f.Time.Seconds()))
	if f.State == game.Loading && f.LeadIn > 0 {
		p.Renderer.Fill(6, side, fmt.Sprintf("   Start in:  %6.1f s", f.LeadIn.Seconds()))
	} else {
		p.Renderer.Fill(6, side, fmt.Sprintf("%24v", ""))
	}
	p.Renderer.Fill(10, side, fmt.Sprintf("      Score:  %6v", f.Score.Total))
	p.Renderer.Fill(11, side, fmt.Sprintf("      Stdev:  %6.2f ms", float64(summary.Stdev)/float64(time.Millisecond)))
	p.Renderer.Fill(12, side, fmt.Sprintf("       Mean:  %6.2f ms", float64(summary.Mean)/float64(time.Millisecond)))
	p.Renderer.Fill(13, side, fmt.Sprintf("      Notes:  %6v", f.Score.NoteCount))
	for i, tier := range []game.Tier{game.Perfect, game.Good, game.Okay, game.Miss} {
		p.Renderer.FillColor(uint16(18+i), side, p.Theme.JudgementColor(tier), fmt.Sprintf("%11v:  %6v", tier, f.Score.Count(tier)))
	}

	switch f.State {
	case game.Paused:
		p.Renderer.Fill(uint16(p.height>>1), uint16(p.width>>1)-12, "paused, space to resume")
	case game.Ended:
		p.Renderer.Fill(uint16(p.height>>1), uint16(p.width>>1)-8, "finished, q to exit")
	}
}
