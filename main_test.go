package main

import (
	"testing"

	"git.lost.host/meutraa/fluxbeat/internal/score"
	"go.uber.org/zap"
)

var recorded = score.Settings{
	Rate:          11025,
	FrameSize:     512,
	Threshold:     120,
	Window:        "hann",
	Lanes:         6,
	Speed:         8,
	SpawnDistance: 16,
	HitZone:       1.5,
	Perfect:       0.5,
	Good:          1,
}

func TestGeneratorUsesRecordedSettings(t *testing.T) {
	g, err := newGenerator(zap.NewNop(), 1, recorded)
	if nil != err {
		t.Fatal(err)
	}
	if g.Analyzer.FrameSize() != recorded.FrameSize {
		t.Log("frame size", g.Analyzer.FrameSize())
		t.Fail()
	}
	if g.Detector.Threshold() != recorded.Threshold {
		t.Log("threshold", g.Detector.Threshold())
		t.Fail()
	}
	if g.Builder.Lanes() != recorded.Lanes {
		t.Log("lanes", g.Builder.Lanes())
		t.Fail()
	}
}

func TestSessionOptionsUseRecordedSettings(t *testing.T) {
	opts, err := sessionOptions(zap.NewNop(), nil, recorded)
	if nil != err {
		t.Fatal(err)
	}
	if opts.Track.Speed != recorded.Speed || opts.Track.SpawnDistance != recorded.SpawnDistance || opts.Track.HitZone != recorded.HitZone {
		t.Log("track", opts.Track)
		t.Fail()
	}
	if opts.Window.Perfect != recorded.Perfect || opts.Window.Good != recorded.Good || opts.Window.Okay != recorded.HitZone {
		t.Log("window", opts.Window)
		t.Fail()
	}
}

func TestSessionOptionsRejectBadSettings(t *testing.T) {
	bad := recorded
	bad.Good = 0.2
	if _, err := sessionOptions(zap.NewNop(), nil, bad); nil == err {
		t.Fail()
	}
}
