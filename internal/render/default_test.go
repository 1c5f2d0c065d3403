package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"
)

// An fd that is never a terminal
const noTerminal = -1

func TestFill(t *testing.T) {
	out := &bytes.Buffer{}
	r := &DefaultRenderer{Out: out, Fd: noTerminal}
	r.Fill(3, 12, "x")
	r.FillColor(4, 1, color.RGBA{R: 236, G: 30, B: 0, A: 255}, "o")
	r.flush()

	expected := "\033[3;12Hx\033[4;1H\033[38;2;236;30;0mo\033[0m"
	if out.String() != expected {
		t.Logf("%q", out.String())
		t.Fail()
	}
}

func TestDecorationsExpire(t *testing.T) {
	out := &bytes.Buffer{}
	r := &DefaultRenderer{Out: out, Fd: noTerminal}
	r.AddDecoration(5, 2, "*", 2)

	frames := []string{}
	for i := 0; i < 4; i++ {
		r.tickDecorations()
		r.flush()
		frames = append(frames, out.String())
		out.Reset()
	}

	// Drawn on add and for two more frames, then erased once
	expected := []string{"\033[2;5H*\033[2;5H*", "\033[2;5H*", "\033[2;5H ", ""}
	for i, f := range frames {
		if f != expected[i] {
			t.Logf("frame %v: %q, expected %q", i, f, expected[i])
			t.Fail()
		}
	}
}

func TestInitDeinitWithoutTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	r := &DefaultRenderer{Out: out, Fd: noTerminal}
	if err := r.Init(); nil != err {
		t.Fatal(err)
	}
	if err := r.Deinit(); nil != err {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[?1049h") || !strings.HasSuffix(out.String(), "\033[?25h") {
		t.Logf("%q", out.String())
		t.Fail()
	}
}

func TestRenderLoopStops(t *testing.T) {
	out := &bytes.Buffer{}
	r := &DefaultRenderer{Out: out, Fd: noTerminal}
	calls := 0
	r.RenderLoop(time.Millisecond, func(delta time.Duration) bool {
		calls++
		if delta < 0 {
			t.Fail()
		}
		r.Fill(1, 1, "f")
		return calls < 3
	})
	if calls != 3 {
		t.Fatal("render called", calls, "times")
	}
	// The last frame is not flushed
	if strings.Count(out.String(), "f") != 2 {
		t.Logf("%q", out.String())
		t.Fail()
	}
}
