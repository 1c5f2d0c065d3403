package theme

import (
	"image/color"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(lane int) string {
	return noteSym
}

func (t *DefaultTheme) RenderHitField(lane int) string {
	return barSym
}

// NoteColor cycles through the palette so neighbouring lanes differ.
func (t *DefaultTheme) NoteColor(lane int) color.RGBA {
	if lane < 0 {
		return white
	}
	return laneColors[lane%len(laneColors)]
}

func (t *DefaultTheme) JudgementColor(tier game.Tier) color.RGBA {
	col, ok := judgementColors[tier]
	if !ok {
		return white
	}
	return col
}

const (
	noteSym = "⬤"
	barSym  = "-"
)

var (
	white      = color.RGBA{255, 255, 255, 255}
	laneColors = [...]color.RGBA{
		{236, 30, 0, 255},    // red
		{0, 118, 236, 255},   // blue
		{106, 0, 236, 255},   // purple
		{236, 195, 0, 255},   // yellow
		{236, 0, 106, 255},   // pink
		{236, 128, 0, 255},   // orange
		{173, 236, 236, 255}, // light blue
		{0, 236, 128, 255},   // green
	}

	judgementColors = map[game.Tier]color.RGBA{
		game.Perfect: {0, 236, 128, 255},
		game.Good:    {0, 118, 236, 255},
		game.Okay:    {236, 195, 0, 255},
		game.Miss:    {236, 30, 0, 255},
	}
)
