package theme

import (
	"image/color"

	"git.lost.host/meutraa/fluxbeat/internal/game"
)

type Theme interface {
	RenderNote(lane int) string
	RenderHitField(lane int) string
	NoteColor(lane int) color.RGBA
	JudgementColor(tier game.Tier) color.RGBA
}
