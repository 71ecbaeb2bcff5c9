package ui

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/pieceset"
)

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	generated   map[board.Piece]bool
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality (e.g., 3.0)
}

// NewSpriteManager creates a sprite manager with pieces of the given size.
// Images are read from dir when it is set; missing pieces become tokens.
func NewSpriteManager(size int, dir string) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		generated:   make(map[board.Piece]bool),
		size:        size,
		renderScale: 3.0,
	}
	sm.loadPieces(dir)
	return sm
}

func (sm *SpriteManager) loadPieces(dir string) {
	renderSize := int(float64(sm.size) * sm.renderScale)

	set, err := pieceset.Load(dir, renderSize)
	if err != nil {
		log.Printf("Failed to load some piece images: %v", err)
	}
	for p, img := range set.Images {
		sm.pieces[p] = ebiten.NewImageFromImage(img)
		sm.generated[p] = set.Generated[p]
	}
}

// GetPiece returns the sprite for a piece.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	return sm.pieces[p]
}

// DrawPieceAt draws a piece with its top-left corner at the given pixel
// coordinates. uiScale is the device scale the board is drawn at.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y int, uiScale float64) {
	if p == board.NoPiece {
		return
	}
	sprite := sm.GetPiece(p)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := uiScale / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)

	if sm.generated[p] {
		sm.drawLabel(screen, p, x, y, uiScale)
	}
}

// drawLabel writes the piece letter on a generated token.
func (sm *SpriteManager) drawLabel(screen *ebiten.Image, p board.Piece, x, y int, uiScale float64) {
	face := GetBoldFaceWithSize(float64(sm.size) * 0.4 * uiScale)
	if face == nil {
		return
	}
	label := string(p.ID()[1] &^ 0x20) // upper case
	w, h := MeasureText(label, face)
	half := float64(sm.size) * uiScale / 2

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)+half-w/2, float64(y)+half-h/2)
	if p.Color() == board.White {
		op.ColorScale.ScaleWithColor(DefaultTheme().Background)
	} else {
		op.ColorScale.ScaleWithColor(DefaultTheme().TextColor)
	}
	text.Draw(screen, label, face, op)
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
