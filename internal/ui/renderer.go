package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chesscore/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	MutedText      color.RGBA
	OverlayColor   color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		Background:     color.RGBA{40, 44, 52, 255},    // Dark gray
		TextColor:      color.RGBA{220, 220, 220, 255}, // Light gray
		MutedText:      color.RGBA{150, 150, 160, 255},
		OverlayColor:   color.RGBA{20, 20, 24, 200},
	}
}

// Renderer handles all drawing operations.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	scale      float64 // HiDPI scale factor
	flipped    bool    // Black at the bottom
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int, sprites *SpriteManager) *Renderer {
	return &Renderer{
		sprites:    sprites,
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
		scale:      1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// SetFlipped selects which side is drawn at the bottom.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is drawn at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the chess board squares and coordinate labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq, _ := board.NewSquare(row, col)
			x, y := r.SquareToScreen(sq)

			c := r.theme.LightSquare
			if (row+col)%2 == 1 {
				c = r.theme.DarkSquare
			}
			vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
		}
	}

	r.drawCoordinates(screen)
}

// drawCoordinates draws file letters along the bottom edge and rank numbers
// along the left edge.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(11 * r.scale)
	if face == nil {
		return
	}
	for i := 0; i < 8; i++ {
		col, row := i, i
		if r.flipped {
			col, row = 7-i, 7-i
		}

		file := string(rune('a' + col))
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(r.s((i+1)*r.squareSize-10)), float64(r.s(r.boardSize-14)))
		op.ColorScale.ScaleWithColor(r.theme.MutedText)
		text.Draw(screen, file, face, op)

		rank := string(rune('0' + 8 - row))
		op = &text.DrawOptions{}
		op.GeoM.Translate(float64(r.s(3)), float64(r.s(i*r.squareSize+2)))
		op.ColorScale.ScaleWithColor(r.theme.MutedText)
		text.Draw(screen, rank, face, op)
	}
}

// DrawHighlights draws selection and legal move highlights.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, targets []board.Move, lastMove board.Move, hasLast bool) {
	if hasLast {
		r.highlightSquare(screen, lastMove.From, r.theme.LastMoveColor)
		r.highlightSquare(screen, lastMove.To, r.theme.LastMoveColor)
	}

	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}

	for _, m := range targets {
		r.drawLegalMoveIndicator(screen, m.To)
	}
}

// DrawCheck highlights the king's square if in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

// highlightSquare draws a colored overlay on a square.
func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
}

// drawLegalMoveIndicator draws a circle on legal move squares.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	cx := r.s(x) + r.s(r.squareSize)/2
	cy := r.s(y) + r.s(r.squareSize)/2
	radius := r.s(r.squareSize) * 0.15

	vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.LegalMoveColor, true)
}

// DrawPieces draws every piece of the grid, skipping the square whose piece
// is being dragged and shaking pieces the animation manager marks.
func (r *Renderer) DrawPieces(screen *ebiten.Image, grid [8][8]board.Piece, dragSquare board.Square, anims *AnimationManager) {
	for row := range grid {
		for col, piece := range grid[row] {
			if piece == board.NoPiece {
				continue
			}
			sq, _ := board.NewSquare(row, col)
			if sq == dragSquare {
				continue
			}
			x, y := r.SquareToScreen(sq)
			dx := 0.0
			if anims != nil {
				dx = anims.ShakeOffset(sq) * r.scale
			}
			r.sprites.DrawPieceAt(screen, piece, int(float64(r.s(x))+dx), int(r.s(y)), r.scale)
		}
	}
}

// DrawDraggedPiece draws the piece being dragged at the mouse position.
// mouseX, mouseY are in logical coordinates (will be scaled for drawing).
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, piece board.Piece, mouseX, mouseY int) {
	if piece == board.NoPiece {
		return
	}

	halfSize := int(r.s(r.squareSize)) / 2
	x := int(r.s(mouseX)) - halfSize
	y := int(r.s(mouseY)) - halfSize

	r.sprites.DrawPieceAt(screen, piece, x, y, r.scale)
}

// DrawBanner draws a message centered over the board.
func (r *Renderer) DrawBanner(screen *ebiten.Image, msg string) {
	face := GetFaceWithSize(28 * r.scale)
	if face == nil {
		return
	}
	w, h := MeasureText(msg, face)
	pad := 18 * r.scale
	cx := float64(r.s(r.boardSize)) / 2
	cy := float64(r.s(r.boardSize)) / 2

	vector.DrawFilledRect(screen, float32(cx-w/2-pad), float32(cy-h/2-pad),
		float32(w+2*pad), float32(h+2*pad), r.theme.OverlayColor, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(cx-w/2, cy-h/2)
	op.ColorScale.ScaleWithColor(r.theme.TextColor)
	text.Draw(screen, msg, face, op)
}

// SquareToScreen converts a board square to logical screen coordinates.
// Row 0 (rank 8) is at the top unless the board is flipped.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	row, col := sq.Row(), sq.Col()
	if r.flipped {
		row, col = 7-row, 7-col
	}
	return col * r.squareSize, row * r.squareSize
}

// ScreenToSquare converts logical screen coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || y < 0 {
		return board.NoSquare
	}
	row, col := y/r.squareSize, x/r.squareSize
	if r.flipped {
		row, col = 7-row, 7-col
	}
	sq, err := board.NewSquare(row, col)
	if err != nil {
		return board.NoSquare
	}
	return sq
}

// BoardSize returns the board size in pixels.
func (r *Renderer) BoardSize() int {
	return r.boardSize
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
