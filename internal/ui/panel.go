package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chesscore/internal/board"
)

// Panel dimensions
const (
	PanelPadding   = 16
	SectionSpacing = 24
	ButtonHeight   = 34
	SectionLabelH  = 20
	rowHeight      = 22
	statusHeight   = 120
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusCheck     = color.RGBA{255, 120, 120, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

var keyHelp = []string{
	"Z  undo    R  new game",
	"F  flip    S  save",
	"H  hints   M  sound",
	"Hold N/B/R to under-promote",
}

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	Primary    bool
	OnClick    func()
	hovered    bool
	pressed    bool
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// Panel is the side panel with controls, move history and game status.
type Panel struct {
	game    *Game
	buttons []*Button
	scale   float64

	scrollY    int
	maxScrollY int
	follow     bool // keep the newest move in view
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g, scale: 1.0, follow: true}

	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	third := (w - 8) / 3
	y := PanelPadding

	p.buttons = []*Button{
		{X: x, Y: y, W: w, H: ButtonHeight, Label: "New Game", Primary: true, OnClick: g.NewGameAction},
		{X: x, Y: y + ButtonHeight + 8, W: third, H: ButtonHeight - 6, Label: "Undo", OnClick: g.UndoAction},
		{X: x + third + 4, Y: y + ButtonHeight + 8, W: third, H: ButtonHeight - 6, Label: "Flip", OnClick: g.FlipAction},
		{X: x + 2*(third+4), Y: y + ButtonHeight + 8, W: third, H: ButtonHeight - 6, Label: "Save", OnClick: g.SaveAction},
	}
	return p
}

func (p *Panel) historyTop() int {
	last := p.buttons[len(p.buttons)-1]
	return last.Y + last.H + SectionSpacing
}

func (p *Panel) historyBottom() int {
	return ScreenHeight - statusHeight
}

// ScrollToEnd keeps the newest move visible on the next draw.
func (p *Panel) ScrollToEnd() {
	p.follow = true
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	if _, wheelY := ebiten.Wheel(); wheelY != 0 && mx >= BoardSize && my >= p.historyTop() && my < p.historyBottom() {
		p.scrollY -= int(wheelY * 30)
		p.scrollY = max(0, min(p.scrollY, p.maxScrollY))
		p.follow = p.scrollY == p.maxScrollY
	}

	for _, b := range p.buttons {
		b.hovered = b.contains(mx, my)
		b.pressed = b.hovered && input.IsLeftPressed()
	}

	if !input.IsLeftJustPressed() {
		return false
	}
	for _, b := range p.buttons {
		if b.hovered {
			b.OnClick()
			return true
		}
	}
	return false
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	for _, b := range p.buttons {
		if b.hovered {
			return true
		}
	}
	return false
}

// s scales a logical coordinate.
func (p *Panel) s(v int) float32 {
	return float32(float64(v) * p.scale)
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image, scale float64) {
	p.scale = scale
	vector.DrawFilledRect(screen, p.s(BoardSize), 0, p.s(PanelWidth), p.s(ScreenHeight), panelBg, false)

	for _, b := range p.buttons {
		p.drawButton(screen, b)
	}

	top := p.historyTop()
	p.drawText(screen, "Moves", BoardSize+PanelPadding, top-SectionLabelH, textMuted)
	p.drawMoveHistory(screen, top+4)
	p.drawStatus(screen)
}

func (p *Panel) drawButton(screen *ebiten.Image, b *Button) {
	bg, border, fg := buttonBg, buttonBorder, textSecondary
	if b.Primary {
		bg, border, fg = accentColor, accentPressed, textPrimary
	}
	switch {
	case b.pressed && b.Primary:
		bg = accentPressed
	case b.pressed:
		bg = buttonPressedBg
	case b.hovered && b.Primary:
		bg = accentHover
	case b.hovered:
		bg, border = buttonHoverBg, accentColor
	}

	vector.DrawFilledRect(screen, p.s(b.X), p.s(b.Y), p.s(b.W), p.s(b.H), bg, false)
	vector.StrokeRect(screen, p.s(b.X), p.s(b.Y), p.s(b.W), p.s(b.H), float32(p.scale), border, false)
	p.drawTextCentered(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, fg)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	moves := p.game.SANHistory()
	x := BoardSize + PanelPadding
	if len(moves) == 0 {
		p.drawText(screen, "No moves yet", x, startY+4, textMuted)
		p.scrollY, p.maxScrollY = 0, 0
		return
	}

	maxY := p.historyBottom()
	visible := maxY - startY
	rows := (len(moves) + 1) / 2
	content := rows * rowHeight
	p.maxScrollY = max(0, content-visible)
	if p.follow {
		p.scrollY = p.maxScrollY
	}
	p.scrollY = min(p.scrollY, p.maxScrollY)

	first := p.scrollY / rowHeight
	y := startY - p.scrollY%rowHeight
	for row := first; row < rows && y < maxY; row++ {
		if y >= startY {
			if row%2 == 1 {
				vector.DrawFilledRect(screen, p.s(x-4), p.s(y-2), p.s(PanelWidth-PanelPadding*2+8), p.s(rowHeight), moveRowAlt, false)
			}
			p.drawText(screen, fmt.Sprintf("%d.", row+1), x, y, textMuted)
			p.drawText(screen, moves[2*row], x+36, y, textPrimary)
			if 2*row+1 < len(moves) {
				p.drawText(screen, moves[2*row+1], x+110, y, textPrimary)
			}
		}
		y += rowHeight
	}

	if p.maxScrollY > 0 {
		frac := float32(p.scrollY) / float32(p.maxScrollY)
		barH := max(float32(20), float32(visible)*float32(visible)/float32(content))
		barY := float32(startY) + frac*(float32(visible)-barH)
		vector.DrawFilledRect(screen, p.s(ScreenWidth-8), barY*float32(p.scale), p.s(4), barH*float32(p.scale), textMuted, false)
	}
}

func (p *Panel) drawStatus(screen *ebiten.Image) {
	y := p.historyBottom() + 8
	x := BoardSize + PanelPadding

	vector.DrawFilledRect(screen, p.s(x), p.s(y-4), p.s(PanelWidth-PanelPadding*2), p.s(1), dividerColor, false)

	st := p.game.State()
	status, c := fmt.Sprintf("%s to move", st.SideToMove()), textPrimary
	switch outcome := p.game.Outcome(); {
	case outcome != board.InProgress:
		status, c = p.game.ResultText(), statusGameOver
	case st.InCheck():
		status, c = fmt.Sprintf("%s is in check", st.SideToMove()), statusCheck
	}
	p.drawText(screen, status, x, y+4, c)

	for i, line := range keyHelp {
		p.drawText(screen, line, x, y+30+i*18, textSecondary)
	}
}

func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := GetFaceWithSize(defaultFontSize * p.scale)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.s(x)), float64(p.s(y)))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	face := GetFaceWithSize(defaultFontSize * p.scale)
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.s(centerX))-w/2, float64(p.s(centerY))-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
