package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hailam/chesscore/internal/board"
)

// Action is a keyboard command.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionReset
	ActionFlip
	ActionSave
	ActionToggleHints
	ActionToggleSound
)

// keyActions binds keys to commands.
var keyActions = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyZ, ActionUndo},
	{ebiten.KeyBackspace, ActionUndo},
	{ebiten.KeyR, ActionReset},
	{ebiten.KeyF, ActionFlip},
	{ebiten.KeyS, ActionSave},
	{ebiten.KeyH, ActionToggleHints},
	{ebiten.KeyM, ActionToggleSound},
}

// InputHandler manages mouse and keyboard input.
type InputHandler struct {
	mouseX, mouseY   int // Logical coordinates (unscaled)
	scale            float64
	leftPressed      bool
	leftJustPressed  bool
	leftJustReleased bool
	action           Action
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{scale: 1.0}
}

// SetScale sets the device scale used to convert cursor positions.
func (ih *InputHandler) SetScale(scale float64) {
	if scale < 1.0 {
		scale = 1.0
	}
	ih.scale = scale
}

// Update updates the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	rawX, rawY := ebiten.CursorPosition()
	ih.mouseX = int(float64(rawX) / ih.scale)
	ih.mouseY = int(float64(rawY) / ih.scale)

	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	ih.action = ActionNone
	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			ih.action = ka.action
			break
		}
	}
}

// Action returns the command triggered this frame, if any.
func (ih *InputHandler) Action() Action {
	return ih.action
}

// PromotionChoice returns the piece a pawn promotes to. Holding N, B or R
// while dropping the pawn under-promotes; otherwise it becomes a queen.
func (ih *InputHandler) PromotionChoice() board.PieceType {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyN):
		return board.Knight
	case ebiten.IsKeyPressed(ebiten.KeyB):
		return board.Bishop
	case ebiten.IsKeyPressed(ebiten.KeyR):
		return board.Rook
	default:
		return board.Queen
	}
}

// MousePosition returns the current mouse position in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// IsLeftJustPressed returns true if the left mouse button was just pressed.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// IsLeftJustReleased returns true if the left mouse button was just released.
func (ih *InputHandler) IsLeftJustReleased() bool {
	return ih.leftJustReleased
}

// IsLeftPressed returns true if the left mouse button is currently pressed.
func (ih *InputHandler) IsLeftPressed() bool {
	return ih.leftPressed
}

// IsInBounds returns true if the mouse is within the given rectangle.
func (ih *InputHandler) IsInBounds(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}
