package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/exp/slices"

	"github.com/hailam/chesscore/internal/board"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// Toast represents a notification message.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager manages toast notifications.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
	centerX  float64 // horizontal center in logical pixels
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{
		maxStack: 3,
		centerX:  float64(BoardSize) / 2,
	}
}

// Show displays a new toast notification.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	toast := &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: time.Now(),
		Duration:  duration,
	}
	tm.toasts = append(tm.toasts, toast)
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	tm.toasts = slices.DeleteFunc(tm.toasts, func(t *Toast) bool {
		return now.Sub(t.StartTime) >= t.Duration
	})
}

// Draw renders all active toasts at the given device scale.
func (tm *ToastManager) Draw(screen *ebiten.Image, scale float64) {
	face := GetFaceWithSize(defaultFontSize * scale)
	if face == nil {
		return
	}

	y := 50.0 * scale
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		duration := t.Duration.Seconds()

		// Fade in/out
		alpha := 1.0
		fadeTime := 0.2
		if elapsed < fadeTime {
			alpha = elapsed / fadeTime
		} else if elapsed > duration-fadeTime {
			alpha = (duration - elapsed) / fadeTime
		}

		var bgColor, textColor color.RGBA
		switch t.Type {
		case ToastWarning:
			bgColor = color.RGBA{180, 140, 20, uint8(220 * alpha)}
			textColor = color.RGBA{40, 30, 0, uint8(255 * alpha)}
		case ToastError:
			bgColor = color.RGBA{180, 50, 50, uint8(220 * alpha)}
			textColor = color.RGBA{255, 255, 255, uint8(255 * alpha)}
		case ToastSuccess:
			bgColor = color.RGBA{50, 150, 50, uint8(220 * alpha)}
			textColor = color.RGBA{255, 255, 255, uint8(255 * alpha)}
		default: // ToastInfo
			bgColor = color.RGBA{50, 100, 150, uint8(220 * alpha)}
			textColor = color.RGBA{255, 255, 255, uint8(255 * alpha)}
		}

		w, h := MeasureText(t.Message, face)
		padding := 12.0 * scale
		boxW := w + padding*2
		boxH := h + padding*2

		x := tm.centerX*scale - boxW/2
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bgColor, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+padding, y+padding)
		op.ColorScale.ScaleWithColor(textColor)
		text.Draw(screen, t.Message, face, op)

		y += boxH + 8*scale
	}
}

// ShakeAnimation represents a piece shake effect.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation represents a square flash effect.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager manages visual animations.
type AnimationManager struct {
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 8.0,
	})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  400 * time.Millisecond,
		Color:     c,
	})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	now := time.Now()
	am.shakes = slices.DeleteFunc(am.shakes, func(s *ShakeAnimation) bool {
		return now.Sub(s.StartTime) >= s.Duration
	})
	am.flashes = slices.DeleteFunc(am.flashes, func(f *FlashAnimation) bool {
		return now.Sub(f.StartTime) >= f.Duration
	})
}

// ShakeOffset returns the current horizontal shake offset for a square.
func (am *AnimationManager) ShakeOffset(sq board.Square) float64 {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1.0 {
			return 0
		}
		// Damped sine.
		return s.Intensity * math.Exp(-5*progress) * math.Sin(40*progress)
	}
	return 0
}

// DrawFlashes renders all active flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, renderer *Renderer) {
	for _, f := range am.flashes {
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1.0 {
			continue
		}
		c := f.Color
		c.A = uint8(float64(c.A) * (1.0 - progress))
		renderer.highlightSquare(screen, f.Square, c)
	}
}

// FeedbackManager coordinates toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager(audio *AudioManager) *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      audio,
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders all feedback overlays.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, renderer *Renderer, scale float64) {
	fm.animations.DrawFlashes(screen, renderer)
	fm.toasts.Draw(screen, scale)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Notify shows a plain message.
func (fm *FeedbackManager) Notify(msg string, tt ToastType) {
	fm.toasts.Show(msg, tt, 2*time.Second)
}

// OnInvalidMove reports a refused move.
func (fm *FeedbackManager) OnInvalidMove(m board.Move, reason board.Rejection) {
	fm.toasts.Show("Illegal move: "+reason.String(), ToastWarning, 2*time.Second)
	fm.animations.StartShake(m.From)
	if m.To.IsValid() {
		fm.animations.StartFlash(m.To, color.RGBA{255, 80, 80, 150})
	}
	fm.audio.Play(SoundInvalid)
}

// OnMoveMade plays the sound for an applied move and announces check.
func (fm *FeedbackManager) OnMoveMade(m board.Move, check bool) {
	switch {
	case check:
		fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
		fm.audio.Play(SoundCheck)
	case m.Castle:
		fm.audio.Play(SoundCastle)
	case m.IsCapture():
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}
}

// OnGameOver announces the final result.
func (fm *FeedbackManager) OnGameOver(outcome board.Outcome, winner board.Color) {
	if outcome == board.WinByCheckmate {
		fm.toasts.Show(fmt.Sprintf("Checkmate! %s wins!", winner), ToastSuccess, 5*time.Second)
	} else {
		fm.toasts.Show("Game over: "+outcome.String(), ToastInfo, 5*time.Second)
	}
	fm.audio.Play(SoundGameEnd)
}

// Audio returns the audio manager.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}
