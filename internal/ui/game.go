package ui

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 880
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// Options configures a new Game.
type Options struct {
	// Storage persists preferences, statistics and the game in progress.
	// It may be nil, in which case nothing is saved.
	Storage *storage.Storage
	// PieceDir overrides the piece image directory from the preferences.
	PieceDir string
	// Resume reloads the last unfinished game when set.
	Resume bool
}

// Game implements ebiten.Game interface.
type Game struct {
	// Core game state
	state   *board.GameState
	gameID  string
	started time.Time
	san     []string // nil when stale

	// UI state
	selectedSquare board.Square
	targets        []board.Move
	dragging       bool
	dragPiece      board.Piece
	dragSquare     board.Square
	showHints      bool

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager

	outcome  board.Outcome
	recorded bool

	// HiDPI scaling
	scale float64
}

// NewGame creates the board window state.
func NewGame(opts Options) *Game {
	g := &Game{
		storage:        opts.Storage,
		selectedSquare: board.NoSquare,
		dragSquare:     board.NoSquare,
		input:          NewInputHandler(),
		scale:          1.0,
	}

	g.loadPreferences()
	if opts.PieceDir != "" {
		g.prefs.PieceDir = opts.PieceDir
	}

	g.renderer = NewRenderer(BoardSize, SquareSize, NewSpriteManager(SquareSize, g.prefs.PieceDir))
	g.renderer.SetFlipped(g.prefs.FlipBoard)
	g.showHints = g.prefs.ShowLegalMoves
	g.feedback = NewFeedbackManager(NewAudioManager(g.prefs.SoundEnabled, g.prefs.Volume))
	g.panel = NewPanel(g)

	if opts.Resume || g.prefs.AutoResume {
		g.resume()
	}
	if g.state == nil {
		g.startNewGame()
	}
	return g
}

// loadPreferences loads user preferences from storage.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		g.prefs = storage.DefaultPreferences()
		return
	}

	var err error
	g.prefs, err = g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		g.prefs = storage.DefaultPreferences()
	}

	first, err := g.storage.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if first {
		g.savePreferences()
		if err := g.storage.MarkFirstLaunchComplete(); err != nil {
			log.Printf("Warning: Failed to mark first launch complete: %v", err)
		}
	}
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}

	if g.renderer != nil {
		g.prefs.FlipBoard = g.renderer.Flipped()
		g.prefs.ShowLegalMoves = g.showHints
	}
	if g.feedback != nil {
		g.prefs.SoundEnabled = g.feedback.Audio().IsEnabled()
	}
	g.prefs.LastPlayed = time.Now()

	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// resume reloads the game marked as current, if it is still in progress.
func (g *Game) resume() {
	if g.storage == nil {
		return
	}
	id, err := g.storage.CurrentGame()
	if err != nil {
		log.Printf("Warning: Failed to read current game: %v", err)
		return
	}
	if id == "" {
		return
	}

	rec, err := g.storage.LoadGame(id)
	if err != nil {
		log.Printf("Warning: Failed to load game %s: %v", id, err)
		return
	}
	state, err := rec.Replay()
	if err != nil {
		log.Printf("Warning: Failed to replay game %s: %v", id, err)
		return
	}
	if state.Status() != board.InProgress {
		return
	}

	g.state = state
	g.san = nil
	g.gameID = rec.ID
	g.started = time.Now()
	g.outcome = board.InProgress
	g.recorded = false
	log.Printf("Resumed game %s after %d moves", id, len(rec.Moves))
}

// startNewGame resets the board to the initial position.
func (g *Game) startNewGame() {
	g.state = board.NewGame()
	g.san = nil
	g.gameID = strconv.FormatInt(time.Now().UnixNano(), 36)
	g.started = time.Now()
	g.outcome = board.InProgress
	g.recorded = false
	g.clearSelection()
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.SetScale(g.scale)
	g.input.Update()
	g.feedback.Update()

	g.handleAction(g.input.Action())

	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	g.handleBoardInput()
	g.updateCursor()
	return nil
}

// handleAction runs a keyboard command.
func (g *Game) handleAction(a Action) {
	switch a {
	case ActionUndo:
		g.UndoAction()
	case ActionReset:
		// R doubles as the rook under-promotion key while dragging a pawn.
		if !g.dragging {
			g.NewGameAction()
		}
	case ActionFlip:
		g.FlipAction()
	case ActionSave:
		g.SaveAction()
	case ActionToggleHints:
		g.showHints = !g.showHints
		g.savePreferences()
	case ActionToggleSound:
		audio := g.feedback.Audio()
		audio.SetEnabled(!audio.IsEnabled())
		g.savePreferences()
	}
}

// updateCursor sets the cursor shape based on what's being hovered.
func (g *Game) updateCursor() {
	shape := ebiten.CursorShapeDefault
	if g.panel.AnyButtonHovered() {
		shape = ebiten.CursorShapePointer
	} else if mx, my := g.input.MousePosition(); mx < BoardSize && my < BoardSize && g.outcome == board.InProgress {
		if p := g.state.PieceAt(g.renderer.ScreenToSquare(mx, my)); p != board.NoPiece && p.Color() == g.state.SideToMove() {
			shape = ebiten.CursorShapePointer
		}
	}
	ebiten.SetCursorShape(shape)
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)
	g.renderer.DrawBoard(screen)

	if g.state.InCheck() {
		g.renderer.DrawCheck(screen, g.state.KingSquare(g.state.SideToMove()))
	}

	last, hasLast := g.state.LastMove()
	var targets []board.Move
	if g.showHints {
		targets = g.targets
	}
	g.renderer.DrawHighlights(screen, g.selectedSquare, targets, last, hasLast)

	skip := board.NoSquare
	if g.dragging {
		skip = g.dragSquare
	}
	g.renderer.DrawPieces(screen, g.state.Board(), skip, g.feedback.Animations())

	if g.dragging {
		mx, my := g.input.MousePosition()
		g.renderer.DrawDraggedPiece(screen, g.dragPiece, mx, my)
	}

	g.feedback.Draw(screen, g.renderer, g.scale)
	g.panel.Draw(screen, g.scale)

	if g.outcome != board.InProgress {
		g.renderer.DrawBanner(screen, g.ResultText())
	}
}

// Layout returns the game's screen dimensions.
// Uses device scale factor for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// handleBoardInput processes mouse interactions with the board.
func (g *Game) handleBoardInput() {
	if g.outcome != board.InProgress {
		return
	}

	mx, my := g.input.MousePosition()

	if g.input.IsLeftJustPressed() {
		if mx >= BoardSize || my >= BoardSize {
			g.clearSelection()
			return
		}
		sq := g.renderer.ScreenToSquare(mx, my)
		if sq == board.NoSquare {
			return
		}

		// A second click on a target completes a click-click move. Clicking
		// the own rook with the king selected asks for castling.
		if g.selectedSquare != board.NoSquare && sq != g.selectedSquare {
			if m, ok := g.findMove(g.selectedSquare, sq); ok {
				g.makeMove(m)
				return
			}
		}

		piece := g.state.PieceAt(sq)
		if piece != board.NoPiece && piece.Color() == g.state.SideToMove() {
			g.selectSquare(sq)
			g.startDrag(sq)
			return
		}

		if g.selectedSquare != board.NoSquare {
			g.rejectMove(g.selectedSquare, sq)
		} else if piece != board.NoPiece {
			g.rejectMove(sq, sq)
		}
		g.clearSelection()
		return
	}

	if g.dragging && g.input.IsLeftJustReleased() {
		g.handleDragRelease(mx, my)
	}
}

// selectSquare selects a square and collects the legal moves from it.
func (g *Game) selectSquare(sq board.Square) {
	g.selectedSquare = sq
	g.targets = g.targets[:0]
	for _, m := range g.state.GenerateLegalMoves() {
		// Show each destination once; promotions come in four kinds.
		if m.From == sq && (!m.IsPromotion() || m.Promotion == board.Queen) {
			g.targets = append(g.targets, m)
		}
	}
}

// clearSelection clears the current selection.
func (g *Game) clearSelection() {
	g.selectedSquare = board.NoSquare
	g.targets = g.targets[:0]
	g.dragging = false
	g.dragPiece = board.NoPiece
	g.dragSquare = board.NoSquare
}

// startDrag begins dragging a piece.
func (g *Game) startDrag(sq board.Square) {
	g.dragging = true
	g.dragPiece = g.state.PieceAt(sq)
	g.dragSquare = sq
}

// handleDragRelease handles releasing a dragged piece.
func (g *Game) handleDragRelease(mx, my int) {
	from := g.dragSquare
	g.dragging = false
	g.dragPiece = board.NoPiece
	g.dragSquare = board.NoSquare

	if mx >= BoardSize || my >= BoardSize {
		return
	}
	to := g.renderer.ScreenToSquare(mx, my)
	if to == board.NoSquare || to == from {
		// Dropped back in place: keep the selection for a click-click move.
		return
	}

	if m, ok := g.findMove(from, to); ok {
		g.makeMove(m)
		return
	}
	g.rejectMove(from, to)
	g.clearSelection()
}

// candidate builds the move the player asked for, choosing a promotion
// piece and turning king-onto-own-rook into castling.
func (g *Game) candidate(from, to board.Square) board.Move {
	p := g.state.PieceAt(from)
	promo := board.NoPieceType
	if p.Type() == board.Pawn && (to.Rank() == 1 || to.Rank() == 8) {
		promo = g.input.PromotionChoice()
	}

	if p.Type() == board.King {
		if r := g.state.PieceAt(to); r.Type() == board.Rook && r.Color() == p.Color() && to.Row() == from.Row() {
			col := 6
			if to.Col() < from.Col() {
				col = 2
			}
			to, _ = board.NewSquare(from.Row(), col)
		}
	}
	return board.Candidate(from, to, promo)
}

// findMove returns the legal move from -> to, if there is one.
func (g *Game) findMove(from, to board.Square) (board.Move, bool) {
	c := g.candidate(from, to)
	for _, m := range g.state.GenerateLegalMoves() {
		if m.Equal(c) {
			return m, true
		}
	}
	return board.NoMove, false
}

// rejectMove explains why from -> to was refused.
func (g *Game) rejectMove(from, to board.Square) {
	reason := g.state.Explain(g.candidate(from, to))
	if reason == board.Accepted {
		return
	}
	g.feedback.OnInvalidMove(board.Candidate(from, to, board.NoPieceType), reason)
}

// makeMove applies a move and updates game state.
func (g *Game) makeMove(m board.Move) {
	if err := g.state.ApplyMove(m); err != nil {
		log.Printf("Rejected move %s: %v", board.AlgebraicNotation(m), err)
		g.rejectMove(m.From, m.To)
		g.clearSelection()
		return
	}
	g.san = nil
	g.clearSelection()
	g.panel.ScrollToEnd()

	g.feedback.OnMoveMade(m, g.state.InCheck())
	g.checkGameEnd()
	g.autosave()
}

// checkGameEnd records the result once when the game finishes.
func (g *Game) checkGameEnd() {
	g.outcome = g.state.Status()
	if g.outcome == board.InProgress || g.recorded {
		return
	}
	g.recorded = true
	g.feedback.OnGameOver(g.outcome, g.state.Winner())

	if g.storage == nil {
		return
	}
	result := storage.GameResult{
		Outcome:  g.outcome,
		Winner:   g.state.Winner(),
		Plies:    len(g.state.MoveLog()),
		Duration: time.Since(g.started),
	}
	if err := g.storage.RecordGame(result); err != nil {
		log.Printf("Warning: Failed to record game: %v", err)
	}
}

// autosave stores the game and marks it current while it is in progress.
func (g *Game) autosave() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SaveGame(storage.NewGameRecord(g.gameID, g.state)); err != nil {
		log.Printf("Warning: Failed to save game: %v", err)
		return
	}
	current := g.gameID
	if g.outcome != board.InProgress {
		current = ""
	}
	if err := g.storage.SetCurrentGame(current); err != nil {
		log.Printf("Warning: Failed to set current game: %v", err)
	}
}

// NewGameAction starts a new game.
func (g *Game) NewGameAction() {
	g.startNewGame()
	g.panel.ScrollToEnd()
	g.autosave()
	g.feedback.Notify("New game", ToastInfo)
}

// UndoAction takes back the last move. A finished game becomes playable
// again, but its result stays recorded.
func (g *Game) UndoAction() {
	if _, err := g.state.UndoMove(); err != nil {
		g.feedback.Notify("Nothing to undo", ToastInfo)
		return
	}
	g.san = nil
	g.clearSelection()
	g.outcome = g.state.Status()
	g.autosave()
}

// FlipAction turns the board around.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
	g.savePreferences()
}

// SaveAction saves the game explicitly.
func (g *Game) SaveAction() {
	if g.storage == nil {
		g.feedback.Notify("No storage configured", ToastWarning)
		return
	}
	g.autosave()
	g.feedback.Notify(fmt.Sprintf("Saved game %s", g.gameID), ToastSuccess)
}

// State returns the rules state of the game in progress.
func (g *Game) State() *board.GameState {
	return g.state
}

// SANHistory returns the moves played in Standard Algebraic Notation.
func (g *Game) SANHistory() []string {
	if g.san == nil {
		g.san = g.state.SANLog()
	}
	return g.san
}

// Outcome returns the game status as of the last move.
func (g *Game) Outcome() board.Outcome {
	return g.outcome
}

// ResultText describes the finished game.
func (g *Game) ResultText() string {
	if g.outcome == board.WinByCheckmate {
		return fmt.Sprintf("Checkmate - %s wins", g.state.Winner())
	}
	return "Draw - " + g.outcome.String()
}

// Close saves preferences and the game in progress.
func (g *Game) Close() {
	g.savePreferences()
	g.autosave()
}
