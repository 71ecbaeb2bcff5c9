// ChessCore - a two-player chess board built with Ebitengine
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/ui"
)

var (
	dbDir     = flag.String("db", "", "database directory (default: platform data dir, or $CHESSCORE_DB)")
	pieceDir  = flag.String("pieces", "", "directory with piece images wK.svg, bp.png, ... (or $CHESSCORE_PIECES)")
	resume    = flag.Bool("resume", false, "continue the last unfinished game")
	memDB     = flag.Bool("memdb", false, "keep everything in memory; nothing is saved")
	showStats = flag.Bool("stats", false, "print statistics and saved games, then exit")
	debug     = flag.Bool("debug", false, "check king bookkeeping after every move")
)

func main() {
	flag.Parse()
	board.DebugMoveValidation = *debug

	store, err := openStorage()
	if err != nil {
		log.Printf("Warning: storage unavailable, playing without saving: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	if *showStats {
		if store == nil {
			log.Fatal("no storage to read statistics from")
		}
		if err := printStats(store); err != nil {
			log.Fatal(err)
		}
		return
	}

	dir := *pieceDir
	if dir == "" {
		dir = os.Getenv("CHESSCORE_PIECES")
	}

	game := ui.NewGame(ui.Options{
		Storage:  store,
		PieceDir: dir,
		Resume:   *resume,
	})
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("ChessCore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// openStorage resolves the database location from flags and environment.
func openStorage() (*storage.Storage, error) {
	if *memDB {
		return storage.OpenInMemory()
	}
	dir := *dbDir
	if dir == "" {
		dir = os.Getenv("CHESSCORE_DB")
	}
	if dir != "" {
		return storage.Open(dir)
	}
	return storage.NewStorage()
}

func printStats(s *storage.Storage) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	fmt.Printf("Games played:  %d\n", stats.GamesPlayed)
	fmt.Printf("White wins:    %d\n", stats.WhiteWins)
	fmt.Printf("Black wins:    %d\n", stats.BlackWins)
	fmt.Printf("Draws:         %d (%.1f%%)\n", stats.Draws, stats.DrawRate())
	for reason, n := range stats.DrawsByReason {
		fmt.Printf("  %-30s %d\n", reason, n)
	}
	fmt.Printf("Longest game:  %d plies\n", stats.LongestGame)
	fmt.Printf("Time played:   %s\n", stats.TotalPlayTime.Round(time.Second))

	games, err := s.ListGames()
	if err != nil {
		return err
	}
	if len(games) > 0 {
		fmt.Println("\nSaved games:")
	}
	for _, g := range games {
		fmt.Printf("  %-14s %3d moves  %-30s %s\n", g.ID, len(g.Moves), g.Outcome, g.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
