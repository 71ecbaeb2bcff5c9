// Command chesscore-perft counts move-tree leaves to validate the move
// generator and measure its speed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

var (
	depth      = flag.Int("depth", 4, "search depth in plies")
	divide     = flag.Bool("divide", false, "print the node count below every root move")
	workers    = flag.Int("workers", runtime.NumCPU(), "number of root moves searched in parallel")
	moves      = flag.String("moves", "", "space-separated moves (e2e4 e7e5 ...) played before counting")
	setupFile  = flag.String("setup", "", "JSON position diagram to start from instead of the initial position")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	g, err := loadPosition(*setupFile, *moves)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	entries, err := parallelDivide(ctx, g, *depth, *workers)
	if err != nil {
		log.Printf("perft stopped: %v", err)
		return
	}
	elapsed := time.Since(start)

	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	if *divide {
		sort.Slice(entries, func(i, j int) bool {
			return board.AlgebraicNotation(entries[i].Move) < board.AlgebraicNotation(entries[j].Move)
		})
		for _, e := range entries {
			fmt.Printf("%s: %d\n", board.AlgebraicNotation(e.Move), e.Nodes)
		}
		fmt.Println()
	}
	fmt.Printf("depth %d: %d nodes in %s (%.0f nps)\n", *depth, total, elapsed.Round(time.Millisecond),
		float64(total)/elapsed.Seconds())
}

// loadPosition builds the starting game from an optional setup file and
// a list of moves to play first.
func loadPosition(path, moveList string) (*board.GameState, error) {
	g := board.NewGame()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var s board.Setup
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if g, err = board.NewGameFromSetup(s); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	for _, tok := range strings.Fields(moveList) {
		m, err := board.ParseMove(tok)
		if err != nil {
			return nil, err
		}
		if err := g.ApplyMove(m); err != nil {
			return nil, fmt.Errorf("move %s: %w", tok, err)
		}
	}
	return g, nil
}

// parallelDivide splits the root moves across workers, each searching its
// own copy of the game.
func parallelDivide(ctx context.Context, g *board.GameState, depth, workers int) ([]board.DivideEntry, error) {
	if depth <= 0 {
		return []board.DivideEntry{{Move: board.NoMove, Nodes: 1}}, nil
	}

	roots := g.GenerateLegalMoves()
	entries := make([]board.DivideEntry, len(roots))
	var done atomic.Int64

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, workers))
	for i, m := range roots {
		i, m := i, m
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child := g.Clone()
			if err := child.ApplyMove(m); err != nil {
				return err
			}
			entries[i] = board.DivideEntry{Move: m, Nodes: child.Perft(depth - 1)}
			if n := done.Add(1); n%8 == 0 {
				log.Printf("%d/%d root moves done", n, len(roots))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
