// Package pieceset rasterizes chess piece images for the board view.
//
// Images are looked up by piece identifier ("wK.svg", "bp.png", ...) in a
// directory. SVG files are rendered with oksvg, PNG files are rescaled to
// the requested size, and pieces with no file get a generated token.
package pieceset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/hailam/chesscore/internal/board"
)

// Pieces lists every piece the board can show.
var Pieces = []board.Piece{
	board.WhitePawn, board.WhiteKnight, board.WhiteBishop, board.WhiteRook, board.WhiteQueen, board.WhiteKing,
	board.BlackPawn, board.BlackKnight, board.BlackBishop, board.BlackRook, board.BlackQueen, board.BlackKing,
}

// Set holds one rasterized image per piece.
type Set struct {
	Images map[board.Piece]*image.RGBA
	// Generated marks pieces drawn as plain tokens; the caller is expected
	// to label them with the piece letter.
	Generated map[board.Piece]bool
	Size      int
}

// Load rasterizes every piece at size x size pixels. dir may be empty, in
// which case all pieces are generated tokens. Files that exist but cannot be
// decoded are reported in the returned error and replaced by tokens.
func Load(dir string, size int) (*Set, error) {
	set := &Set{
		Images:    make(map[board.Piece]*image.RGBA, len(Pieces)),
		Generated: make(map[board.Piece]bool),
		Size:      size,
	}

	var errs []error
	for _, p := range Pieces {
		img, err := loadFile(dir, p.ID(), size)
		if err != nil {
			errs = append(errs, err)
		}
		if img == nil {
			img, err = RasterizeSVG(bytes.NewReader(TokenSVG(p)), size)
			if err != nil {
				errs = append(errs, fmt.Errorf("token %s: %w", p.ID(), err))
				continue
			}
			set.Generated[p] = true
		}
		set.Images[p] = img
	}
	return set, errors.Join(errs...)
}

// fileNames returns the base names tried for a piece: its identifier and
// the upper-case form most published piece sets use ("bp" and "bP").
func fileNames(id string) []string {
	upper := id[:1] + strings.ToUpper(id[1:])
	if upper == id {
		return []string{id}
	}
	return []string{id, upper}
}

// loadFile returns (nil, nil) when no image file exists for id.
func loadFile(dir, id string, size int) (*image.RGBA, error) {
	if dir == "" {
		return nil, nil
	}

	for _, name := range fileNames(id) {
		svgPath := filepath.Join(dir, name+".svg")
		if data, err := os.ReadFile(svgPath); err == nil {
			img, err := RasterizeSVG(bytes.NewReader(data), size)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", svgPath, err)
			}
			return img, nil
		}

		pngPath := filepath.Join(dir, name+".png")
		if data, err := os.ReadFile(pngPath); err == nil {
			src, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pngPath, err)
			}
			return Scale(src, size), nil
		}
	}

	log.Printf("pieceset: no image for %s in %s, using token", id, dir)
	return nil, nil
}

// RasterizeSVG renders an SVG document into a size x size RGBA image.
func RasterizeSVG(r io.Reader, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// Scale resamples src to a size x size RGBA image.
func Scale(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// TokenSVG returns a round token in the piece's color. Kings and queens get
// a double ring so the two most important pieces stand out.
func TokenSVG(p board.Piece) []byte {
	fill, stroke := "#f8f8f0", "#202020"
	if p.Color() == board.Black {
		fill, stroke = "#303030", "#e0e0e0"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">`)
	fmt.Fprintf(&buf, `<circle cx="50" cy="50" r="38" fill="%s" stroke="%s" stroke-width="4"/>`, fill, stroke)
	if t := p.Type(); t == board.King || t == board.Queen {
		fmt.Fprintf(&buf, `<circle cx="50" cy="50" r="31" fill="none" stroke="%s" stroke-width="2"/>`, stroke)
	}
	buf.WriteString(`</svg>`)
	return buf.Bytes()
}
