package pieceset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func TestLoadWithoutDirectoryGeneratesTokens(t *testing.T) {
	set, err := Load("", 60)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set.Images) != len(Pieces) {
		t.Fatalf("got %d images, want %d", len(set.Images), len(Pieces))
	}
	for _, p := range Pieces {
		img := set.Images[p]
		if img.Bounds() != image.Rect(0, 0, 60, 60) {
			t.Errorf("%s bounds = %v", p, img.Bounds())
		}
		if !set.Generated[p] {
			t.Errorf("%s should be a generated token", p)
		}
		if _, _, _, a := img.At(30, 30).RGBA(); a == 0 {
			t.Errorf("%s token center is transparent", p)
		}
		if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
			t.Errorf("%s token corner should be transparent", p)
		}
	}

	white, _, _, _ := set.Images[board.WhiteKing].At(30, 30).RGBA()
	black, _, _, _ := set.Images[board.BlackKing].At(30, 30).RGBA()
	if white <= black {
		t.Errorf("white token (%d) should be lighter than black token (%d)", white, black)
	}
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "wK.svg"),
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10" fill="#ff0000"/></svg>`),
		0o644); err != nil {
		t.Fatal(err)
	}

	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			src.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bp.png"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(dir, 32)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if set.Generated[board.WhiteKing] || set.Generated[board.BlackPawn] {
		t.Error("pieces with files should not be generated")
	}
	if !set.Generated[board.WhiteQueen] {
		t.Error("missing files should fall back to tokens")
	}
	if r, g, b, _ := set.Images[board.WhiteKing].At(16, 16).RGBA(); r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("wK center = %d,%d,%d; want red", r>>8, g, b)
	}
	bp := set.Images[board.BlackPawn]
	if bp.Bounds().Dx() != 32 {
		t.Errorf("bp width = %d, want 32", bp.Bounds().Dx())
	}
	if _, _, b, _ := bp.At(16, 16).RGBA(); b>>8 < 250 {
		t.Errorf("bp center blue = %d, want ~255", b>>8)
	}
}

func TestLoadReportsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "wN.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(dir, 16)
	if err == nil {
		t.Fatal("expected an error for the broken file")
	}
	var target interface{ Unwrap() []error }
	if !errors.As(err, &target) {
		t.Errorf("error %v is not a joined error", err)
	}
	if set.Images[board.WhiteKnight] == nil || !set.Generated[board.WhiteKnight] {
		t.Error("broken file should be replaced by a token")
	}
}
