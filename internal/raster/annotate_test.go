package raster

import (
	"testing"

	"github.com/wb4/sgcreate/internal/colorx"
)

func TestAnnotateDoesNotMutateOriginal(t *testing.T) {
	img := New(40, 20)
	img.Fill(colorx.RGBA(0, 0, 0, 1))

	before := img.Clone()
	out, err := img.Annotate("hi", "", 12, 2, 12, colorx.RGBA(1, 1, 1, 1))
	if err != nil {
		t.Fatalf("Annotate returned error: %v", err)
	}
	for i := range img.Pix {
		if img.Pix[i] != before.Pix[i] {
			t.Fatalf("original image mutated at pixel %d", i)
		}
	}
	if out.Width != img.Width || out.Height != img.Height {
		t.Fatalf("annotated copy size = %dx%d, want %dx%d", out.Width, out.Height, img.Width, img.Height)
	}
}

func TestAnnotateWithBasicFontChangesSomePixels(t *testing.T) {
	img := New(60, 20)
	img.Fill(colorx.RGBA(0, 0, 0, 1))

	out, err := img.Annotate("W", "", 13, 2, 14, colorx.RGBA(1, 1, 1, 1))
	if err != nil {
		t.Fatalf("Annotate returned error: %v", err)
	}

	changed := false
	for i := range out.Pix {
		if out.Pix[i] != img.Pix[i] {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("expected at least one pixel to differ after annotating with visible text")
	}
}

func TestAnnotateEmptyTextLeavesImageUnchanged(t *testing.T) {
	img := New(20, 10)
	img.Fill(colorx.RGBA(0, 0, 0, 1))

	out, err := img.Annotate("", "", 13, 0, 0, colorx.RGBA(1, 1, 1, 1))
	if err != nil {
		t.Fatalf("Annotate returned error: %v", err)
	}
	for i := range img.Pix {
		if out.Pix[i] != img.Pix[i] {
			t.Fatalf("expected unchanged pixel %d for empty text annotation", i)
		}
	}
}

func TestAnnotateRejectsUnreadableFontFile(t *testing.T) {
	img := New(10, 10)
	if _, err := img.Annotate("x", "/nonexistent/path/to/font.ttf", 12, 0, 0, colorx.RGBA(1, 1, 1, 1)); err == nil {
		t.Error("expected an error for a missing font file")
	}
}
