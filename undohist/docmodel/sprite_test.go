package docmodel

import (
	"bytes"
	"testing"

	"github.com/libresprite/undohist"
)

func newTestSprite() *Sprite {
	return NewSprite(64, 64, undohist.ImgtypeIndexed, 3, 100, NewStock())
}

func TestSpriteFrameDurationsSeeded(t *testing.T) {
	s := newTestSprite()
	for f := uint16(0); f < 3; f++ {
		if d := s.FrameDuration(f); d != 100 {
			t.Fatalf("FrameDuration(%d) = %d, want 100", f, d)
		}
	}
	if d := s.FrameDuration(5); d != 0 {
		t.Fatalf("FrameDuration out of range = %d, want 0", d)
	}
}

func TestSpriteSetTotalFramesGrowsWithDefault(t *testing.T) {
	s := newTestSprite()
	s.SetFrameDuration(2, 250)
	s.SetTotalFrames(5)

	if s.TotalFrames() != 5 {
		t.Fatalf("TotalFrames() = %d, want 5", s.TotalFrames())
	}
	if d := s.FrameDuration(2); d != 250 {
		t.Fatal("growing the frame count should preserve existing durations")
	}
	if d := s.FrameDuration(4); d != 100 {
		t.Fatalf("new frame duration = %d, want the default of 100", d)
	}
}

func TestSpriteSetTotalFramesShrinks(t *testing.T) {
	s := newTestSprite()
	s.SetTotalFrames(1)
	if s.TotalFrames() != 1 {
		t.Fatalf("TotalFrames() = %d, want 1", s.TotalFrames())
	}
	if d := s.FrameDuration(1); d != 0 {
		t.Fatal("a frame beyond the shrunk count should report 0")
	}
}

func TestSpritePaletteAtAndRemove(t *testing.T) {
	s := newTestSprite()
	p := NewPalette(0, []uint32{1, 2})
	s.SetPaletteAt(0, p)
	if s.PaletteAt(0) != undohist.Palette(p) {
		t.Fatal("SetPaletteAt/PaletteAt round trip failed")
	}
	removed := s.RemovePaletteAt(0)
	if removed != undohist.Palette(p) || s.PaletteAt(0) != nil {
		t.Fatal("RemovePaletteAt should clear the slot and return the old palette")
	}
}

func TestSpriteSetPaletteAtNilRemoves(t *testing.T) {
	s := newTestSprite()
	s.SetPaletteAt(0, NewPalette(0, nil))
	s.SetPaletteAt(0, nil)
	if s.PaletteAt(0) != nil {
		t.Fatal("SetPaletteAt(frame, nil) should clear the slot")
	}
}

func TestSpriteReadWriteBytes(t *testing.T) {
	s := newTestSprite()
	if err := s.WriteBytes(0, []byte("hello")); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	got, err := s.ReadBytes(0, 5)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("ReadBytes = %q, want %q", got, "hello")
	}

	if err := s.WriteBytes(5, []byte(" world")); err != nil {
		t.Fatalf("WriteBytes extending: %v", err)
	}
	got, err = s.ReadBytes(0, 11)
	if err != nil {
		t.Fatalf("ReadBytes after extend: %v", err)
	}
	if !bytes.Equal(got, []byte("hello world")) {
		t.Fatalf("ReadBytes after extend = %q", got)
	}

	if _, err := s.ReadBytes(0, 100); err == nil {
		t.Fatal("ReadBytes past the end should fail")
	}
}

func TestSpriteRemapImagesPermutesPixelsAndPalette(t *testing.T) {
	s := newTestSprite()
	img := NewImage(undohist.ImgtypeIndexed, 2, 1)
	if err := img.WriteRect(0, 0, 2, 1, []byte{0, 1}); err != nil {
		t.Fatal(err)
	}
	s.Stock().InsertAt(0, img)

	layer := NewImageLayer("layer")
	layer.SetCels([]undohist.Cel{NewCel(0, 0, 0, 0, 255)})
	s.RootLayer().SetChildren([]undohist.Layer{layer})

	s.SetPaletteAt(0, NewPalette(0, []uint32{0xff000000, 0xff0000ff}))

	var mapping [256]byte
	for i := range mapping {
		mapping[i] = byte(i)
	}
	mapping[0], mapping[1] = 1, 0

	s.RemapImages(0, 0, mapping)

	rect, _ := img.ReadRect(0, 0, 2, 1)
	if rect[0] != 1 || rect[1] != 0 {
		t.Fatalf("pixels after remap = %v, want [1 0]", rect)
	}
	entries := s.PaletteAt(0).Entries()
	if entries[0] != 0xff0000ff || entries[1] != 0xff000000 {
		t.Fatalf("palette after remap = %v", entries)
	}
}

func TestSpriteRemapImagesSkipsFramesOutsideRange(t *testing.T) {
	s := newTestSprite()
	img := NewImage(undohist.ImgtypeIndexed, 1, 1)
	if err := img.WriteRect(0, 0, 1, 1, []byte{0}); err != nil {
		t.Fatal(err)
	}
	s.Stock().InsertAt(0, img)

	layer := NewImageLayer("layer")
	layer.SetCels([]undohist.Cel{NewCel(2, 0, 0, 0, 255)})
	s.RootLayer().SetChildren([]undohist.Layer{layer})

	var mapping [256]byte
	for i := range mapping {
		mapping[i] = byte(i)
	}
	mapping[0] = 9

	s.RemapImages(0, 0, mapping)

	rect, _ := img.ReadRect(0, 0, 1, 1)
	if rect[0] != 0 {
		t.Fatal("a cel outside [frameFrom,frameTo] should not be remapped")
	}
}
