package docmodel

import (
	"bytes"
	"testing"

	"github.com/libresprite/undohist"
)

func TestImageReadWriteRect(t *testing.T) {
	img := NewImage(undohist.ImgtypeIndexed, 4, 4)
	data := []byte{1, 2, 3, 4}
	if err := img.WriteRect(1, 1, 2, 2, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("WriteRect: %v", err)
	}
	got, err := img.ReadRect(1, 1, 2, 2)
	if err != nil {
		t.Fatalf("ReadRect: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("ReadRect = %v, want %v", got, data)
	}

	whole, _ := img.ReadRect(0, 0, 4, 4)
	if whole[1*4+1] != 1 || whole[1*4+2] != 2 || whole[2*4+1] != 3 || whole[2*4+2] != 4 {
		t.Fatalf("written pixels landed in the wrong place: %v", whole)
	}
}

func TestImageRectOutOfBounds(t *testing.T) {
	img := NewImage(undohist.ImgtypeRGB, 4, 4)
	if _, err := img.ReadRect(3, 3, 2, 2); err == nil {
		t.Fatal("expected an error reading past the image bounds")
	}
	if err := img.WriteRect(0, 0, 4, 4, make([]byte, 3)); err == nil {
		t.Fatal("expected an error writing a mis-sized rect")
	}
	if err := img.WriteRect(0, 0, 0, 1, []byte{}); err == nil {
		t.Fatal("expected an error for a zero-extent rectangle")
	}
}

func TestImageFlipHorizontal(t *testing.T) {
	img := NewImage(undohist.ImgtypeIndexed, 3, 1)
	if err := img.WriteRect(0, 0, 3, 1, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := img.FlipRect(0, 0, 2, 0, undohist.FlipHorizontal); err != nil {
		t.Fatalf("FlipRect: %v", err)
	}
	got, _ := img.ReadRect(0, 0, 3, 1)
	if !bytes.Equal(got, []byte{3, 2, 1}) {
		t.Fatalf("after horizontal flip = %v, want [3 2 1]", got)
	}
}

func TestImageFlipVertical(t *testing.T) {
	img := NewImage(undohist.ImgtypeIndexed, 1, 3)
	if err := img.WriteRect(0, 0, 1, 3, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := img.FlipRect(0, 0, 0, 2, undohist.FlipVertical); err != nil {
		t.Fatalf("FlipRect: %v", err)
	}
	got, _ := img.ReadRect(0, 0, 1, 3)
	if !bytes.Equal(got, []byte{3, 2, 1}) {
		t.Fatalf("after vertical flip = %v, want [3 2 1]", got)
	}
}

func TestImageMaskColor(t *testing.T) {
	img := NewImage(undohist.ImgtypeIndexed, 1, 1)
	if img.MaskColor() != 0 {
		t.Fatalf("MaskColor default = %d, want 0", img.MaskColor())
	}
	img.SetMaskColor(7)
	if img.MaskColor() != 7 {
		t.Fatalf("MaskColor after set = %d, want 7", img.MaskColor())
	}
}
