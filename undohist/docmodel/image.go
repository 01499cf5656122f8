package docmodel

import (
	"fmt"

	"github.com/libresprite/undohist"
)

// Image is a single in-memory pixel buffer: a flat byte plane, row-major,
// one line per H rows of LineSize(W) bytes each. The layout mirrors
// spec.md §6.2's Image blob (minus the id, which ObjectsContainer tracks
// separately).
type Image struct {
	imgtype   undohist.Imgtype
	w, h      uint16
	maskColor uint32
	pix       []byte
}

// NewImage allocates a zeroed image of the given type and size.
func NewImage(t undohist.Imgtype, w, h uint16) *Image {
	img := &Image{imgtype: t, w: w, h: h}
	img.pix = make([]byte, img.LineSize(w)*int(h))
	return img
}

func (img *Image) Imgtype() undohist.Imgtype { return img.imgtype }
func (img *Image) W() uint16                 { return img.w }
func (img *Image) H() uint16                 { return img.h }
func (img *Image) MaskColor() uint32         { return img.maskColor }
func (img *Image) SetMaskColor(c uint32)     { img.maskColor = c }

// Pix exposes the raw backing plane; callers must not resize it.
func (img *Image) Pix() []byte { return img.pix }

func (img *Image) LineSize(w uint16) int {
	return int(w) * img.imgtype.BytesPerPixel()
}

func (img *Image) inBounds(x, y, w, h uint16) error {
	if w == 0 || h == 0 {
		return fmt.Errorf("docmodel: zero-extent rectangle")
	}
	if int(x)+int(w) > int(img.w) || int(y)+int(h) > int(img.h) {
		return fmt.Errorf("docmodel: rectangle (%d,%d,%d,%d) out of bounds for %dx%d image",
			x, y, w, h, img.w, img.h)
	}
	return nil
}

func (img *Image) ReadRect(x, y, w, h uint16) ([]byte, error) {
	if err := img.inBounds(x, y, w, h); err != nil {
		return nil, err
	}
	lineSize := img.LineSize(w)
	imgLineSize := img.LineSize(img.w)
	bpp := img.imgtype.BytesPerPixel()
	out := make([]byte, lineSize*int(h))
	for row := 0; row < int(h); row++ {
		srcOff := (int(y)+row)*imgLineSize + int(x)*bpp
		copy(out[row*lineSize:(row+1)*lineSize], img.pix[srcOff:srcOff+lineSize])
	}
	return out, nil
}

func (img *Image) WriteRect(x, y, w, h uint16, data []byte) error {
	if err := img.inBounds(x, y, w, h); err != nil {
		return err
	}
	lineSize := img.LineSize(w)
	if len(data) != lineSize*int(h) {
		return fmt.Errorf("docmodel: WriteRect expected %d bytes, got %d", lineSize*int(h), len(data))
	}
	imgLineSize := img.LineSize(img.w)
	bpp := img.imgtype.BytesPerPixel()
	for row := 0; row < int(h); row++ {
		dstOff := (int(y)+row)*imgLineSize + int(x)*bpp
		copy(img.pix[dstOff:dstOff+lineSize], data[row*lineSize:(row+1)*lineSize])
	}
	return nil
}

func (img *Image) FlipRect(x1, y1, x2, y2 uint16, axis undohist.FlipAxis) error {
	if x2 < x1 || y2 < y1 {
		return fmt.Errorf("docmodel: invalid flip rectangle (%d,%d)-(%d,%d)", x1, y1, x2, y2)
	}
	w, h := x2-x1+1, y2-y1+1
	rect, err := img.ReadRect(x1, y1, w, h)
	if err != nil {
		return err
	}
	lineSize := img.LineSize(w)
	bpp := img.imgtype.BytesPerPixel()
	flipped := make([]byte, len(rect))

	switch axis {
	case undohist.FlipHorizontal:
		for row := 0; row < int(h); row++ {
			src := rect[row*lineSize : (row+1)*lineSize]
			dst := flipped[row*lineSize : (row+1)*lineSize]
			for col := 0; col < int(w); col++ {
				srcPix := src[col*bpp : (col+1)*bpp]
				dstPix := dst[(int(w)-1-col)*bpp : (int(w)-col)*bpp]
				copy(dstPix, srcPix)
			}
		}
	case undohist.FlipVertical:
		for row := 0; row < int(h); row++ {
			srcRow := rect[row*lineSize : (row+1)*lineSize]
			dstRow := flipped[(int(h)-1-row)*lineSize : (int(h)-row)*lineSize]
			copy(dstRow, srcRow)
		}
	default:
		return fmt.Errorf("docmodel: unknown flip axis %d", axis)
	}
	return img.WriteRect(x1, y1, w, h, flipped)
}
