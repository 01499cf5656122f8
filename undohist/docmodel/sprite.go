package docmodel

import (
	"fmt"

	"github.com/libresprite/undohist"
)

// Sprite is the Sprite/Document collaborator: current frame/layer, frame
// timing, palettes by frame, the selection mask, and document-wide
// properties. It also carries a small UserData blob used to exercise the
// generic DATA chunk kind (spec.md §4.2's RawStorage collaborator).
type Sprite struct {
	frame          uint16
	totalFrames    uint16
	frameDurations []uint16 // indexed by frame
	palettes       map[uint16]undohist.Palette

	mask undohist.Mask

	w, h    uint16
	imgtype undohist.Imgtype

	layer     undohist.Layer
	rootLayer undohist.Layer
	stock     undohist.Stock

	userData []byte
}

// NewSprite builds a sprite with totalFrames frames (each frameDurationMs
// long), a root folder layer and the given stock.
func NewSprite(w, h uint16, imgtype undohist.Imgtype, totalFrames uint16, frameDurationMs uint16, stock undohist.Stock) *Sprite {
	s := &Sprite{
		totalFrames: totalFrames,
		w:           w,
		h:           h,
		imgtype:     imgtype,
		palettes:    make(map[uint16]undohist.Palette),
		mask:        NewMask(0, 0, 0, 0, nil),
		rootLayer:   NewFolderLayer(""),
		stock:       stock,
	}
	s.frameDurations = make([]uint16, totalFrames)
	for i := range s.frameDurations {
		s.frameDurations[i] = frameDurationMs
	}
	return s
}

func (s *Sprite) Frame() uint16     { return s.frame }
func (s *Sprite) SetFrame(f uint16) { s.frame = f }

func (s *Sprite) TotalFrames() uint16 { return s.totalFrames }
func (s *Sprite) SetTotalFrames(n uint16) {
	switch {
	case int(n) < len(s.frameDurations):
		s.frameDurations = s.frameDurations[:n]
	case int(n) > len(s.frameDurations):
		grown := make([]uint16, n)
		copy(grown, s.frameDurations)
		for i := len(s.frameDurations); i < int(n); i++ {
			grown[i] = 100
		}
		s.frameDurations = grown
	}
	s.totalFrames = n
}

func (s *Sprite) FrameDuration(frame uint16) uint16 {
	if int(frame) >= len(s.frameDurations) {
		return 0
	}
	return s.frameDurations[frame]
}

func (s *Sprite) SetFrameDuration(frame, durationMs uint16) {
	if int(frame) < len(s.frameDurations) {
		s.frameDurations[frame] = durationMs
	}
}

func (s *Sprite) PaletteAt(frame uint16) undohist.Palette { return s.palettes[frame] }
func (s *Sprite) SetPaletteAt(frame uint16, p undohist.Palette) {
	if p == nil {
		delete(s.palettes, frame)
		return
	}
	s.palettes[frame] = p
}
func (s *Sprite) RemovePaletteAt(frame uint16) undohist.Palette {
	p := s.palettes[frame]
	delete(s.palettes, frame)
	return p
}

func (s *Sprite) Mask() undohist.Mask { return s.mask }

// SetMask normalizes a nil m (meaning "clear the selection") to a
// zero-sized Mask, per spec.md §6.2's "zero w or zero h" convention for an
// absent mask, so Mask() never returns a nil interface value.
func (s *Sprite) SetMask(m undohist.Mask) {
	if m == nil {
		m = NewMask(0, 0, 0, 0, nil)
	}
	s.mask = m
}

func (s *Sprite) Size() (w, h uint16)     { return s.w, s.h }
func (s *Sprite) SetSize(w, h uint16)     { s.w, s.h = w, h }

func (s *Sprite) Imgtype() undohist.Imgtype     { return s.imgtype }
func (s *Sprite) SetImgtype(t undohist.Imgtype) { s.imgtype = t }

func (s *Sprite) Layer() undohist.Layer     { return s.layer }
func (s *Sprite) SetLayer(l undohist.Layer) { s.layer = l }

func (s *Sprite) RootLayer() undohist.Layer { return s.rootLayer }
func (s *Sprite) Stock() undohist.Stock     { return s.stock }

// RemapImages remaps every indexed pixel p, in every Stock image used by a
// Cel whose frame is in [frameFrom, frameTo], to mapping[p], and permutes
// the corresponding frames' Palette entries the same way: newEntries[mapping[i]]
// = oldEntries[i], so a color's slot tracks the pixels that now reference it.
func (s *Sprite) RemapImages(frameFrom, frameTo uint16, mapping [256]byte) {
	seen := map[undohist.Image]bool{}
	walkLayers(s.rootLayer, func(l undohist.Layer) {
		if l.Kind() != undohist.LayerKindImage {
			return
		}
		for _, cel := range l.Cels() {
			if cel.Frame() < frameFrom || cel.Frame() > frameTo {
				continue
			}
			img := s.stock.Get(cel.ImageIndex())
			if img == nil || img.Imgtype() != undohist.ImgtypeIndexed || seen[img] {
				continue
			}
			seen[img] = true
			remapIndexedPixels(img, mapping)
		}
	})

	for frame := frameFrom; frame <= frameTo; frame++ {
		p := s.palettes[frame]
		if p == nil {
			continue
		}
		old := p.Entries()
		remapped := make([]uint32, len(old))
		for i, v := range old {
			if i < 256 {
				remapped[mapping[i]] = v
			}
		}
		p.SetEntries(remapped)
		if frame == frameTo {
			break // avoid uint16 wraparound when frameTo == 65535
		}
	}
}

func remapIndexedPixels(img undohist.Image, mapping [256]byte) {
	w, h := img.W(), img.H()
	rect, err := img.ReadRect(0, 0, w, h)
	if err != nil {
		return
	}
	for i, p := range rect {
		rect[i] = mapping[p]
	}
	_ = img.WriteRect(0, 0, w, h, rect)
}

func walkLayers(l undohist.Layer, fn func(undohist.Layer)) {
	if l == nil {
		return
	}
	fn(l)
	if l.Kind() == undohist.LayerKindFolder {
		for _, child := range l.Children() {
			walkLayers(child, fn)
		}
	}
}

// ReadBytes/WriteBytes implement undohist.RawStorage over UserData, so the
// generic DATA chunk kind has a collaborator to exercise.
func (s *Sprite) ReadBytes(offset, length uint32) ([]byte, error) {
	if uint64(offset)+uint64(length) > uint64(len(s.userData)) {
		return nil, fmt.Errorf("docmodel: ReadBytes range [%d,%d) out of bounds (len %d)",
			offset, offset+length, len(s.userData))
	}
	out := make([]byte, length)
	copy(out, s.userData[offset:offset+length])
	return out, nil
}

func (s *Sprite) WriteBytes(offset uint32, data []byte) error {
	end := uint64(offset) + uint64(len(data))
	if end > uint64(len(s.userData)) {
		grown := make([]byte, end)
		copy(grown, s.userData)
		s.userData = grown
	}
	copy(s.userData[offset:], data)
	return nil
}

func (s *Sprite) UserData() []byte { return s.userData }
func (s *Sprite) SetUserData(b []byte) { s.userData = b }
