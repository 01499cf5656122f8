package docmodel

// Palette is one frame's set of indexed RGBA colors.
type Palette struct {
	frame   uint16
	entries []uint32
}

func NewPalette(frame uint16, entries []uint32) *Palette {
	return &Palette{frame: frame, entries: append([]uint32(nil), entries...)}
}

func (p *Palette) Frame() uint16       { return p.frame }
func (p *Palette) Size() int           { return len(p.entries) }
func (p *Palette) Entry(i int) uint32  { return p.entries[i] }
func (p *Palette) Entries() []uint32   { return p.entries }
func (p *Palette) SetEntries(e []uint32) { p.entries = e }
