package docmodel

// Mask is a document-wide selection: a rectangle plus a packed-bit bitmap,
// (w+7)/8 bytes per row, matching spec.md §6.2.
type Mask struct {
	x, y, w, h uint16
	bits       []byte
}

func NewMask(x, y, w, h uint16, bits []byte) *Mask {
	return &Mask{x: x, y: y, w: w, h: h, bits: bits}
}

func (m *Mask) Rect() (x, y, w, h uint16) { return m.x, m.y, m.w, m.h }
func (m *Mask) SetRect(x, y, w, h uint16) { m.x, m.y, m.w, m.h = x, y, w, h }
func (m *Mask) Bits() []byte              { return m.bits }
func (m *Mask) SetBits(b []byte)          { m.bits = b }
