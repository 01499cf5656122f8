package undohist

import "github.com/libresprite/undohist/rawio"

// Mask blob (spec.md §6.2): u16 x,y,w,h; then (w+7)/8 x h bytes, present
// only when both w and h are nonzero. A zero-sized Mask is the wire
// representation of "no selection" (docmodel.Sprite defaults to one rather
// than a nil Mask, so this needs no separate presence flag).

func encodeMaskBlob(w *rawio.Writer, m Mask) {
	var x, y, mw, mh uint16
	var bits []byte
	if m != nil {
		x, y, mw, mh = m.Rect()
		bits = m.Bits()
	}
	w.U16(x)
	w.U16(y)
	w.U16(mw)
	w.U16(mh)
	if mw > 0 && mh > 0 {
		w.Raw(bits)
	}
}

func decodeMaskBlob(r *rawio.Reader, factory ObjectFactory) (Mask, error) {
	x, y, mw, mh := r.U16(), r.U16(), r.U16(), r.U16()
	if r.Err() != nil {
		return nil, undoFailureWrap(r.Err(), "mask blob", "truncated")
	}
	var bits []byte
	if mw > 0 && mh > 0 {
		n := (int(mw) + 7) / 8 * int(mh)
		bits = append([]byte(nil), r.Raw(n)...)
		if r.Err() != nil {
			return nil, undoFailureWrap(r.Err(), "mask blob", "truncated bits")
		}
	}
	return factory.NewMask(x, y, mw, mh, bits), nil
}

// SET_MASK chunk payload: docId(u32) followed by the old Mask blob.
// Self-inverse.

func (h *UndoHistory) RecordSetMask(doc Document, m Mask) error {
	docId := h.objects.Add(doc)
	old := doc.Mask()
	doc.SetMask(m)

	w := rawio.NewWriter(32)
	w.U32(uint32(docId))
	encodeMaskBlob(w, old)
	h.emit(KindSetMask, w.Bytes())
	return nil
}

func invertSetMask(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	oldMask, err := decodeMaskBlob(r, h.factory)
	if err != nil {
		return err
	}
	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	current := doc.Mask()
	doc.SetMask(oldMask)

	w := rawio.NewWriter(32)
	w.U32(uint32(docId))
	encodeMaskBlob(w, current)
	dst.Push(newChunk(KindSetMask, c.Label, w.Bytes()))
	return nil
}
