package undohist

import "github.com/libresprite/undohist/rawio"

// Palette blob (spec.md §6.2): u16 frame; u16 ncolors; u32 x ncolors. Unlike
// Image, a Palette carries no id of its own on the wire: nothing besides
// its owning Document's frame slot ever addresses a palette by ObjectId, so
// REMOVE_PALETTE's inverse is free to mint a fresh one on ADD_PALETTE.

func encodePaletteBlob(w *rawio.Writer, p Palette) {
	w.U16(p.Frame())
	entries := p.Entries()
	w.U16(uint16(len(entries)))
	for _, e := range entries {
		w.U32(e)
	}
}

func decodePaletteBlobRaw(r *rawio.Reader) (frame uint16, entries []uint32, err error) {
	frame = r.U16()
	n := r.U16()
	entries = make([]uint32, n)
	for i := range entries {
		entries[i] = r.U32()
	}
	if r.Err() != nil {
		return 0, nil, undoFailureWrap(r.Err(), "palette blob", "truncated")
	}
	return frame, entries, nil
}

// ADD_PALETTE chunk payload: docId(u32) paletteId(u32). p is still live, so
// nothing but its identity needs recording; REMOVE_PALETTE, its inverse,
// carries the full Palette blob (docId(u32) followed by the blob) since
// undoing a remove has nothing live to resolve back to.

func (h *UndoHistory) RecordAddPalette(doc Document, p Palette) error {
	docId := h.objects.Add(doc)
	pid := h.objects.Add(p)
	doc.SetPaletteAt(p.Frame(), p)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U32(uint32(pid))
	h.emit(KindAddPalette, w.Bytes())
	return nil
}

func (h *UndoHistory) RecordRemovePalette(doc Document, frame uint16) error {
	p := doc.PaletteAt(frame)
	if p == nil {
		return undoFailure("REMOVE_PALETTE", "no palette at frame")
	}
	docId := h.objects.Add(doc)

	w := rawio.NewWriter(32)
	w.U32(uint32(docId))
	encodePaletteBlob(w, p)
	doc.RemovePaletteAt(frame)
	h.emit(KindRemovePalette, w.Bytes())
	return nil
}

func invertAddPalette(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	pid := ObjectId(r.U32())
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "ADD_PALETTE", "truncated payload")
	}
	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	p, ok := GetAs[Palette](h.objects, pid)
	if !ok {
		return nil
	}
	frame := p.Frame()

	w := rawio.NewWriter(32)
	w.U32(uint32(docId))
	encodePaletteBlob(w, p)
	dst.Push(newChunk(KindRemovePalette, c.Label, w.Bytes()))

	doc.RemovePaletteAt(frame)
	return nil
}

func invertRemovePalette(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	frame, entries, err := decodePaletteBlobRaw(r)
	if err != nil {
		return err
	}
	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	p := h.factory.NewPalette(frame, entries)
	pid := h.objects.Add(p)
	doc.SetPaletteAt(frame, p)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U32(uint32(pid))
	dst.Push(newChunk(KindAddPalette, c.Label, w.Bytes()))
	return nil
}

// SET_PALETTE_COLORS chunk payload (spec.md §4.2: "spriteId, frame, from,
// to, N×u32 rgba"): docId(u32) frame(u16) from(u16) to(u16) then
// (to-from) u32 entries — the slice [from,to) of the palette as it stood
// before this call overwrote it. Self-inverse: the frame argument given
// when recording is stored, and the inverter writes into that frame's
// palette whatever the document's current frame is at undo time.

func (h *UndoHistory) RecordSetPaletteColors(doc Document, frame, from, to uint16, entries []uint32) error {
	p := doc.PaletteAt(frame)
	if p == nil {
		return undoFailure("SET_PALETTE_COLORS", "no palette at frame")
	}
	if int(to) > p.Size() || from > to {
		return undoFailure("SET_PALETTE_COLORS", "invalid [from,to) range")
	}
	docId := h.objects.Add(doc)
	old := append([]uint32(nil), p.Entries()[from:to]...)

	next := append([]uint32(nil), p.Entries()...)
	copy(next[from:to], entries)
	p.SetEntries(next)

	w := rawio.NewWriter(32)
	w.U32(uint32(docId))
	w.U16(frame)
	w.U16(from)
	w.U16(to)
	for _, e := range old {
		w.U32(e)
	}
	h.emit(KindSetPaletteColors, w.Bytes())
	return nil
}

func invertSetPaletteColors(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	frame := r.U16()
	from, to := r.U16(), r.U16()
	stored := make([]uint32, int(to)-int(from))
	for i := range stored {
		stored[i] = r.U32()
	}
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "SET_PALETTE_COLORS", "truncated payload")
	}
	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	p := doc.PaletteAt(frame)
	if p == nil {
		return undoFailure("SET_PALETTE_COLORS", "no palette at frame during invert")
	}
	current := append([]uint32(nil), p.Entries()[from:to]...)

	next := append([]uint32(nil), p.Entries()...)
	copy(next[from:to], stored)
	p.SetEntries(next)

	w := rawio.NewWriter(32)
	w.U32(uint32(docId))
	w.U16(frame)
	w.U16(from)
	w.U16(to)
	for _, e := range current {
		w.U32(e)
	}
	dst.Push(newChunk(KindSetPaletteColors, c.Label, w.Bytes()))
	return nil
}

// REMAP_PALETTE chunk payload: docId(u32) frameFrom(u16) frameTo(u16)
// mapping(256 bytes). Self-inverse via the inverse permutation.

func (h *UndoHistory) RecordRemapPalette(doc Document, frameFrom, frameTo uint16, mapping [256]byte) error {
	docId := h.objects.Add(doc)
	doc.RemapImages(frameFrom, frameTo, mapping)

	w := rawio.NewWriter(8 + 256)
	w.U32(uint32(docId))
	w.U16(frameFrom)
	w.U16(frameTo)
	w.Raw(mapping[:])
	h.emit(KindRemapPalette, w.Bytes())
	return nil
}

func inversePermutation(mapping [256]byte) [256]byte {
	var inv [256]byte
	for i, v := range mapping {
		inv[v] = byte(i)
	}
	return inv
}

func invertRemapPalette(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	frameFrom := r.U16()
	frameTo := r.U16()
	rawMapping := r.Raw(256)
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "REMAP_PALETTE", "truncated payload")
	}
	var mapping [256]byte
	copy(mapping[:], rawMapping)

	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	inverse := inversePermutation(mapping)
	doc.RemapImages(frameFrom, frameTo, inverse)

	w := rawio.NewWriter(8 + 256)
	w.U32(uint32(docId))
	w.U16(frameFrom)
	w.U16(frameTo)
	w.Raw(inverse[:])
	dst.Push(newChunk(KindRemapPalette, c.Label, w.Bytes()))
	return nil
}
