package undohist

import "github.com/libresprite/undohist/rawio"

// SET_IMGTYPE chunk payload: docId(u32) oldImgtype(u8). Self-inverse.

func (h *UndoHistory) RecordSetImgtype(doc Document, t Imgtype) error {
	docId := h.objects.Add(doc)
	old := doc.Imgtype()
	doc.SetImgtype(t)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U8(uint8(old))
	h.emit(KindSetImgtype, w.Bytes())
	return nil
}

func invertSetImgtype(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	old := Imgtype(r.U8())
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "SET_IMGTYPE", "truncated payload")
	}
	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	current := doc.Imgtype()
	doc.SetImgtype(old)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U8(uint8(current))
	dst.Push(newChunk(KindSetImgtype, c.Label, w.Bytes()))
	return nil
}

// SET_SIZE chunk payload: docId(u32) oldW(u16) oldH(u16). Self-inverse.

func (h *UndoHistory) RecordSetSize(doc Document, w, ht uint16) error {
	docId := h.objects.Add(doc)
	oldW, oldH := doc.Size()
	doc.SetSize(w, ht)

	wr := rawio.NewWriter(8)
	wr.U32(uint32(docId))
	wr.U16(oldW)
	wr.U16(oldH)
	h.emit(KindSetSize, wr.Bytes())
	return nil
}

func invertSetSize(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	oldW, oldH := r.U16(), r.U16()
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "SET_SIZE", "truncated payload")
	}
	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	curW, curH := doc.Size()
	doc.SetSize(oldW, oldH)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U16(curW)
	w.U16(curH)
	dst.Push(newChunk(KindSetSize, c.Label, w.Bytes()))
	return nil
}

// SET_FRAME chunk payload: docId(u32) oldFrame(u16). Self-inverse.

func (h *UndoHistory) RecordSetFrame(doc Document, frame uint16) error {
	docId := h.objects.Add(doc)
	old := doc.Frame()
	doc.SetFrame(frame)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U16(old)
	h.emit(KindSetFrame, w.Bytes())
	return nil
}

func invertSetFrame(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	old := r.U16()
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "SET_FRAME", "truncated payload")
	}
	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	current := doc.Frame()
	doc.SetFrame(old)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U16(current)
	dst.Push(newChunk(KindSetFrame, c.Label, w.Bytes()))
	return nil
}

// SET_FRAMES chunk payload: docId(u32) oldTotalFrames(u16). Self-inverse.

func (h *UndoHistory) RecordSetFrames(doc Document, total uint16) error {
	docId := h.objects.Add(doc)
	old := doc.TotalFrames()
	doc.SetTotalFrames(total)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U16(old)
	h.emit(KindSetFrames, w.Bytes())
	return nil
}

func invertSetFrames(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	old := r.U16()
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "SET_FRAMES", "truncated payload")
	}
	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	current := doc.TotalFrames()
	doc.SetTotalFrames(old)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U16(current)
	dst.Push(newChunk(KindSetFrames, c.Label, w.Bytes()))
	return nil
}

// SET_FRLEN chunk payload: docId(u32) frame(u16) oldDurationMs(u16).
// Self-inverse.

func (h *UndoHistory) RecordSetFrLen(doc Document, frame, durationMs uint16) error {
	docId := h.objects.Add(doc)
	old := doc.FrameDuration(frame)
	doc.SetFrameDuration(frame, durationMs)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U16(frame)
	w.U16(old)
	h.emit(KindSetFrLen, w.Bytes())
	return nil
}

func invertSetFrLen(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	frame := r.U16()
	old := r.U16()
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "SET_FRLEN", "truncated payload")
	}
	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	current := doc.FrameDuration(frame)
	doc.SetFrameDuration(frame, old)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U16(frame)
	w.U16(current)
	dst.Push(newChunk(KindSetFrLen, c.Label, w.Bytes()))
	return nil
}
