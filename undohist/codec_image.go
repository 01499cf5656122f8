package undohist

import "github.com/libresprite/undohist/rawio"

// IMAGE chunk payload: imageId(u32) imgtype(u8) x,y,w,h(u16 each) pixel rect.

func encodeImagePayload(id ObjectId, t Imgtype, x, y, w, h uint16, rect []byte) []byte {
	wr := rawio.NewWriter(4 + 1 + 8 + len(rect))
	wr.U32(uint32(id))
	wr.U8(uint8(t))
	wr.U16(x)
	wr.U16(y)
	wr.U16(w)
	wr.U16(h)
	wr.Raw(rect)
	return wr.Bytes()
}

func decodeImagePayload(payload []byte) (id ObjectId, t Imgtype, x, y, w, h uint16, rect []byte, err error) {
	r := rawio.NewReader(payload)
	id = ObjectId(r.U32())
	t = Imgtype(r.U8())
	x, y, w, h = r.U16(), r.U16(), r.U16(), r.U16()
	rect = r.Raw(r.Remaining())
	if r.Err() != nil {
		return 0, 0, 0, 0, 0, 0, nil, undoFailureWrap(r.Err(), "IMAGE", "truncated payload")
	}
	return id, t, x, y, w, h, append([]byte(nil), rect...), nil
}

// RecordImage snapshots an image rectangle before an externally-performed
// pixel edit, the same way the original editor brackets a paint stroke
// (spec.md's scenario S2). It performs no live mutation itself.
func (h *UndoHistory) RecordImage(image Image, x, y, w, h uint16) error {
	rect, err := image.ReadRect(x, y, w, h)
	if err != nil {
		return undoFailureWrap(err, "IMAGE", "out-of-bounds rectangle")
	}
	id := h.objects.Add(image)
	h.emit(KindImage, encodeImagePayload(id, image.Imgtype(), x, y, w, h, rect))
	return nil
}

func invertImage(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	id, t, x, y, w, h, storedRect, err := decodeImagePayload(c.Payload)
	if err != nil {
		return err
	}
	img, ok := GetAs[Image](h.objects, id)
	if !ok {
		return nil // image deleted since recording: tolerated
	}
	if img.Imgtype() != t {
		return undoFailure("IMAGE", "live image type does not match recorded imgtype")
	}
	current, err := img.ReadRect(x, y, w, h)
	if err != nil {
		return undoFailureWrap(err, "IMAGE", "out-of-bounds rectangle during invert")
	}
	dst.Push(newChunk(KindImage, c.Label, encodeImagePayload(id, t, x, y, w, h, current)))
	return img.WriteRect(x, y, w, h, storedRect)
}

// FLIP chunk payload: imageId(u32) imgtype(u8) x1,y1,x2,y2(u16 each) axis(u8).
// Flipping is self-inverse, so no pixel data needs to travel in the chunk.

func encodeFlipPayload(id ObjectId, t Imgtype, x1, y1, x2, y2 uint16, axis FlipAxis) []byte {
	w := rawio.NewWriter(4 + 1 + 8 + 1)
	w.U32(uint32(id))
	w.U8(uint8(t))
	w.U16(x1)
	w.U16(y1)
	w.U16(x2)
	w.U16(y2)
	w.U8(uint8(axis))
	return w.Bytes()
}

func decodeFlipPayload(payload []byte) (id ObjectId, t Imgtype, x1, y1, x2, y2 uint16, axis FlipAxis, err error) {
	r := rawio.NewReader(payload)
	id = ObjectId(r.U32())
	t = Imgtype(r.U8())
	x1, y1, x2, y2 = r.U16(), r.U16(), r.U16(), r.U16()
	axis = FlipAxis(r.U8())
	if r.Err() != nil {
		return 0, 0, 0, 0, 0, 0, 0, undoFailureWrap(r.Err(), "FLIP", "truncated payload")
	}
	return id, t, x1, y1, x2, y2, axis, nil
}

// RecordFlip performs the live flip and records it; since flipping is its
// own inverse, the forward record and the inverter share the same action.
func (h *UndoHistory) RecordFlip(image Image, x1, y1, x2, y2 uint16, axis FlipAxis) error {
	id := h.objects.Add(image)
	if err := image.FlipRect(x1, y1, x2, y2, axis); err != nil {
		return undoFailureWrap(err, "FLIP", "invalid rectangle")
	}
	h.emit(KindFlip, encodeFlipPayload(id, image.Imgtype(), x1, y1, x2, y2, axis))
	return nil
}

func invertFlip(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	id, t, x1, y1, x2, y2, axis, err := decodeFlipPayload(c.Payload)
	if err != nil {
		return err
	}
	img, ok := GetAs[Image](h.objects, id)
	if !ok {
		return nil
	}
	if img.Imgtype() != t {
		return undoFailure("FLIP", "live image type does not match recorded imgtype")
	}
	dst.Push(newChunk(KindFlip, c.Label, encodeFlipPayload(id, t, x1, y1, x2, y2, axis)))
	return img.FlipRect(x1, y1, x2, y2, axis)
}
