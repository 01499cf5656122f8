package undohist

import "github.com/libresprite/undohist/rawio"

// ADD_IMAGE chunk payload: stockId(u32) index(u16). img is still live, so
// nothing but its location needs recording; REMOVE_IMAGE, its inverse,
// carries the full Image blob since undoing a remove has nothing live to
// resolve back to.
//
// REPLACE_IMAGE chunk payload: stockId(u32) index(u16) followed by the
// Image blob of whichever image (old or new, depending on direction) the
// chunk is about to swap out of the stock. It is its own inverse.

// RecordAddImage inserts img into stock at index and records the insert.
func (h *UndoHistory) RecordAddImage(stock Stock, index uint16, img Image) error {
	stockId := h.objects.Add(stock)
	h.objects.Add(img)
	stock.InsertAt(index, img)

	w := rawio.NewWriter(8)
	w.U32(uint32(stockId))
	w.U16(index)
	h.emit(KindAddImage, w.Bytes())
	return nil
}

// RecordRemoveImage removes the image at index from stock and records the
// removal, carrying a full snapshot so the insert can be replayed.
func (h *UndoHistory) RecordRemoveImage(stock Stock, index uint16) error {
	img := stock.Get(index)
	if img == nil {
		return undoFailure("REMOVE_IMAGE", "no image at index")
	}
	stockId := h.objects.Add(stock)
	imgId := h.objects.Add(img)

	w := rawio.NewWriter(64)
	w.U32(uint32(stockId))
	w.U16(index)
	if err := encodeImageBlob(w, imgId, img); err != nil {
		return err
	}
	stock.RemoveAt(index)
	h.emit(KindRemoveImage, w.Bytes())
	return nil
}

// RecordReplaceImage swaps newImg into stock at index, recording the image
// that was there.
func (h *UndoHistory) RecordReplaceImage(stock Stock, index uint16, newImg Image) error {
	old := stock.Get(index)
	if old == nil {
		return undoFailure("REPLACE_IMAGE", "no image at index")
	}
	stockId := h.objects.Add(stock)
	oldId := h.objects.Add(old)

	w := rawio.NewWriter(64)
	w.U32(uint32(stockId))
	w.U16(index)
	if err := encodeImageBlob(w, oldId, old); err != nil {
		return err
	}
	h.objects.Add(newImg)
	stock.Replace(index, newImg)
	h.emit(KindReplaceImage, w.Bytes())
	return nil
}

func readStockIndex(c *UndoChunk) (*rawio.Reader, ObjectId, uint16) {
	r := rawio.NewReader(c.Payload)
	stockId := ObjectId(r.U32())
	index := r.U16()
	return r, stockId, index
}

func invertAddImage(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	_, stockId, index := readStockIndex(c)
	stock, ok := GetAs[Stock](h.objects, stockId)
	if !ok {
		return nil
	}
	img := stock.Get(index)
	if img == nil {
		return undoFailure("ADD_IMAGE", "no image at index during invert")
	}
	imgId := h.objects.Add(img)

	w := rawio.NewWriter(64)
	w.U32(uint32(stockId))
	w.U16(index)
	if err := encodeImageBlob(w, imgId, img); err != nil {
		return err
	}
	dst.Push(newChunk(KindRemoveImage, c.Label, w.Bytes()))
	stock.RemoveAt(index)
	return nil
}

func invertRemoveImage(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r, stockId, index := readStockIndex(c)
	_, img, err := decodeImageBlob(r, h.objects, h.factory)
	if err != nil {
		return err
	}
	stock, ok := GetAs[Stock](h.objects, stockId)
	if !ok {
		return nil
	}
	stock.InsertAt(index, img)

	w := rawio.NewWriter(8)
	w.U32(uint32(stockId))
	w.U16(index)
	dst.Push(newChunk(KindAddImage, c.Label, w.Bytes()))
	return nil
}

func invertReplaceImage(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r, stockId, index := readStockIndex(c)
	_, stored, err := decodeImageBlob(r, h.objects, h.factory)
	if err != nil {
		return err
	}
	stock, ok := GetAs[Stock](h.objects, stockId)
	if !ok {
		return nil
	}
	current := stock.Get(index)
	if current == nil {
		return undoFailure("REPLACE_IMAGE", "no image at index during invert")
	}
	currentId := h.objects.Add(current)

	w := rawio.NewWriter(64)
	w.U32(uint32(stockId))
	w.U16(index)
	if err := encodeImageBlob(w, currentId, current); err != nil {
		return err
	}
	dst.Push(newChunk(KindReplaceImage, c.Label, w.Bytes()))

	stock.Replace(index, stored)
	return nil
}
