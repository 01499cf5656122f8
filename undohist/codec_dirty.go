package undohist

import "github.com/libresprite/undohist/rawio"

// DirtyCol is one contiguous run of pixels within a DirtyRow.
type DirtyCol struct {
	X, W uint16
	Pix  []byte
}

// DirtyRow is one scanline's worth of DirtyCols.
type DirtyRow struct {
	Y    uint16
	Cols []DirtyCol
}

// Dirty is a sparse rectangular pixel diff: a bounding box plus the rows
// and columns of pixels it touches. A single Dirty carries both directions
// of an edit: swapImagePixels exchanges its pixels with an Image's in
// place, so a Dirty built from "new" pixels becomes, after one swap, the
// "old" pixels — and vice versa.
type Dirty struct {
	Imgtype        Imgtype
	X1, Y1, X2, Y2 uint16
	Rows           []DirtyRow
}

// DIRTY chunk payload: imageId(u32) followed by the spec.md §6.2 Dirty blob.

func encodeDirtyPayload(id ObjectId, d *Dirty) []byte {
	w := rawio.NewWriter(64)
	w.U32(uint32(id))
	w.U8(uint8(d.Imgtype))
	w.U16(d.X1)
	w.U16(d.Y1)
	w.U16(d.X2)
	w.U16(d.Y2)
	w.U16(uint16(len(d.Rows)))
	for _, row := range d.Rows {
		w.U16(row.Y)
		w.U16(uint16(len(row.Cols)))
		for _, col := range row.Cols {
			w.U16(col.X)
			w.U16(col.W)
			w.Raw(col.Pix)
		}
	}
	return w.Bytes()
}

func decodeDirtyPayload(payload []byte) (ObjectId, *Dirty, error) {
	r := rawio.NewReader(payload)
	id := ObjectId(r.U32())
	d := &Dirty{Imgtype: Imgtype(r.U8())}
	d.X1, d.Y1, d.X2, d.Y2 = r.U16(), r.U16(), r.U16(), r.U16()
	rowCount := r.U16()
	bpp := d.Imgtype.BytesPerPixel()
	d.Rows = make([]DirtyRow, rowCount)
	for i := range d.Rows {
		d.Rows[i].Y = r.U16()
		colCount := r.U16()
		d.Rows[i].Cols = make([]DirtyCol, colCount)
		for j := range d.Rows[i].Cols {
			col := &d.Rows[i].Cols[j]
			col.X = r.U16()
			col.W = r.U16()
			col.Pix = append([]byte(nil), r.Raw(int(col.W)*bpp)...)
		}
	}
	if r.Err() != nil {
		return 0, nil, undoFailureWrap(r.Err(), "DIRTY", "truncated payload")
	}
	return id, d, nil
}

// swapImagePixels simultaneously overwrites image's pixels with d's pixels
// and writes the pixels that were overwritten back into d, so d now holds
// the opposite direction of the edit it just carried.
func swapImagePixels(image Image, d *Dirty) error {
	for ri := range d.Rows {
		row := &d.Rows[ri]
		for ci := range row.Cols {
			col := &row.Cols[ci]
			current, err := image.ReadRect(col.X, row.Y, col.W, 1)
			if err != nil {
				return err
			}
			if err := image.WriteRect(col.X, row.Y, col.W, 1, col.Pix); err != nil {
				return err
			}
			col.Pix = current
		}
	}
	return nil
}

// RecordDirty swaps d's pixels into image (painting the edit) and records
// the now-inverted d (holding the pre-edit pixels) as a DIRTY chunk.
func (h *UndoHistory) RecordDirty(image Image, d *Dirty) error {
	if image.Imgtype() != d.Imgtype {
		return undoFailure("DIRTY", "dirty imgtype does not match image")
	}
	id := h.objects.Add(image)
	if err := swapImagePixels(image, d); err != nil {
		return undoFailureWrap(err, "DIRTY", "out-of-bounds row/column")
	}
	h.emit(KindDirty, encodeDirtyPayload(id, d))
	return nil
}

func invertDirty(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	id, d, err := decodeDirtyPayload(c.Payload)
	if err != nil {
		return err
	}
	img, ok := GetAs[Image](h.objects, id)
	if !ok {
		return nil
	}
	if img.Imgtype() != d.Imgtype {
		return undoFailure("DIRTY", "live image type does not match recorded imgtype")
	}
	if err := swapImagePixels(img, d); err != nil {
		return undoFailureWrap(err, "DIRTY", "out-of-bounds row/column during invert")
	}
	dst.Push(newChunk(KindDirty, c.Label, encodeDirtyPayload(id, d)))
	return nil
}
