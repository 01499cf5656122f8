package undohist

import "github.com/libresprite/undohist/rawio"

// Cel blob (spec.md §6.2): u32 id; u16 frame; u16 image_idx; i16 x; i16 y;
// u16 opacity.

func encodeCelBlob(w *rawio.Writer, id ObjectId, cel Cel) {
	w.U32(uint32(id))
	w.U16(cel.Frame())
	w.U16(cel.ImageIndex())
	w.I16(cel.X())
	w.I16(cel.Y())
	w.U16(cel.Opacity())
}

func decodeCelBlob(r *rawio.Reader, objects ObjectsContainer, factory ObjectFactory) (ObjectId, Cel, error) {
	id := ObjectId(r.U32())
	frame := r.U16()
	imageIndex := r.U16()
	x := r.I16()
	y := r.I16()
	opacity := r.U16()
	if r.Err() != nil {
		return 0, nil, undoFailureWrap(r.Err(), "cel blob", "truncated")
	}
	cel := factory.NewCel(frame, imageIndex, x, y, opacity)
	objects.Insert(id, cel)
	return id, cel, nil
}
