package undohist

import "github.com/libresprite/undohist/rawio"

// Image blob (spec.md §6.2): u32 id; u8 imgtype; u16 w; u16 h; u32
// mask_color; [line_size(w) x h] bytes. Used by REMOVE_IMAGE/REPLACE_IMAGE
// payloads and, when a cel entry's hasImage flag is set, inside a Layer blob.

func encodeImageBlob(w *rawio.Writer, id ObjectId, img Image) error {
	whole, err := img.ReadRect(0, 0, img.W(), img.H())
	if err != nil {
		return undoFailureWrap(err, "image blob", "could not read whole image")
	}
	w.U32(uint32(id))
	w.U8(uint8(img.Imgtype()))
	w.U16(img.W())
	w.U16(img.H())
	w.U32(img.MaskColor())
	w.Raw(whole)
	return nil
}

// decodeImageBlob parses an Image blob and reconstructs a live Image via
// factory, reattached to objects under its original id.
func decodeImageBlob(r *rawio.Reader, objects ObjectsContainer, factory ObjectFactory) (ObjectId, Image, error) {
	id := ObjectId(r.U32())
	t := Imgtype(r.U8())
	w, h := r.U16(), r.U16()
	maskColor := r.U32()
	pix := r.Raw(t.BytesPerPixel() * int(w) * int(h))
	if r.Err() != nil {
		return 0, nil, undoFailureWrap(r.Err(), "image blob", "truncated")
	}

	img := factory.NewImage(t, w, h)
	if sm, ok := img.(interface{ SetMaskColor(uint32) }); ok {
		sm.SetMaskColor(maskColor)
	}
	if err := img.WriteRect(0, 0, w, h, pix); err != nil {
		return 0, nil, undoFailureWrap(err, "image blob", "could not restore pixels")
	}
	objects.Insert(id, img)
	return id, img, nil
}
