package undohist

import "github.com/libresprite/undohist/rawio"

// DATA chunk payload: objectId(u32) offset(u32) length(u32) bytes.

func encodeDataPayload(id ObjectId, offset uint32, data []byte) []byte {
	w := rawio.NewWriter(4 + 4 + 4 + len(data))
	w.U32(uint32(id))
	w.U32(offset)
	w.U32(uint32(len(data)))
	w.Raw(data)
	return w.Bytes()
}

func decodeDataPayload(payload []byte) (id ObjectId, offset uint32, data []byte, err error) {
	r := rawio.NewReader(payload)
	id = ObjectId(r.U32())
	offset = r.U32()
	length := r.U32()
	data = r.Raw(int(length))
	if r.Err() != nil {
		return 0, 0, nil, undoFailureWrap(r.Err(), "DATA", "truncated payload")
	}
	return id, offset, append([]byte(nil), data...), nil
}

// RecordData snapshots [offset, offset+len(data)) of obj's current bytes
// into a DATA chunk. It performs no live mutation: the caller is expected
// to overwrite obj's bytes itself afterwards (this chunk only brackets an
// externally-performed edit, the same way spec.md's scenario S2 brackets a
// pixel edit with undo_image calls).
func (h *UndoHistory) RecordData(obj RawStorage, offset uint32, length uint32) error {
	if length == 0 {
		return undoFailure("DATA", "non-positive length")
	}
	id := h.objects.Add(obj)
	current, err := obj.ReadBytes(offset, length)
	if err != nil {
		return undoFailureWrap(err, "DATA", "out-of-bounds read")
	}
	h.emit(KindData, encodeDataPayload(id, offset, current))
	return nil
}

func invertData(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	id, offset, stored, err := decodeDataPayload(c.Payload)
	if err != nil {
		return err
	}
	obj, ok := GetAs[RawStorage](h.objects, id)
	if !ok {
		return nil // object deleted: tolerated, depth still balances
	}
	current, err := obj.ReadBytes(offset, uint32(len(stored)))
	if err != nil {
		return undoFailureWrap(err, "DATA", "out-of-bounds read during invert")
	}
	dst.Push(newChunk(KindData, c.Label, encodeDataPayload(id, offset, current)))
	return obj.WriteBytes(offset, stored)
}
