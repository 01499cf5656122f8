package undohist

import "github.com/libresprite/undohist/rawio"

// ADD_CEL chunk payload: layerId(u32) celId(u32). cel is still live, so
// nothing but its identity needs recording; REMOVE_CEL, its inverse,
// carries the full Cel blob (layerId(u32) followed by a Cel blob) since
// undoing a remove has nothing live to resolve back to.

func indexOfCel(layer Layer, cel Cel) int {
	for i, c := range layer.Cels() {
		if c == cel {
			return i
		}
	}
	return -1
}

func insertCelAt(layer Layer, index int, cel Cel) {
	cels := layer.Cels()
	if index > len(cels) {
		index = len(cels)
	}
	cels = append(cels, nil)
	copy(cels[index+1:], cels[index:])
	cels[index] = cel
	layer.SetCels(cels)
}

func removeCelAt(layer Layer, index int) Cel {
	cels := layer.Cels()
	if index < 0 || index >= len(cels) {
		return nil
	}
	cel := cels[index]
	copy(cels[index:], cels[index+1:])
	layer.SetCels(cels[:len(cels)-1])
	return cel
}

// RecordAddCel inserts cel into layer at index and records the insert.
func (h *UndoHistory) RecordAddCel(layer Layer, index uint16, cel Cel) error {
	layerId := h.objects.Add(layer)
	celId := h.objects.Add(cel)
	insertCelAt(layer, int(index), cel)

	w := rawio.NewWriter(8)
	w.U32(uint32(layerId))
	w.U32(uint32(celId))
	h.emit(KindAddCel, w.Bytes())
	return nil
}

// RecordRemoveCel removes the cel at index from layer and records the
// removal, carrying a snapshot so the insert can be replayed.
func (h *UndoHistory) RecordRemoveCel(layer Layer, index uint16) error {
	cels := layer.Cels()
	if int(index) >= len(cels) {
		return undoFailure("REMOVE_CEL", "no cel at index")
	}
	cel := cels[index]
	layerId := h.objects.Add(layer)
	celId := h.objects.Add(cel)

	w := rawio.NewWriter(32)
	w.U32(uint32(layerId))
	encodeCelBlob(w, celId, cel)
	removeCelAt(layer, int(index))
	h.emit(KindRemoveCel, w.Bytes())
	return nil
}

func invertAddCel(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	layerId := ObjectId(r.U32())
	celId := ObjectId(r.U32())
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "ADD_CEL", "truncated payload")
	}
	layer, ok := GetAs[Layer](h.objects, layerId)
	if !ok {
		return nil
	}
	cel, ok := GetAs[Cel](h.objects, celId)
	if !ok {
		return nil
	}
	idx := indexOfCel(layer, cel)
	if idx < 0 {
		return undoFailure("ADD_CEL", "cel not found under its layer")
	}

	w := rawio.NewWriter(32)
	w.U32(uint32(layerId))
	encodeCelBlob(w, celId, cel)
	dst.Push(newChunk(KindRemoveCel, c.Label, w.Bytes()))

	removeCelAt(layer, idx)
	return nil
}

func invertRemoveCel(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	layerId := ObjectId(r.U32())
	celId, cel, err := decodeCelBlob(r, h.objects, h.factory)
	if err != nil {
		return err
	}
	layer, ok := GetAs[Layer](h.objects, layerId)
	if !ok {
		return nil
	}
	insertCelAt(layer, len(layer.Cels()), cel)

	w := rawio.NewWriter(8)
	w.U32(uint32(layerId))
	w.U32(uint32(celId))
	dst.Push(newChunk(KindAddCel, c.Label, w.Bytes()))
	return nil
}
