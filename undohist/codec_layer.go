package undohist

import "github.com/libresprite/undohist/rawio"

// Layer blob (spec.md §6.2): u32 id; name(text); flags(u8); type(u16);
// spriteId(u32); then, for an image layer, u16 cel count followed by that
// many (cel-blob, u8 hasImage) pairs; for a folder layer, u16 child count
// followed by that many nested Layer blobs. encodeLayerBlob/decodeLayerBlob
// walk the whole subtree, so a single REMOVE_LAYER chunk re-materializes an
// entire folder at once.

func encodeLayerBlob(w *rawio.Writer, objects ObjectsContainer, spriteId ObjectId, layer Layer) {
	id := objects.Add(layer)
	w.U32(uint32(id))
	w.Text(layer.Name())
	w.U8(layer.Flags())
	w.U16(uint16(layer.Kind()))
	w.U32(uint32(spriteId))
	switch layer.Kind() {
	case LayerKindImage:
		cels := layer.Cels()
		w.U16(uint16(len(cels)))
		for _, cel := range cels {
			encodeCelBlob(w, objects.Add(cel), cel)
			// Cels address their pixels through a Stock index, which is
			// independently tracked by ADD_IMAGE/REMOVE_IMAGE chunks, so
			// no embedded image copy is ever needed here.
			w.U8(0)
		}
	case LayerKindFolder:
		children := layer.Children()
		w.U16(uint16(len(children)))
		for _, child := range children {
			encodeLayerBlob(w, objects, spriteId, child)
		}
	}
}

// decodeLayerBlob returns the decoded subtree's root id, the root Layer
// itself, and the spriteId the blob carries.
func decodeLayerBlob(r *rawio.Reader, objects ObjectsContainer, factory ObjectFactory) (ObjectId, Layer, ObjectId, error) {
	id := ObjectId(r.U32())
	name := r.Text()
	flags := r.U8()
	kind := LayerKind(r.U16())
	spriteId := ObjectId(r.U32())
	if r.Err() != nil {
		return 0, nil, 0, undoFailureWrap(r.Err(), "layer blob", "truncated header")
	}

	layer := factory.NewLayer(kind, name)
	layer.SetFlags(flags)
	objects.Insert(id, layer)

	switch kind {
	case LayerKindImage:
		count := r.U16()
		cels := make([]Cel, count)
		for i := range cels {
			_, cel, err := decodeCelBlob(r, objects, factory)
			if err != nil {
				return 0, nil, 0, err
			}
			hasImage := r.U8()
			if hasImage != 0 {
				if _, _, err := decodeImageBlob(r, objects, factory); err != nil {
					return 0, nil, 0, err
				}
			}
			cels[i] = cel
		}
		layer.SetCels(cels)
	case LayerKindFolder:
		count := r.U16()
		children := make([]Layer, count)
		var prev Layer
		for i := range children {
			_, child, _, err := decodeLayerBlob(r, objects, factory)
			if err != nil {
				return 0, nil, 0, err
			}
			child.SetParent(layer)
			child.SetPrevSibling(prev)
			children[i] = child
			prev = child
		}
		layer.SetChildren(children)
	}
	if r.Err() != nil {
		return 0, nil, 0, undoFailureWrap(r.Err(), "layer blob", "truncated body")
	}
	return id, layer, spriteId, nil
}

// noteDocRoot remembers doc as the owner of doc.RootLayer(), so a later
// inverter that only has one of doc's Layers in hand can recover doc's id.
func (h *UndoHistory) noteDocRoot(doc Document) ObjectId {
	docId := h.objects.Add(doc)
	if h.docRoots == nil {
		h.docRoots = make(map[Layer]ObjectId)
	}
	h.docRoots[doc.RootLayer()] = docId
	return docId
}

// docIdForLayer walks up to layer's root and looks up the Document noted
// for it, or 0 if none was ever noted.
func (h *UndoHistory) docIdForLayer(layer Layer) ObjectId {
	if layer == nil || h.docRoots == nil {
		return 0
	}
	root := layer
	for root.Parent() != nil {
		root = root.Parent()
	}
	return h.docRoots[root]
}

func insertLayerAt(parent Layer, index int, child Layer) {
	children := parent.Children()
	if index > len(children) {
		index = len(children)
	}
	children = append(children, nil)
	copy(children[index+1:], children[index:])
	children[index] = child
	parent.SetChildren(children)
	fixSiblingLinks(parent)
}

func removeLayerAt(parent Layer, index int) Layer {
	children := parent.Children()
	if index < 0 || index >= len(children) {
		return nil
	}
	child := children[index]
	copy(children[index:], children[index+1:])
	parent.SetChildren(children[:len(children)-1])
	fixSiblingLinks(parent)
	return child
}

func fixSiblingLinks(parent Layer) {
	var prev Layer
	for _, child := range parent.Children() {
		child.SetParent(parent)
		child.SetPrevSibling(prev)
		prev = child
	}
}

func indexOfLayer(parent Layer, layer Layer) int {
	for i, child := range parent.Children() {
		if child == layer {
			return i
		}
	}
	return -1
}

// insertLayerAfter inserts child into parent immediately after after, at
// the front if after is nil, or at the end if after is not among parent's
// children.
func insertLayerAfter(parent Layer, after Layer, child Layer) {
	index := 0
	if after != nil {
		if i := indexOfLayer(parent, after); i >= 0 {
			index = i + 1
		} else {
			index = len(parent.Children())
		}
	}
	insertLayerAt(parent, index, child)
}

// siblingAfterId resolves layer's current previous sibling to an ObjectId
// (0 if layer is its parent's first child), the wire form of the afterId
// sibling reference that REMOVE_LAYER and MOVE_LAYER payloads carry.
func siblingAfterId(objects ObjectsContainer, layer Layer) ObjectId {
	prev := layer.PrevSibling()
	if prev == nil {
		return 0
	}
	return objects.Add(prev)
}

func resolveAfter(objects ObjectsContainer, afterId ObjectId) Layer {
	if afterId == 0 {
		return nil
	}
	l, _ := GetAs[Layer](objects, afterId)
	return l
}

// SET_LAYER_NAME chunk payload: layerId(u32) oldName(text). Self-inverse.

func (h *UndoHistory) RecordSetLayerName(layer Layer, name string) error {
	layerId := h.objects.Add(layer)
	old := layer.Name()
	layer.SetName(name)

	w := rawio.NewWriter(16)
	w.U32(uint32(layerId))
	w.Text(old)
	h.emit(KindSetLayerName, w.Bytes())
	return nil
}

func invertSetLayerName(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	layerId := ObjectId(r.U32())
	oldName := r.Text()
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "SET_LAYER_NAME", "truncated payload")
	}
	layer, ok := GetAs[Layer](h.objects, layerId)
	if !ok {
		return nil
	}
	current := layer.Name()
	layer.SetName(oldName)

	w := rawio.NewWriter(16)
	w.U32(uint32(layerId))
	w.Text(current)
	dst.Push(newChunk(KindSetLayerName, c.Label, w.Bytes()))
	return nil
}

// ADD_LAYER chunk payload: folderId(u32) layerId(u32). layer is still
// live, so nothing but its identity needs recording; REMOVE_LAYER, its
// inverse, carries folderId(u32) afterId(u32) and the full subtree blob,
// since undoing a remove has nothing live to resolve back to. afterId is
// the ObjectId of layer's previous sibling (0 if it was the first child),
// matching the Layer.PrevSibling()/SetPrevSibling() sibling-list the
// concrete Layer already maintains.

func (h *UndoHistory) RecordAddLayer(doc Document, parent Layer, after Layer, layer Layer) error {
	h.noteDocRoot(doc)
	parentId := h.objects.Add(parent)
	layerId := h.objects.Add(layer)
	insertLayerAfter(parent, after, layer)

	w := rawio.NewWriter(8)
	w.U32(uint32(parentId))
	w.U32(uint32(layerId))
	h.emit(KindAddLayer, w.Bytes())
	return nil
}

func (h *UndoHistory) RecordRemoveLayer(doc Document, parent Layer, layer Layer) error {
	idx := indexOfLayer(parent, layer)
	if idx < 0 {
		return undoFailure("REMOVE_LAYER", "layer not found under its parent")
	}
	spriteId := h.noteDocRoot(doc)
	parentId := h.objects.Add(parent)
	afterId := siblingAfterId(h.objects, layer)

	w := rawio.NewWriter(64)
	w.U32(uint32(parentId))
	w.U32(uint32(afterId))
	encodeLayerBlob(w, h.objects, spriteId, layer)
	removeLayerAt(parent, idx)
	h.emit(KindRemoveLayer, w.Bytes())
	return nil
}

func invertAddLayer(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	parentId := ObjectId(r.U32())
	layerId := ObjectId(r.U32())
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "ADD_LAYER", "truncated payload")
	}
	parent, ok := GetAs[Layer](h.objects, parentId)
	if !ok {
		return nil
	}
	layer, ok := GetAs[Layer](h.objects, layerId)
	if !ok {
		return nil
	}
	idx := indexOfLayer(parent, layer)
	if idx < 0 {
		return undoFailure("ADD_LAYER", "layer not found under its parent")
	}
	afterId := siblingAfterId(h.objects, layer)
	spriteId := h.docIdForLayer(parent)

	w := rawio.NewWriter(64)
	w.U32(uint32(parentId))
	w.U32(uint32(afterId))
	encodeLayerBlob(w, h.objects, spriteId, layer)
	dst.Push(newChunk(KindRemoveLayer, c.Label, w.Bytes()))

	removeLayerAt(parent, idx)
	return nil
}

func invertRemoveLayer(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	parentId := ObjectId(r.U32())
	afterId := ObjectId(r.U32())
	id, layer, spriteId, err := decodeLayerBlob(r, h.objects, h.factory)
	if err != nil {
		return err
	}
	if doc, ok := GetAs[Document](h.objects, spriteId); ok {
		h.noteDocRoot(doc)
	}
	parent, ok := GetAs[Layer](h.objects, parentId)
	if !ok {
		return nil
	}
	insertLayerAfter(parent, resolveAfter(h.objects, afterId), layer)

	w := rawio.NewWriter(8)
	w.U32(uint32(parentId))
	w.U32(uint32(id))
	dst.Push(newChunk(KindAddLayer, c.Label, w.Bytes()))
	return nil
}

// MOVE_LAYER chunk payload: folderId(u32) layerId(u32) afterId(u32),
// naming layer's location *before* this call moves it — the usual
// "encode the current live state first and then overwrite" shape for a
// self-inverse kind.

func (h *UndoHistory) RecordMoveLayer(layer Layer, newParent Layer, after Layer) error {
	oldParent := layer.Parent()
	if oldParent == nil {
		return undoFailure("MOVE_LAYER", "layer has no parent")
	}
	idx := indexOfLayer(oldParent, layer)
	if idx < 0 {
		return undoFailure("MOVE_LAYER", "layer not found under its parent")
	}
	layerId := h.objects.Add(layer)
	oldParentId := h.objects.Add(oldParent)
	oldAfterId := siblingAfterId(h.objects, layer)

	removeLayerAt(oldParent, idx)
	insertLayerAfter(newParent, after, layer)

	w := rawio.NewWriter(12)
	w.U32(uint32(oldParentId))
	w.U32(uint32(layerId))
	w.U32(uint32(oldAfterId))
	h.emit(KindMoveLayer, w.Bytes())
	return nil
}

func invertMoveLayer(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	targetParentId := ObjectId(r.U32())
	layerId := ObjectId(r.U32())
	targetAfterId := ObjectId(r.U32())
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "MOVE_LAYER", "truncated payload")
	}
	layer, ok := GetAs[Layer](h.objects, layerId)
	if !ok {
		return nil
	}
	targetParent, ok := GetAs[Layer](h.objects, targetParentId)
	if !ok {
		return nil
	}

	currentParent := layer.Parent()
	idx := indexOfLayer(currentParent, layer)
	if idx < 0 {
		return undoFailure("MOVE_LAYER", "layer not found under its parent during invert")
	}
	currentParentId := h.objects.Add(currentParent)
	currentAfterId := siblingAfterId(h.objects, layer)

	removeLayerAt(currentParent, idx)
	insertLayerAfter(targetParent, resolveAfter(h.objects, targetAfterId), layer)

	w := rawio.NewWriter(12)
	w.U32(uint32(currentParentId))
	w.U32(uint32(layerId))
	w.U32(uint32(currentAfterId))
	dst.Push(newChunk(KindMoveLayer, c.Label, w.Bytes()))
	return nil
}

// SET_LAYER chunk payload: docId(u32) oldLayerId(u32, 0 for "none").
// Self-inverse.

func (h *UndoHistory) RecordSetLayer(doc Document, layer Layer) error {
	docId := h.objects.Add(doc)
	var oldId ObjectId
	if old := doc.Layer(); old != nil {
		oldId = h.objects.Add(old)
	}
	if layer != nil {
		h.objects.Add(layer)
	}
	doc.SetLayer(layer)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U32(uint32(oldId))
	h.emit(KindSetLayer, w.Bytes())
	return nil
}

func invertSetLayer(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	r := rawio.NewReader(c.Payload)
	docId := ObjectId(r.U32())
	oldId := ObjectId(r.U32())
	if r.Err() != nil {
		return undoFailureWrap(r.Err(), "SET_LAYER", "truncated payload")
	}
	doc, ok := GetAs[Document](h.objects, docId)
	if !ok {
		return nil
	}
	var currentId ObjectId
	if cur := doc.Layer(); cur != nil {
		currentId = h.objects.Add(cur)
	}
	oldLayer, _ := GetAs[Layer](h.objects, oldId)
	doc.SetLayer(oldLayer)

	w := rawio.NewWriter(8)
	w.U32(uint32(docId))
	w.U32(uint32(currentId))
	dst.Push(newChunk(KindSetLayer, c.Label, w.Bytes()))
	return nil
}
