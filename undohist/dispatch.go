package undohist

// inverterFunc reads c (already popped from the source stream), appends
// its inverse chunk onto dst, and mutates live state to the values c
// encodes. It returns an error for the category-1/2 failures of spec.md §7.
type inverterFunc func(h *UndoHistory, dst *UndoStream, c *UndoChunk) error

// inverters maps every Kind to its inverter, per the table in spec.md
// §4.2. It is the single source of truth runUndo dispatches through.
var inverters = map[Kind]inverterFunc{
	KindOpen:             invertOpen,
	KindClose:            invertClose,
	KindData:             invertData,
	KindImage:            invertImage,
	KindFlip:             invertFlip,
	KindDirty:            invertDirty,
	KindAddImage:         invertAddImage,
	KindRemoveImage:      invertRemoveImage,
	KindReplaceImage:     invertReplaceImage,
	KindAddCel:           invertAddCel,
	KindRemoveCel:        invertRemoveCel,
	KindSetLayerName:     invertSetLayerName,
	KindAddLayer:         invertAddLayer,
	KindRemoveLayer:      invertRemoveLayer,
	KindMoveLayer:        invertMoveLayer,
	KindSetLayer:         invertSetLayer,
	KindAddPalette:       invertAddPalette,
	KindRemovePalette:    invertRemovePalette,
	KindSetPaletteColors: invertSetPaletteColors,
	KindRemapPalette:     invertRemapPalette,
	KindSetMask:          invertSetMask,
	KindSetImgtype:       invertSetImgtype,
	KindSetSize:          invertSetSize,
	KindSetFrame:         invertSetFrame,
	KindSetFrames:        invertSetFrames,
	KindSetFrLen:         invertSetFrLen,
}
