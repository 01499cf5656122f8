package undohist

import "github.com/libresprite/undohist/rawio"

// Kind identifies an UndoChunk's encoder/inverter pair. Each kind's
// inverter (the inverters table in dispatch.go) names the inverse kind it
// emits.
type Kind uint16

const (
	KindOpen Kind = 1 + iota
	KindClose
	KindData
	KindImage
	KindFlip
	KindDirty
	KindAddImage
	KindRemoveImage
	KindReplaceImage
	KindAddCel
	KindRemoveCel
	KindSetLayerName
	KindAddLayer
	KindRemoveLayer
	KindMoveLayer
	KindSetLayer
	KindAddPalette
	KindRemovePalette
	KindSetPaletteColors
	KindRemapPalette
	KindSetMask
	KindSetImgtype
	KindSetSize
	KindSetFrame
	KindSetFrames
	KindSetFrLen
)

// kindLabel holds the canonical, user-visible name of each kind, used when
// a chunk is recorded with no explicit label set (spec.md §4.4).
var kindLabel = map[Kind]string{
	KindOpen:             "Open",
	KindClose:            "Close",
	KindData:             "Data",
	KindImage:            "Image",
	KindFlip:             "Flip",
	KindDirty:            "Dirty",
	KindAddImage:         "Add image",
	KindRemoveImage:      "Remove image",
	KindReplaceImage:     "Replace image",
	KindAddCel:           "Add cel",
	KindRemoveCel:        "Remove cel",
	KindSetLayerName:     "Set layer name",
	KindAddLayer:         "Add layer",
	KindRemoveLayer:      "Remove layer",
	KindMoveLayer:        "Move layer",
	KindSetLayer:         "Set layer",
	KindAddPalette:       "Add palette",
	KindRemovePalette:    "Remove palette",
	KindSetPaletteColors: "Set palette colors",
	KindRemapPalette:     "Remap palette",
	KindSetMask:          "Set mask",
	KindSetImgtype:       "Set color mode",
	KindSetSize:          "Set size",
	KindSetFrame:         "Set frame",
	KindSetFrames:        "Set frame count",
	KindSetFrLen:         "Set frame duration",
}

func (k Kind) String() string {
	if s, ok := kindLabel[k]; ok {
		return s
	}
	return "Unknown"
}

// headerFixedSize is the byte length of a chunk header without the label
// bytes: kind(u16) + size(u32) + the label's u16 length prefix.
const headerFixedSize = 2 + 4 + 2

// UndoChunk is one atomic, invertible record in an UndoStream.
type UndoChunk struct {
	Kind    Kind
	Label   string
	Payload []byte
}

// newChunk builds a chunk, falling back to kind's canonical name when label
// is empty (spec.md §4.4: "if null, the chunk uses the kind's canonical
// name").
func newChunk(kind Kind, label string, payload []byte) *UndoChunk {
	if label == "" {
		label = kind.String()
	}
	return &UndoChunk{Kind: kind, Label: label, Payload: payload}
}

// Size is the chunk's total byte length including its header, matching the
// `size` field of the spec's binary encoding. UndoStream.memSize is the sum
// of every contained chunk's Size.
func (c *UndoChunk) Size() int {
	return headerFixedSize + len(c.Label) + len(c.Payload)
}

// Marshal produces the exact on-the-wire bytes for c: a fixed header
// (kind, size, label) followed by the kind-specific payload.
func (c *UndoChunk) Marshal() []byte {
	w := rawio.NewWriter(c.Size())
	w.U16(uint16(c.Kind))
	w.U32(uint32(c.Size()))
	w.Text(c.Label)
	w.Raw(c.Payload)
	return w.Bytes()
}

// ParseChunk parses the bytes produced by Marshal.
func ParseChunk(data []byte) (*UndoChunk, error) {
	r := rawio.NewReader(data)
	kind := Kind(r.U16())
	size := r.U32()
	label := r.Text()
	payload := r.Raw(int(size) - headerFixedSize - len(label))
	if err := r.Err(); err != nil {
		return nil, err
	}
	return &UndoChunk{Kind: kind, Label: label, Payload: append([]byte(nil), payload...)}, nil
}
