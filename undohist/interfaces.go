package undohist

// Imgtype is the pixel format of an Image: how many bytes each sample or
// index occupies.
type Imgtype uint8

const (
	ImgtypeRGB     Imgtype = iota // 4 bytes/pixel
	ImgtypeGray                   // 2 bytes/pixel
	ImgtypeIndexed                // 1 byte/pixel
)

// BytesPerPixel returns the sample width for t, or 0 for an unknown type.
func (t Imgtype) BytesPerPixel() int {
	switch t {
	case ImgtypeRGB:
		return 4
	case ImgtypeGray:
		return 2
	case ImgtypeIndexed:
		return 1
	}
	return 0
}

func (t Imgtype) Valid() bool { return t <= ImgtypeIndexed }

// FlipAxis selects the axis a FLIP chunk mirrors an image rectangle across.
type FlipAxis uint8

const (
	FlipHorizontal FlipAxis = iota
	FlipVertical
)

// Image is the pixel-buffer collaborator the engine reads and mutates. It
// is implemented by the editor's concrete raster image type; the engine
// never constructs one itself except via ObjectsContainer.Get.
type Image interface {
	Imgtype() Imgtype
	W() uint16
	H() uint16
	MaskColor() uint32
	LineSize(w uint16) int

	// ReadRect returns a copy of the pixel bytes in [x,y,x+w,y+h), row-major,
	// each row LineSize(w) bytes. It errors if the rectangle is out of
	// bounds or has non-positive extent.
	ReadRect(x, y, w, h uint16) ([]byte, error)

	// WriteRect overwrites the pixel bytes in [x,y,x+w,y+h) with data, which
	// must be exactly LineSize(w)*h bytes.
	WriteRect(x, y, w, h uint16, data []byte) error

	// FlipRect mirrors the rectangle [x1,y1,x2,y2] in place across axis.
	FlipRect(x1, y1, x2, y2 uint16, axis FlipAxis) error
}

// Stock is an indexed collection of Images shared by a Sprite's Cels.
type Stock interface {
	Get(index uint16) Image
	// Replace swaps in img at index and returns the image that was there.
	Replace(index uint16, img Image) Image
	// InsertAt inserts img at index, shifting later entries up by one.
	InsertAt(index uint16, img Image)
	// RemoveAt removes and returns the image at index, shifting later
	// entries down by one.
	RemoveAt(index uint16) Image
}

// Cel places a Stock image at a frame with a position and opacity.
type Cel interface {
	Frame() uint16
	ImageIndex() uint16
	X() int16
	Y() int16
	Opacity() uint16
}

// LayerKind distinguishes the two Layer variants. Encoders/inverters switch
// on it rather than relying on virtual dispatch.
type LayerKind uint8

const (
	LayerKindImage LayerKind = iota
	LayerKindFolder
)

// Layer is a node in a Sprite's layer tree: either an image layer (with a
// list of Cels) or a folder (with child Layers).
type Layer interface {
	Name() string
	SetName(string)
	Flags() uint8
	SetFlags(uint8)
	Kind() LayerKind
	Parent() Layer
	SetParent(Layer)
	PrevSibling() Layer
	SetPrevSibling(Layer)

	// Cels is valid only when Kind() == LayerKindImage.
	Cels() []Cel
	SetCels([]Cel)

	// Children is valid only when Kind() == LayerKindFolder.
	Children() []Layer
	SetChildren([]Layer)
}

// Palette is one frame's set of indexed colors.
type Palette interface {
	Frame() uint16
	Size() int
	Entry(i int) uint32
	Entries() []uint32
	SetEntries(entries []uint32)
}

// Mask is a document-wide selection: a rectangle plus a packed-bit bitmap.
type Mask interface {
	Rect() (x, y, w, h uint16)
	SetRect(x, y, w, h uint16)
	Bits() []byte
	SetBits(bits []byte)
}

// RawStorage is a generic collaborator exposing a flat byte-addressable
// region, used by the DATA chunk kind for fields not covered by a more
// specific kind.
type RawStorage interface {
	ReadBytes(offset, length uint32) ([]byte, error)
	WriteBytes(offset uint32, data []byte) error
}

// Document is the Sprite/Document collaborator: current frame/layer, frame
// timing, palettes by frame, the selection mask, and document-wide
// properties (size, pixel format).
type Document interface {
	Frame() uint16
	SetFrame(uint16)

	TotalFrames() uint16
	SetTotalFrames(uint16)

	FrameDuration(frame uint16) uint16
	SetFrameDuration(frame, durationMs uint16)

	PaletteAt(frame uint16) Palette
	SetPaletteAt(frame uint16, p Palette)
	RemovePaletteAt(frame uint16) Palette

	Mask() Mask
	SetMask(Mask)

	Size() (w, h uint16)
	SetSize(w, h uint16)

	Imgtype() Imgtype
	SetImgtype(Imgtype)

	// RemapImages remaps every indexed pixel p, in every Stock image used
	// by a Cel whose frame is in [frameFrom, frameTo], to mapping[p], and
	// permutes the corresponding frames' Palette entries the same way.
	RemapImages(frameFrom, frameTo uint16, mapping [256]byte)

	Layer() Layer
	SetLayer(Layer)

	RootLayer() Layer
	Stock() Stock
}

// ObjectFactory reconstructs collaborator objects from the raw bytes a
// REMOVE_* chunk stored, so its inverse ADD_* chunk has something concrete
// to reinsert. The spec's chunk table describes this reconstruction
// ("reinserts image at same index", "re-materializes the entire subtree")
// without naming the constructor; a factory is the natural Go collaborator
// for it; see SPEC_FULL.md §6.1.
type ObjectFactory interface {
	NewImage(t Imgtype, w, h uint16) Image
	NewCel(frame, imageIndex uint16, x, y int16, opacity uint16) Cel
	NewLayer(kind LayerKind, name string) Layer
	NewPalette(frame uint16, entries []uint32) Palette
	NewMask(x, y, w, h uint16, bits []byte) Mask
}
