package docmodel

import "github.com/libresprite/undohist"

// Factory is the default undohist.ObjectFactory, constructing the concrete
// types in this package.
type Factory struct{}

func (Factory) NewImage(t undohist.Imgtype, w, h uint16) undohist.Image {
	return NewImage(t, w, h)
}

func (Factory) NewCel(frame, imageIndex uint16, x, y int16, opacity uint16) undohist.Cel {
	return NewCel(frame, imageIndex, x, y, opacity)
}

func (Factory) NewLayer(kind undohist.LayerKind, name string) undohist.Layer {
	if kind == undohist.LayerKindFolder {
		return NewFolderLayer(name)
	}
	return NewImageLayer(name)
}

func (Factory) NewPalette(frame uint16, entries []uint32) undohist.Palette {
	return NewPalette(frame, entries)
}

func (Factory) NewMask(x, y, w, h uint16, bits []byte) undohist.Mask {
	return NewMask(x, y, w, h, bits)
}
