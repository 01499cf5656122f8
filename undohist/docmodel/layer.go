package docmodel

import "github.com/libresprite/undohist"

// Layer is a tagged union over the two layer variants; Cels is valid only
// for LayerKindImage and Children only for LayerKindFolder (Design Notes
// §9: model as a tagged sum, not virtual dispatch).
type Layer struct {
	name   string
	flags  uint8
	kind   undohist.LayerKind
	parent undohist.Layer
	prev   undohist.Layer

	cels     []undohist.Cel
	children []undohist.Layer
}

func NewImageLayer(name string) *Layer {
	return &Layer{name: name, kind: undohist.LayerKindImage}
}

func NewFolderLayer(name string) *Layer {
	return &Layer{name: name, kind: undohist.LayerKindFolder}
}

func (l *Layer) Name() string                { return l.name }
func (l *Layer) SetName(v string)            { l.name = v }
func (l *Layer) Flags() uint8                { return l.flags }
func (l *Layer) SetFlags(v uint8)            { l.flags = v }
func (l *Layer) Kind() undohist.LayerKind    { return l.kind }
func (l *Layer) Parent() undohist.Layer      { return l.parent }
func (l *Layer) SetParent(p undohist.Layer)  { l.parent = p }
func (l *Layer) PrevSibling() undohist.Layer { return l.prev }
func (l *Layer) SetPrevSibling(p undohist.Layer) { l.prev = p }

func (l *Layer) Cels() []undohist.Cel      { return l.cels }
func (l *Layer) SetCels(c []undohist.Cel)  { l.cels = c }
func (l *Layer) Children() []undohist.Layer { return l.children }
func (l *Layer) SetChildren(c []undohist.Layer) { l.children = c }
