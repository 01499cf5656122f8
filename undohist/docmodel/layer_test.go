package docmodel

import (
	"testing"

	"github.com/libresprite/undohist"
)

func TestLayerKinds(t *testing.T) {
	img := NewImageLayer("sprite layer")
	if img.Kind() != undohist.LayerKindImage {
		t.Fatal("NewImageLayer should have LayerKindImage")
	}
	folder := NewFolderLayer("group")
	if folder.Kind() != undohist.LayerKindFolder {
		t.Fatal("NewFolderLayer should have LayerKindFolder")
	}
}

func TestLayerCelsAndChildren(t *testing.T) {
	img := NewImageLayer("layer")
	cels := []undohist.Cel{NewCel(0, 0, 0, 0, 255)}
	img.SetCels(cels)
	if len(img.Cels()) != 1 {
		t.Fatal("SetCels/Cels round trip failed")
	}

	folder := NewFolderLayer("group")
	folder.SetChildren([]undohist.Layer{img})
	if len(folder.Children()) != 1 || folder.Children()[0] != undohist.Layer(img) {
		t.Fatal("SetChildren/Children round trip failed")
	}
}

func TestLayerParentAndSiblingLinks(t *testing.T) {
	a := NewImageLayer("a")
	b := NewImageLayer("b")
	folder := NewFolderLayer("group")
	a.SetParent(folder)
	b.SetParent(folder)
	b.SetPrevSibling(a)

	if a.Parent() != undohist.Layer(folder) {
		t.Fatal("SetParent/Parent round trip failed")
	}
	if b.PrevSibling() != undohist.Layer(a) {
		t.Fatal("SetPrevSibling/PrevSibling round trip failed")
	}
}

func TestLayerNameAndFlags(t *testing.T) {
	l := NewImageLayer("old name")
	l.SetName("new name")
	if l.Name() != "new name" {
		t.Fatalf("Name() = %q, want %q", l.Name(), "new name")
	}
	l.SetFlags(3)
	if l.Flags() != 3 {
		t.Fatalf("Flags() = %d, want 3", l.Flags())
	}
}
