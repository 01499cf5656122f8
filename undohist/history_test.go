package undohist_test

import (
	"bytes"
	"testing"

	"github.com/libresprite/undohist"
	"github.com/libresprite/undohist/docmodel"
)

// newFixture builds an UndoHistory plus a minimal document to record
// actions against: a 100x100 indexed sprite with two frames, an empty
// stock and no layers under its root.
func newFixture(t *testing.T, sizeLimitMiB int) (*undohist.UndoHistory, *docmodel.Sprite, *docmodel.Stock) {
	t.Helper()
	objects := docmodel.NewObjects()
	factory := docmodel.Factory{}
	limit := func() int { return sizeLimitMiB }
	h := undohist.NewUndoHistory(objects, factory, limit)

	stock := docmodel.NewStock()
	doc := docmodel.NewSprite(100, 100, undohist.ImgtypeIndexed, 2, 100, stock)
	return h, doc, stock
}

func fillImage(t *testing.T, img *docmodel.Image, fill byte) {
	t.Helper()
	pix := make([]byte, img.LineSize(img.W())*int(img.H()))
	for i := range pix {
		pix[i] = fill
	}
	if err := img.WriteRect(0, 0, img.W(), img.H(), pix); err != nil {
		t.Fatalf("WriteRect: %v", err)
	}
}

// S1. Record SetSize, undo, redo.
func TestScenarioSetSize(t *testing.T) {
	h, doc, _ := newFixture(t, 8)

	if err := h.RecordSetSize(doc, 200, 150); err != nil {
		t.Fatalf("RecordSetSize: %v", err)
	}
	if w, ht := doc.Size(); w != 200 || ht != 150 {
		t.Fatalf("Size after record = (%d,%d), want (200,150)", w, ht)
	}

	if err := h.DoUndo(); err != nil {
		t.Fatalf("DoUndo: %v", err)
	}
	if w, ht := doc.Size(); w != 100 || ht != 100 {
		t.Fatalf("Size after undo = (%d,%d), want (100,100)", w, ht)
	}

	if err := h.DoRedo(); err != nil {
		t.Fatalf("DoRedo: %v", err)
	}
	if w, ht := doc.Size(); w != 200 || ht != 150 {
		t.Fatalf("Size after redo = (%d,%d), want (200,150)", w, ht)
	}
}

// S2. Two grouped IMAGE snapshots bracketing one external pixel edit across
// their combined rectangle; a single doUndo restores every pixel.
func TestScenarioGroupedImageSnapshots(t *testing.T) {
	h, _, _ := newFixture(t, 8)
	img := docmodel.NewImage(undohist.ImgtypeIndexed, 8, 4)
	fillImage(t, img, 0x11)

	h.UndoOpen()
	if err := h.RecordImage(img, 0, 0, 4, 4); err != nil {
		t.Fatalf("RecordImage left half: %v", err)
	}
	if err := h.RecordImage(img, 4, 0, 4, 4); err != nil {
		t.Fatalf("RecordImage right half: %v", err)
	}
	h.UndoClose()

	// externally-performed edit across the whole 8x4 rectangle.
	edited := make([]byte, img.LineSize(8)*4)
	for i := range edited {
		edited[i] = 0x22
	}
	if err := img.WriteRect(0, 0, 8, 4, edited); err != nil {
		t.Fatalf("WriteRect (edit): %v", err)
	}

	if err := h.DoUndo(); err != nil {
		t.Fatalf("DoUndo: %v", err)
	}
	rect, err := img.ReadRect(0, 0, 8, 4)
	if err != nil {
		t.Fatalf("ReadRect: %v", err)
	}
	for i, b := range rect {
		if b != 0x11 {
			t.Fatalf("pixel %d = %#x after undo, want 0x11", i, b)
		}
	}
	if h.CanUndo() {
		t.Fatal("group should be fully consumed by one DoUndo")
	}
}

// S3. Remapping a palette permutes both the palette entries and every
// indexed pixel that references them, in the given frame range; undo
// applies the inverse (self-inverse for a 2-cycle).
func TestScenarioRemapPalette(t *testing.T) {
	h, doc, stock := newFixture(t, 8)
	img := docmodel.NewImage(undohist.ImgtypeIndexed, 2, 1)
	if err := img.WriteRect(0, 0, 2, 1, []byte{0, 1}); err != nil {
		t.Fatalf("WriteRect: %v", err)
	}
	stock.InsertAt(0, img)

	layer := docmodel.NewImageLayer("layer 1")
	for frame := uint16(0); frame <= 1; frame++ {
		layer.SetCels(append(layer.Cels(), docmodel.NewCel(frame, 0, 0, 0, 255)))
	}
	doc.RootLayer().SetChildren([]undohist.Layer{layer})

	for frame := uint16(0); frame <= 1; frame++ {
		doc.SetPaletteAt(frame, docmodel.NewPalette(frame, []uint32{0xff000000, 0xff0000ff}))
	}

	var mapping [256]byte
	for i := range mapping {
		mapping[i] = byte(i)
	}
	mapping[0], mapping[1] = 1, 0

	if err := h.RecordRemapPalette(doc, 0, 1, mapping); err != nil {
		t.Fatalf("RecordRemapPalette: %v", err)
	}

	rect, _ := img.ReadRect(0, 0, 2, 1)
	if rect[0] != 1 || rect[1] != 0 {
		t.Fatalf("pixels after remap = %v, want [1 0]", rect)
	}
	if e := doc.PaletteAt(0).Entries(); e[0] != 0xff0000ff || e[1] != 0xff000000 {
		t.Fatalf("frame 0 palette after remap = %v", e)
	}

	if err := h.DoUndo(); err != nil {
		t.Fatalf("DoUndo: %v", err)
	}
	rect, _ = img.ReadRect(0, 0, 2, 1)
	if rect[0] != 0 || rect[1] != 1 {
		t.Fatalf("pixels after undo = %v, want [0 1]", rect)
	}
	if e := doc.PaletteAt(0).Entries(); e[0] != 0xff000000 || e[1] != 0xff0000ff {
		t.Fatalf("frame 0 palette after undo = %v", e)
	}
	if e := doc.PaletteAt(1).Entries(); e[0] != 0xff000000 || e[1] != 0xff0000ff {
		t.Fatalf("frame 1 palette after undo = %v", e)
	}
}

// S4 / P4. Budget monotonicity: once three groups overshoot an 8 MiB
// limit, only the newest group remains after the third group closes.
func TestScenarioBudgetEviction(t *testing.T) {
	h, doc, _ := newFixture(t, 8)
	big := make([]byte, 11<<20) // 11 MiB, so 3 groups total 30ish MiB
	if err := doc.WriteBytes(0, big); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}

	for i := 0; i < 3; i++ {
		h.UndoOpen()
		if err := h.RecordData(doc, 0, uint32(len(big))); err != nil {
			t.Fatalf("RecordData %d: %v", i, err)
		}
		h.UndoClose()
	}

	stats := h.Stats()
	if stats.UndoGroups != 1 {
		t.Fatalf("UndoGroups = %d, want 1 after eviction", stats.UndoGroups)
	}
}

// S5 / P2. Saved-state law.
func TestScenarioSavedStateLaw(t *testing.T) {
	h, doc, _ := newFixture(t, 8)

	if err := h.RecordSetFrame(doc, 1); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordSetFrame(doc, 0); err != nil {
		t.Fatal(err)
	}
	h.MarkSavedState()
	if !h.IsSavedState() {
		t.Fatal("IsSavedState should be true right after MarkSavedState")
	}

	if err := h.RecordSetFrame(doc, 1); err != nil {
		t.Fatal(err)
	}
	if h.IsSavedState() {
		t.Fatal("a new recording should clear the saved state")
	}

	if err := h.DoUndo(); err != nil {
		t.Fatal(err)
	}
	if !h.IsSavedState() {
		t.Fatal("undoing the one recording since the mark should restore the saved state")
	}
}

// S6. Removing a folder subtree and undoing it re-materializes every
// layer, cel, and pixel exactly.
func TestScenarioRemoveLayerSubtree(t *testing.T) {
	h, doc, stock := newFixture(t, 8)

	img1 := docmodel.NewImage(undohist.ImgtypeIndexed, 2, 2)
	fillImage(t, img1, 0x41)
	img2 := docmodel.NewImage(undohist.ImgtypeIndexed, 2, 2)
	fillImage(t, img2, 0x42)
	stock.InsertAt(0, img1)
	stock.InsertAt(1, img2)

	sub := docmodel.NewFolderLayer("group")
	layerA := docmodel.NewImageLayer("layer A")
	layerA.SetCels([]undohist.Cel{
		docmodel.NewCel(0, 0, 1, 2, 255),
		docmodel.NewCel(1, 0, 1, 2, 255),
	})
	layerB := docmodel.NewImageLayer("layer B")
	layerB.SetCels([]undohist.Cel{
		docmodel.NewCel(0, 1, 3, 4, 128),
		docmodel.NewCel(1, 1, 3, 4, 128),
	})
	sub.SetChildren([]undohist.Layer{layerA, layerB})
	root := doc.RootLayer()
	root.SetChildren([]undohist.Layer{sub})

	if err := h.RecordRemoveLayer(doc, root, sub); err != nil {
		t.Fatalf("RecordRemoveLayer: %v", err)
	}
	if len(root.Children()) != 0 {
		t.Fatal("subtree should be gone from the root after removal")
	}

	if err := h.DoUndo(); err != nil {
		t.Fatalf("DoUndo: %v", err)
	}
	children := root.Children()
	if len(children) != 1 || children[0].Name() != "group" {
		t.Fatalf("root children after undo = %v, want [group]", children)
	}
	restoredSub := children[0]
	if len(restoredSub.Children()) != 2 {
		t.Fatalf("restored subtree has %d children, want 2", len(restoredSub.Children()))
	}
	names := []string{restoredSub.Children()[0].Name(), restoredSub.Children()[1].Name()}
	if names[0] != "layer A" || names[1] != "layer B" {
		t.Fatalf("restored layer names = %v", names)
	}
	if got := len(restoredSub.Children()[0].Cels()); got != 2 {
		t.Fatalf("restored layer A has %d cels, want 2", got)
	}
	cel := restoredSub.Children()[0].Cels()[0]
	if cel.X() != 1 || cel.Y() != 2 || cel.Opacity() != 255 {
		t.Fatalf("restored cel = %+v, want x=1 y=2 opacity=255", cel)
	}
}

// P1. Inverse round-trip across a mixed sequence of actions.
func TestInverseRoundTrip(t *testing.T) {
	h, doc, _ := newFixture(t, 8)

	if err := h.RecordSetSize(doc, 64, 64); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordSetFrame(doc, 1); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordSetFrLen(doc, 0, 250); err != nil {
		t.Fatal(err)
	}

	for h.CanUndo() {
		if err := h.DoUndo(); err != nil {
			t.Fatalf("DoUndo: %v", err)
		}
	}
	if w, ht := doc.Size(); w != 100 || ht != 100 {
		t.Fatalf("Size after full undo = (%d,%d), want (100,100)", w, ht)
	}
	if doc.Frame() != 0 {
		t.Fatalf("Frame after full undo = %d, want 0", doc.Frame())
	}
	if d := doc.FrameDuration(0); d != 100 {
		t.Fatalf("FrameDuration(0) after full undo = %d, want 100", d)
	}

	for h.CanRedo() {
		if err := h.DoRedo(); err != nil {
			t.Fatalf("DoRedo: %v", err)
		}
	}
	if w, ht := doc.Size(); w != 64 || ht != 64 {
		t.Fatalf("Size after full redo = (%d,%d), want (64,64)", w, ht)
	}
	if doc.Frame() != 1 {
		t.Fatalf("Frame after full redo = %d, want 1", doc.Frame())
	}
	if d := doc.FrameDuration(0); d != 250 {
		t.Fatalf("FrameDuration(0) after full redo = %d, want 250", d)
	}
}

// P3. Group atomicity: a whole group is consumed by one DoUndo, and every
// chunk in it produces a matching inverse on the destination stream.
func TestGroupAtomicity(t *testing.T) {
	h, doc, _ := newFixture(t, 8)

	h.UndoOpen()
	if err := h.RecordSetFrame(doc, 1); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordSetFrLen(doc, 0, 300); err != nil {
		t.Fatal(err)
	}
	h.UndoClose()

	before := h.Stats().UndoGroups
	if before != 1 {
		t.Fatalf("UndoGroups before undo = %d, want 1", before)
	}
	if err := h.DoUndo(); err != nil {
		t.Fatal(err)
	}
	if h.CanUndo() {
		t.Fatal("the whole group should be consumed by one DoUndo")
	}
	if got, want := h.Stats().RedoGroups, 1; got != want {
		t.Fatalf("RedoGroups after undo = %d, want %d", got, want)
	}
}

// P6. Redo clearing: any fresh recording clears a non-empty redo stream.
func TestRedoClearing(t *testing.T) {
	h, doc, _ := newFixture(t, 8)

	if err := h.RecordSetFrame(doc, 1); err != nil {
		t.Fatal(err)
	}
	if err := h.DoUndo(); err != nil {
		t.Fatal(err)
	}
	if !h.CanRedo() {
		t.Fatal("expected pending redo before the next recording")
	}

	if err := h.RecordSetFrame(doc, 1); err != nil {
		t.Fatal(err)
	}
	if h.CanRedo() {
		t.Fatal("a new recording should clear canRedo")
	}
}

// Exercises the DATA kind end to end via Sprite's RawStorage.
func TestDataChunkRoundTrip(t *testing.T) {
	h, doc, _ := newFixture(t, 8)
	if err := doc.WriteBytes(0, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordData(doc, 0, 5); err != nil {
		t.Fatal(err)
	}
	if err := doc.WriteBytes(0, []byte("WORLD")); err != nil {
		t.Fatal(err)
	}
	if err := h.DoUndo(); err != nil {
		t.Fatal(err)
	}
	got, err := doc.ReadBytes(0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("UserData after undo = %q, want %q", got, "hello")
	}
}
