/*
undohistdump replays a small canned editing scenario against an in-memory
sprite through the undo/redo engine, then prints a before/record/undo/redo
digest of the document state to stdout.

Usage:

	undohistdump [flags]

Flags:

-scenario
	which canned scenario to replay: "size", "palette" or "layer"
	(default "size")
-sizelimit
	the undo budget in MiB (default 8)
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/libresprite/undohist"
	"github.com/libresprite/undohist/docmodel"
)

var (
	scenarioFlag  = flag.String("scenario", "size", `which canned scenario to replay: "size", "palette" or "layer"`)
	sizelimitFlag = flag.Int("sizelimit", undohist.DefaultSizeLimitMiB, "the undo budget in MiB")
)

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("undohistdump takes no positional arguments")
	}

	limit := *sizelimitFlag
	switch *scenarioFlag {
	case "size":
		return runSizeScenario(limit)
	case "palette":
		return runPaletteScenario(limit)
	case "layer":
		return runLayerScenario(limit)
	}
	return fmt.Errorf("unknown -scenario %q; want one of size, palette, layer", *scenarioFlag)
}

func newDoc(limit int) (*undohist.UndoHistory, *docmodel.Sprite) {
	objects := docmodel.NewObjects()
	factory := docmodel.Factory{}
	h := undohist.NewUndoHistory(objects, factory, func() int { return limit })
	doc := docmodel.NewSprite(64, 64, undohist.ImgtypeIndexed, 1, 100, docmodel.NewStock())
	return h, doc
}

func printStats(tag string, h *undohist.UndoHistory) {
	s := h.Stats()
	fmt.Printf("%-8s undoGroups=%d redoGroups=%d diffCount=%d saved=%v\n",
		tag, s.UndoGroups, s.RedoGroups, s.DiffCount, h.IsSavedState())
}

// runSizeScenario exercises S1: record a resize, undo it, redo it.
func runSizeScenario(limit int) error {
	h, doc := newDoc(limit)
	fmt.Println("scenario: size")

	w, ht := doc.Size()
	fmt.Printf("before    size=%dx%d\n", w, ht)

	if err := h.RecordSetSize(doc, 200, 150); err != nil {
		return err
	}
	w, ht = doc.Size()
	fmt.Printf("recorded  size=%dx%d\n", w, ht)
	printStats("recorded", h)

	if err := h.DoUndo(); err != nil {
		return err
	}
	w, ht = doc.Size()
	fmt.Printf("undone    size=%dx%d\n", w, ht)
	printStats("undone", h)

	if err := h.DoRedo(); err != nil {
		return err
	}
	w, ht = doc.Size()
	fmt.Printf("redone    size=%dx%d\n", w, ht)
	printStats("redone", h)
	return nil
}

// runPaletteScenario exercises S3: a 2-cycle palette remap and its undo.
func runPaletteScenario(limit int) error {
	h, doc := newDoc(limit)
	fmt.Println("scenario: palette")

	stock := doc.Stock()
	img := docmodel.NewImage(undohist.ImgtypeIndexed, 2, 1)
	if err := img.WriteRect(0, 0, 2, 1, []byte{0, 1}); err != nil {
		return err
	}
	stock.InsertAt(0, img)

	layer := docmodel.NewImageLayer("layer 1")
	layer.SetCels([]undohist.Cel{docmodel.NewCel(0, 0, 0, 0, 255)})
	doc.RootLayer().SetChildren([]undohist.Layer{layer})
	doc.SetPaletteAt(0, docmodel.NewPalette(0, []uint32{0xff000000, 0xff0000ff}))

	rect, _ := img.ReadRect(0, 0, 2, 1)
	fmt.Printf("before    pixels=%v palette=%v\n", rect, doc.PaletteAt(0).Entries())

	var mapping [256]byte
	for i := range mapping {
		mapping[i] = byte(i)
	}
	mapping[0], mapping[1] = 1, 0
	if err := h.RecordRemapPalette(doc, 0, 0, mapping); err != nil {
		return err
	}
	rect, _ = img.ReadRect(0, 0, 2, 1)
	fmt.Printf("recorded  pixels=%v palette=%v\n", rect, doc.PaletteAt(0).Entries())
	printStats("recorded", h)

	if err := h.DoUndo(); err != nil {
		return err
	}
	rect, _ = img.ReadRect(0, 0, 2, 1)
	fmt.Printf("undone    pixels=%v palette=%v\n", rect, doc.PaletteAt(0).Entries())
	printStats("undone", h)
	return nil
}

// runLayerScenario exercises S6: removing and restoring a whole folder
// subtree through a single REMOVE_LAYER chunk.
func runLayerScenario(limit int) error {
	h, doc := newDoc(limit)
	fmt.Println("scenario: layer")

	stock := doc.Stock()
	img := docmodel.NewImage(undohist.ImgtypeIndexed, 2, 2)
	stock.InsertAt(0, img)

	sub := docmodel.NewFolderLayer("group")
	leaf := docmodel.NewImageLayer("leaf")
	leaf.SetCels([]undohist.Cel{docmodel.NewCel(0, 0, 0, 0, 255)})
	sub.SetChildren([]undohist.Layer{leaf})
	root := doc.RootLayer()
	root.SetChildren([]undohist.Layer{sub})

	fmt.Printf("before    rootChildren=%d\n", len(root.Children()))

	if err := h.RecordRemoveLayer(doc, root, sub); err != nil {
		return err
	}
	fmt.Printf("recorded  rootChildren=%d\n", len(root.Children()))
	printStats("recorded", h)

	if err := h.DoUndo(); err != nil {
		return err
	}
	fmt.Printf("undone    rootChildren=%d name=%s\n", len(root.Children()), root.Children()[0].Name())
	printStats("undone", h)
	return nil
}
