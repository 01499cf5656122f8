package docmodel

import (
	"testing"

	"github.com/libresprite/undohist"
)

func TestObjectsAddIsIdempotent(t *testing.T) {
	o := NewObjects()
	img := NewImage(undohist.ImgtypeIndexed, 1, 1)

	id1 := o.Add(img)
	id2 := o.Add(img)
	if id1 != id2 {
		t.Fatalf("Add on the same object returned %d then %d", id1, id2)
	}
	if id1 == 0 {
		t.Fatal("Add on a non-nil object should never return id 0")
	}
	if o.Get(id1) != any(img) {
		t.Fatal("Get should return the object stored under its id")
	}
}

func TestObjectsAddNil(t *testing.T) {
	o := NewObjects()
	if id := o.Add(nil); id != 0 {
		t.Fatalf("Add(nil) = %d, want 0", id)
	}
}

func TestObjectsInsertAdvancesNext(t *testing.T) {
	o := NewObjects()
	img := NewImage(undohist.ImgtypeIndexed, 1, 1)
	o.Insert(100, img)

	other := NewImage(undohist.ImgtypeIndexed, 2, 2)
	id := o.Add(other)
	if id <= 100 {
		t.Fatalf("Add after Insert(100, ...) returned %d, want > 100", id)
	}
}

func TestObjectsRemove(t *testing.T) {
	o := NewObjects()
	img := NewImage(undohist.ImgtypeIndexed, 1, 1)
	id := o.Add(img)
	o.Remove(id)

	if o.Get(id) != nil {
		t.Fatal("Get after Remove should return nil")
	}
	// Remove drops the reverse mapping too, so the same object gets a fresh
	// id on its next Add rather than being silently treated as already known.
	if got := o.Add(img); got == id {
		t.Fatalf("Add after Remove returned the stale id %d", got)
	}
}

func TestObjectsGetZeroID(t *testing.T) {
	o := NewObjects()
	if o.Get(0) != nil {
		t.Fatal("Get(0) should always be nil")
	}
}
