// Package docmodel is a concrete, in-memory implementation of the §6.1
// collaborator interfaces the undo engine consumes but does not own:
// images, stocks, layers, cels, palettes, masks and the sprite/document
// itself. It exists so the engine's codecs have something real to encode
// and invert against, and so the testable properties of SPEC_FULL.md §8
// can be exercised end to end.
package docmodel

import "github.com/libresprite/undohist"

// Objects is a slot-map ObjectsContainer: a monotonically increasing
// ObjectId per newly-seen object, with a reverse lookup for Add's
// idempotence. Per the Design Notes, this makes stale-id lookups cheap (a
// removed id simply maps to nothing).
type Objects struct {
	byID  map[undohist.ObjectId]any
	byObj map[any]undohist.ObjectId
	next  undohist.ObjectId
}

// NewObjects returns an empty container.
func NewObjects() *Objects {
	return &Objects{
		byID:  make(map[undohist.ObjectId]any),
		byObj: make(map[any]undohist.ObjectId),
	}
}

func (o *Objects) Add(obj any) undohist.ObjectId {
	if obj == nil {
		return 0
	}
	if id, ok := o.byObj[obj]; ok {
		return id
	}
	o.next++
	id := o.next
	o.byID[id] = obj
	o.byObj[obj] = id
	return id
}

func (o *Objects) Get(id undohist.ObjectId) any {
	if id == 0 {
		return nil
	}
	return o.byID[id]
}

func (o *Objects) Insert(id undohist.ObjectId, obj any) {
	if id == 0 || obj == nil {
		return
	}
	o.byID[id] = obj
	o.byObj[obj] = id
	if id > o.next {
		o.next = id
	}
}

func (o *Objects) Remove(id undohist.ObjectId) {
	obj, ok := o.byID[id]
	if !ok {
		return
	}
	delete(o.byID, id)
	delete(o.byObj, obj)
}
