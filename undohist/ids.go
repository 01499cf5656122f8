package undohist

// ObjectId is a stable numeric handle for a live document object. The zero
// value denotes "no object"; non-zero ids are allocated by an
// ObjectsContainer and remain stable for the container's lifetime.
type ObjectId uint32

// ObjectsContainer is a bidirectional map between opaque object handles and
// stable ObjectIds. The engine borrows, never owns, the container and the
// live objects it tracks.
type ObjectsContainer interface {
	// Add registers obj and returns its id, or returns the existing id if
	// obj is already registered (idempotent).
	Add(obj any) ObjectId

	// Get returns the object registered under id, or nil if id is zero or
	// unregistered.
	Get(id ObjectId) any

	// Insert reattaches obj under a previously known id, e.g. when a chunk
	// recreates an object that had been removed.
	Insert(id ObjectId, obj any)

	// Remove drops id's registration. It does not free obj.
	Remove(id ObjectId)
}

// GetAs resolves id through c and type-asserts the result to T. It reports
// ok=false both when the object is missing and when it has the wrong type.
func GetAs[T any](c ObjectsContainer, id ObjectId) (T, bool) {
	var zero T
	if id == 0 {
		return zero, false
	}
	obj := c.Get(id)
	if obj == nil {
		return zero, false
	}
	t, ok := obj.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
