package undohist

// direction selects which stream runUndo consumes from and which it
// produces inverses onto.
type direction uint8

const (
	directionUndo direction = iota
	directionRedo
)

// DefaultSizeLimitMiB is the undo budget used when no limit function is
// supplied, matching the "Options/UndoSizeLimit" default of spec.md §6.3.
const DefaultSizeLimitMiB = 8

const mib = 1 << 20

// Stats is a read-only snapshot of an UndoHistory's bookkeeping, used for
// diagnostics and tests; it names no new invariant beyond spec.md §3/§4.3.
type Stats struct {
	UndoGroups  int
	RedoGroups  int
	UndoMemSize int64
	RedoMemSize int64
	DiffCount   int64
	DiffSaved   int64
}

// UndoHistory is the dual-stream controller: it records new chunks onto
// undo, consumes chunks during undo/redo while recording inverses onto the
// other stream, enforces the memory budget, and tracks saved-state.
type UndoHistory struct {
	objects ObjectsContainer
	factory ObjectFactory

	undo *UndoStream
	redo *UndoStream

	label   string
	enabled bool

	diffCount int64
	diffSaved int64

	// sizeLimitMiB is re-read on every updateUndo, so a caller can let the
	// user change the "Options/UndoSizeLimit" setting mid-session (see
	// SPEC_FULL.md §10's supplemented live-update feature). Nil means
	// DefaultSizeLimitMiB.
	sizeLimitMiB func() int

	groupDepth int // tracks open UndoOpen calls not yet UndoClose'd

	// docRoots remembers which Document owns which root Layer, so an
	// inverter that only has a Layer in hand (no Document parameter of its
	// own) can still recover the spriteId a Layer blob embeds. Populated
	// by RecordAddLayer/RecordRemoveLayer and by REMOVE_LAYER's inverter.
	docRoots map[Layer]ObjectId
}

// NewUndoHistory returns an enabled UndoHistory with empty streams. objects
// and factory must be non-nil; sizeLimitMiB may be nil to use
// DefaultSizeLimitMiB.
func NewUndoHistory(objects ObjectsContainer, factory ObjectFactory, sizeLimitMiB func() int) *UndoHistory {
	return &UndoHistory{
		objects:      objects,
		factory:      factory,
		undo:         NewUndoStream(),
		redo:         NewUndoStream(),
		enabled:      true,
		sizeLimitMiB: sizeLimitMiB,
	}
}

func (h *UndoHistory) limitBytes() int64 {
	limit := DefaultSizeLimitMiB
	if h.sizeLimitMiB != nil {
		limit = h.sizeLimitMiB()
	}
	return int64(limit) * mib
}

func (h *UndoHistory) CanUndo() bool { return !h.undo.IsEmpty() }
func (h *UndoHistory) CanRedo() bool { return !h.redo.IsEmpty() }

func (h *UndoHistory) IsEnabled() bool    { return h.enabled }
func (h *UndoHistory) SetEnabled(v bool)  { h.enabled = v }

// SetLabel tags every chunk recorded from now on, until the next SetLabel
// call, with text. The engine copies text into each chunk (spec.md §9:
// "Strategy: copy the label string into each chunk").
func (h *UndoHistory) SetLabel(text string) { h.label = text }

// GetNextUndoLabel returns the label of the group that DoUndo would apply
// next, or "" if CanUndo is false.
func (h *UndoHistory) GetNextUndoLabel() string {
	if c := h.undo.PeekHead(); c != nil {
		return c.Label
	}
	return ""
}

// GetNextRedoLabel returns the label of the group that DoRedo would apply
// next, or "" if CanRedo is false.
func (h *UndoHistory) GetNextRedoLabel() string {
	if c := h.redo.PeekHead(); c != nil {
		return c.Label
	}
	return ""
}

// MarkSavedState snapshots diffCount as the saved state.
func (h *UndoHistory) MarkSavedState() { h.diffSaved = h.diffCount }

// IsSavedState reports whether diffCount equals the value at the last
// MarkSavedState call.
func (h *UndoHistory) IsSavedState() bool { return h.diffCount == h.diffSaved }

// ClearRedo discards every chunk on the redo stream.
func (h *UndoHistory) ClearRedo() { h.redo.Clear() }

func (h *UndoHistory) Stats() Stats {
	return Stats{
		UndoGroups:  groupCount(h.undo),
		RedoGroups:  groupCount(h.redo),
		UndoMemSize: h.undo.MemSize(),
		RedoMemSize: h.redo.MemSize(),
		DiffCount:   h.diffCount,
		DiffSaved:   h.diffSaved,
	}
}

// UndoOpen emits an OPEN delimiter, starting (or nesting) a group.
func (h *UndoHistory) UndoOpen() {
	h.groupDepth++
	h.emit(KindOpen, nil)
}

// UndoClose emits a CLOSE delimiter, matching the innermost open UndoOpen.
func (h *UndoHistory) UndoClose() {
	h.groupDepth--
	h.emit(KindClose, nil)
}

// emit appends a new chunk to undo, tagged with the current label, and runs
// updateUndo. Every record_<action> method funnels through this.
func (h *UndoHistory) emit(kind Kind, payload []byte) {
	h.undo.Push(newChunk(kind, h.label, payload))
	h.updateUndo()
}

// updateUndo runs after every encoded chunk (spec.md §4.3): it bumps
// diffCount, clears redo, and — only once undo is out of any open group —
// enforces the memory budget by discarding whole groups from the tail.
func (h *UndoHistory) updateUndo() {
	h.diffCount++
	h.ClearRedo()

	if !outOfGroup(h.undo) {
		return
	}
	limit := h.limitBytes()
	for groupCount(h.undo) > 1 && h.undo.MemSize() > limit {
		discardTail(h.undo)
	}
}

// discardTail frees exactly one group from the tail of s, without invoking
// any inverter or touching live state. Reading tail-to-head visits a group
// in recording order, OPEN first; the depth counts CLOSE as +1 and OPEN as
// -1 (the mirror of runUndo's signs), and the group ends when it returns
// to zero.
func discardTail(s *UndoStream) {
	depth := 0
	for {
		c := s.PopTail()
		if c == nil {
			return
		}
		switch c.Kind {
		case KindClose:
			depth++
		case KindOpen:
			depth--
		}
		if depth == 0 {
			return
		}
	}
}

// DoUndo replays exactly one group (or one standalone chunk) from undo onto
// redo, mutating live state back to the pre-mutation values.
func (h *UndoHistory) DoUndo() error { return h.runUndo(directionUndo) }

// DoRedo replays exactly one group (or one standalone chunk) from redo onto
// undo, mutating live state forward again.
func (h *UndoHistory) DoRedo() error { return h.runUndo(directionRedo) }

// runUndo implements spec.md §4.3's runUndo(direction): pop one group at a
// time from src, invoking each chunk's inverter to produce its inverse on
// dst and to mutate live state, until the OPEN/CLOSE depth returns to zero.
func (h *UndoHistory) runUndo(dir direction) error {
	src, dst := h.undo, h.redo
	diffDelta := int64(-1)
	if dir == directionRedo {
		src, dst = h.redo, h.undo
		diffDelta = 1
	}

	depth := 0
	for {
		c := src.PopHead()
		if c == nil {
			return nil
		}
		h.label = c.Label

		inv, ok := inverters[c.Kind]
		if !ok {
			return undoFailure("runUndo", "no inverter registered for kind "+c.Kind.String())
		}
		if err := inv(h, dst, c); err != nil {
			return err
		}

		switch c.Kind {
		case KindOpen:
			depth++
		case KindClose:
			depth--
		}
		h.diffCount += diffDelta

		if depth == 0 {
			return nil
		}
	}
}
