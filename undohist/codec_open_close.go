package undohist

// OPEN and CLOSE are zero-payload group delimiters. Each inverts to the
// other (invariant 2), so replaying a group in reverse is still a
// well-formed group; neither touches live state.

func invertOpen(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	dst.Push(newChunk(KindClose, c.Label, nil))
	return nil
}

func invertClose(h *UndoHistory, dst *UndoStream, c *UndoChunk) error {
	dst.Push(newChunk(KindOpen, c.Label, nil))
	return nil
}
