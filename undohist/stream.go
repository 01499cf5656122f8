package undohist

import "container/list"

// UndoStream is an ordered sequence of chunks with amortized O(1) head-pop,
// tail-pop and push, and a running memory total. Chunks are pushed onto the
// head, so the head is always the most recently recorded chunk (what
// doUndo/doRedo consume) and the tail is the oldest (what budget eviction
// discards) — the same "new stuff goes to the front, stale stuff drifts to
// the back" shape as the original's undo list.
type UndoStream struct {
	chunks  list.List // of *UndoChunk
	memSize int64
}

// NewUndoStream returns an empty stream.
func NewUndoStream() *UndoStream {
	s := &UndoStream{}
	s.chunks.Init()
	return s
}

// Push inserts chunk at the head, ahead of everything already recorded.
func (s *UndoStream) Push(c *UndoChunk) {
	s.chunks.PushFront(c)
	s.memSize += int64(c.Size())
}

// PopHead removes and returns the most recently pushed chunk, or nil if
// empty.
func (s *UndoStream) PopHead() *UndoChunk {
	e := s.chunks.Front()
	if e == nil {
		return nil
	}
	s.chunks.Remove(e)
	c := e.Value.(*UndoChunk)
	s.memSize -= int64(c.Size())
	return c
}

// PopTail removes and returns the oldest chunk, or nil if empty.
func (s *UndoStream) PopTail() *UndoChunk {
	e := s.chunks.Back()
	if e == nil {
		return nil
	}
	s.chunks.Remove(e)
	c := e.Value.(*UndoChunk)
	s.memSize -= int64(c.Size())
	return c
}

// PeekHead returns the most recently pushed chunk without removing it, or
// nil if empty.
func (s *UndoStream) PeekHead() *UndoChunk {
	e := s.chunks.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*UndoChunk)
}

// Clear drops every chunk and resets memSize to 0.
func (s *UndoStream) Clear() {
	s.chunks.Init()
	s.memSize = 0
}

func (s *UndoStream) IsEmpty() bool { return s.chunks.Len() == 0 }
func (s *UndoStream) Len() int      { return s.chunks.Len() }
func (s *UndoStream) MemSize() int64 { return s.memSize }

// Each calls fn for every chunk from head to tail, stopping early if fn
// returns false.
func (s *UndoStream) Each(fn func(*UndoChunk) bool) {
	for e := s.chunks.Front(); e != nil; e = e.Next() {
		if !fn(e.Value.(*UndoChunk)) {
			return
		}
	}
}

// outOfGroup reports whether the stream's running OPEN/CLOSE depth returns
// to zero after walking the whole stream. Per the Design Notes (resolving
// an open question in the source), this is always "depth after the full
// walk", not some quirk of an inner loop.
func outOfGroup(s *UndoStream) bool {
	depth := 0
	s.Each(func(c *UndoChunk) bool {
		switch c.Kind {
		case KindOpen:
			depth++
		case KindClose:
			depth--
		}
		return true
	})
	return depth == 0
}

// groupCount walks the stream head to tail, starting a fresh depth counter
// at each top-level entry, and counts how many times the running depth
// returns to zero (spec.md §4.3's count_undo_groups).
func groupCount(s *UndoStream) int {
	count, depth := 0, 0
	s.Each(func(c *UndoChunk) bool {
		switch c.Kind {
		case KindOpen:
			depth++
		case KindClose:
			depth--
		}
		if depth == 0 {
			count++
		}
		return true
	})
	return count
}
