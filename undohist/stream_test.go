package undohist

import "testing"

func TestUndoStreamPushPop(t *testing.T) {
	s := NewUndoStream()
	if !s.IsEmpty() {
		t.Fatal("new stream should be empty")
	}
	a := newChunk(KindOpen, "", nil)
	b := newChunk(KindData, "", []byte{1, 2, 3})
	c := newChunk(KindClose, "", nil)
	s.Push(a)
	s.Push(b)
	s.Push(c)

	if got, want := s.Len(), 3; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := s.MemSize(), int64(a.Size()+b.Size()+c.Size()); got != want {
		t.Fatalf("MemSize() = %d, want %d", got, want)
	}
	if s.PeekHead() != c {
		t.Fatal("PeekHead did not return the most recently pushed chunk")
	}

	if got := s.PopHead(); got != c {
		t.Fatalf("PopHead() = %v, want %v", got, c)
	}
	if got := s.PopTail(); got != a {
		t.Fatalf("PopTail() = %v, want %v", got, a)
	}
	if got, want := s.MemSize(), int64(b.Size()); got != want {
		t.Fatalf("MemSize() after pops = %d, want %d", got, want)
	}

	s.Clear()
	if !s.IsEmpty() || s.MemSize() != 0 {
		t.Fatal("Clear did not empty the stream")
	}
	if s.PopHead() != nil || s.PopTail() != nil {
		t.Fatal("pops on an empty stream should return nil")
	}
}

func TestGroupCounting(t *testing.T) {
	s := NewUndoStream()
	// one standalone chunk, then a group around one chunk, then a nested group.
	s.Push(newChunk(KindData, "", nil))
	s.Push(newChunk(KindOpen, "", nil))
	s.Push(newChunk(KindData, "", nil))
	s.Push(newChunk(KindClose, "", nil))
	s.Push(newChunk(KindOpen, "", nil))
	s.Push(newChunk(KindOpen, "", nil))
	s.Push(newChunk(KindData, "", nil))
	s.Push(newChunk(KindClose, "", nil))
	s.Push(newChunk(KindClose, "", nil))

	if got, want := groupCount(s), 3; got != want {
		t.Fatalf("groupCount() = %d, want %d", got, want)
	}
	if !outOfGroup(s) {
		t.Fatal("well-formed stream should be out of group")
	}

	s.Push(newChunk(KindOpen, "", nil))
	if outOfGroup(s) {
		t.Fatal("stream with a trailing unmatched OPEN should not be out of group")
	}
}

func TestChunkLabelDefaultsToKindName(t *testing.T) {
	c := newChunk(KindSetSize, "", nil)
	if got, want := c.Label, "Set size"; got != want {
		t.Fatalf("Label = %q, want %q", got, want)
	}

	c2 := newChunk(KindSetSize, "Resize canvas", nil)
	if got, want := c2.Label, "Resize canvas"; got != want {
		t.Fatalf("Label = %q, want %q", got, want)
	}
}

func TestChunkMarshalRoundTrip(t *testing.T) {
	orig := newChunk(KindData, "my label", []byte{9, 8, 7, 6})
	data := orig.Marshal()
	if got, want := len(data), orig.Size(); got != want {
		t.Fatalf("Marshal produced %d bytes, Size() reports %d", got, want)
	}

	parsed, err := ParseChunk(data)
	if err != nil {
		t.Fatalf("ParseChunk: %v", err)
	}
	if parsed.Kind != orig.Kind || parsed.Label != orig.Label {
		t.Fatalf("ParseChunk = %+v, want %+v", parsed, orig)
	}
	if string(parsed.Payload) != string(orig.Payload) {
		t.Fatalf("ParseChunk payload = %v, want %v", parsed.Payload, orig.Payload)
	}
}

func TestChunkMarshalTruncated(t *testing.T) {
	orig := newChunk(KindData, "x", []byte{1, 2, 3, 4, 5})
	data := orig.Marshal()
	_, err := ParseChunk(data[:len(data)-2])
	if err == nil {
		t.Fatal("ParseChunk on truncated data should fail")
	}
}
