package docmodel

import "github.com/libresprite/undohist"

// Stock is an indexed, insertion-ordered collection of Images.
type Stock struct {
	images []undohist.Image
}

func NewStock() *Stock { return &Stock{} }

func (s *Stock) Get(index uint16) undohist.Image {
	i := int(index)
	if i < 0 || i >= len(s.images) {
		return nil
	}
	return s.images[i]
}

func (s *Stock) Replace(index uint16, img undohist.Image) undohist.Image {
	i := int(index)
	if i < 0 || i >= len(s.images) {
		return nil
	}
	old := s.images[i]
	s.images[i] = img
	return old
}

func (s *Stock) InsertAt(index uint16, img undohist.Image) {
	i := int(index)
	if i > len(s.images) {
		i = len(s.images)
	}
	s.images = append(s.images, nil)
	copy(s.images[i+1:], s.images[i:])
	s.images[i] = img
}

func (s *Stock) RemoveAt(index uint16) undohist.Image {
	i := int(index)
	if i < 0 || i >= len(s.images) {
		return nil
	}
	img := s.images[i]
	copy(s.images[i:], s.images[i+1:])
	s.images = s.images[:len(s.images)-1]
	return img
}

func (s *Stock) Len() int { return len(s.images) }
