package docmodel

import "testing"

func TestMaskRectAndBits(t *testing.T) {
	bits := []byte{0xff, 0x0f}
	m := NewMask(1, 2, 8, 2, bits)

	x, y, w, h := m.Rect()
	if x != 1 || y != 2 || w != 8 || h != 2 {
		t.Fatalf("Rect() = (%d,%d,%d,%d), want (1,2,8,2)", x, y, w, h)
	}
	if string(m.Bits()) != string(bits) {
		t.Fatal("Bits() did not return the constructed bitmap")
	}

	m.SetRect(0, 0, 4, 4)
	if x, y, w, h := m.Rect(); x != 0 || y != 0 || w != 4 || h != 4 {
		t.Fatalf("Rect() after SetRect = (%d,%d,%d,%d)", x, y, w, h)
	}
	m.SetBits([]byte{0x01})
	if len(m.Bits()) != 1 || m.Bits()[0] != 0x01 {
		t.Fatal("SetBits did not replace the bitmap")
	}
}
