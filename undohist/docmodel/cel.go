package docmodel

// Cel places a Stock image at a frame with a position and opacity.
type Cel struct {
	frame      uint16
	imageIndex uint16
	x, y       int16
	opacity    uint16
}

func NewCel(frame, imageIndex uint16, x, y int16, opacity uint16) *Cel {
	return &Cel{frame: frame, imageIndex: imageIndex, x: x, y: y, opacity: opacity}
}

func (c *Cel) Frame() uint16      { return c.frame }
func (c *Cel) ImageIndex() uint16 { return c.imageIndex }
func (c *Cel) X() int16           { return c.x }
func (c *Cel) Y() int16           { return c.y }
func (c *Cel) Opacity() uint16    { return c.opacity }
