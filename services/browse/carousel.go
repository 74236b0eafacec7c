// Package browse holds the scroll-position model behind horizontal title
// rows. The client reports row dimensions and scroll intents; the model
// answers with the clamped offset and which edge arrows to show.
package browse

// edgeSlack absorbs sub-pixel rounding at the right edge so the arrow
// disappears when the row is visually at the end.
const edgeSlack = 10

// stepFraction of the viewport scrolled per arrow press.
const stepFraction = 0.75

// Carousel models one scrollable row. Not safe for concurrent use; callers
// hold one per row per client.
type Carousel struct {
	contentWidth  float64
	viewportWidth float64
	offset        float64
}

func NewCarousel(contentWidth, viewportWidth float64) *Carousel {
	c := &Carousel{}
	c.SetDimensions(contentWidth, viewportWidth)
	return c
}

// SetDimensions updates measured widths, re-clamping the offset when the
// row shrank under the current scroll position.
func (c *Carousel) SetDimensions(contentWidth, viewportWidth float64) {
	if contentWidth < 0 {
		contentWidth = 0
	}
	if viewportWidth < 0 {
		viewportWidth = 0
	}
	c.contentWidth = contentWidth
	c.viewportWidth = viewportWidth
	c.offset = clamp(c.offset, 0, c.maxOffset())
}

func (c *Carousel) Offset() float64 { return c.offset }

// CanScrollLeft reports whether any content is hidden past the left edge.
func (c *Carousel) CanScrollLeft() bool {
	return c.offset > 0
}

// CanScrollRight reports whether meaningfully more content remains past the
// right edge. A row that fits its viewport scrolls neither way.
func (c *Carousel) CanScrollRight() bool {
	return c.offset < c.contentWidth-c.viewportWidth-edgeSlack
}

// ScrollRight advances by three quarters of a viewport, clamped to the end.
func (c *Carousel) ScrollRight() {
	c.offset = clamp(c.offset+c.viewportWidth*stepFraction, 0, c.maxOffset())
}

// ScrollLeft backs up by three quarters of a viewport, clamped to the start.
func (c *Carousel) ScrollLeft() {
	c.offset = clamp(c.offset-c.viewportWidth*stepFraction, 0, c.maxOffset())
}

// ScrollTo jumps to an absolute offset, clamped to the valid range.
func (c *Carousel) ScrollTo(offset float64) {
	c.offset = clamp(offset, 0, c.maxOffset())
}

func (c *Carousel) maxOffset() float64 {
	if c.contentWidth <= c.viewportWidth {
		return 0
	}
	return c.contentWidth - c.viewportWidth
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
