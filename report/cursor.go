package report

// pageCursor tracks the vertical write position across manual page
// breaks. Automatic page breaking is off; every block decides for itself
// whether it still fits.
type pageCursor struct {
	y       float64
	pages   int
	newPage func()
}

func newCursor(newPage func()) *pageCursor {
	return &pageCursor{pages: 1, newPage: newPage}
}

// place reserves a block of the given height and returns its top edge.
func (c *pageCursor) place(h float64) float64 {
	y := c.y
	c.y += h
	return y
}

// breakIfPast starts a new page when the cursor has moved beyond the
// threshold. Reports whether a break happened.
func (c *pageCursor) breakIfPast(threshold float64) bool {
	if c.y > threshold {
		c.pageBreak()
		return true
	}
	return false
}

func (c *pageCursor) pageBreak() {
	c.pages++
	c.y = 20
	if c.newPage != nil {
		c.newPage()
	}
}
