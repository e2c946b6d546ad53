package textbox

// Cursor tracks a single location inside a Buffer it does not own. Every
// query is read-only with respect to the buffer; a nil buffer yields the
// safe fallbacks (MinPos, MaxPos or the unchanged location).
type Cursor struct {
	buf *Buffer
	loc Location
}

func NewCursor(buf *Buffer) *Cursor {
	return &Cursor{buf: buf}
}

func (c *Cursor) Current() Location {
	return c.loc
}

// MoveTo updates the location if to is valid and differs from the current
// one. It reports whether the cursor moved.
func (c *Cursor) MoveTo(to Location) bool {
	if !c.IsValidPos(to) {
		return false
	}
	if c.loc == to {
		return false
	}
	c.loc = to
	return true
}

// IsValidPos reports whether pos lies within [MinPos, MaxPos] and addresses
// an existing row and column.
func (c *Cursor) IsValidPos(pos Location) bool {
	if c.buf == nil {
		return false
	}
	return pos.LessEq(c.MaxPos()) && c.buf.IsValid(pos)
}

// Revalidate clamps the held location after the buffer changed underneath.
func (c *Cursor) Revalidate() {
	if c.buf == nil {
		c.loc = Location{}
		return
	}
	c.loc = c.buf.Clamp(c.loc)
}

func (c *Cursor) MinPos() Location {
	return Location{}
}

func (c *Cursor) MaxPos() Location {
	if c.buf == nil {
		return c.MinPos()
	}
	return c.buf.MaxPos()
}

func (c *Cursor) Prev() Location {
	return c.PrevFrom(c.loc)
}

// PrevFrom returns the location one column left of pos, wrapping to the end
// of the previous line at column 0.
func (c *Cursor) PrevFrom(pos Location) Location {
	if c.buf == nil || !c.IsValidPos(pos) {
		return c.MinPos()
	}
	if pos == c.MinPos() {
		return pos
	}
	if pos.Col == 0 {
		n, ok := c.buf.LineLen(pos.Row - 1)
		if !ok {
			return c.MinPos()
		}
		return Location{Row: pos.Row - 1, Col: n}
	}
	return Location{Row: pos.Row, Col: pos.Col - 1}
}

func (c *Cursor) Next() Location {
	return c.NextFrom(c.loc)
}

// NextFrom returns the location one column right of pos, wrapping to the
// start of the next line at the end of a line.
func (c *Cursor) NextFrom(pos Location) Location {
	if c.buf == nil || !c.IsValidPos(pos) {
		return c.MaxPos()
	}
	if pos == c.MaxPos() {
		return pos
	}
	n, ok := c.buf.LineLen(pos.Row)
	if !ok {
		return c.MaxPos()
	}
	if pos.Col == n {
		if _, ok := c.buf.LineLen(pos.Row + 1); !ok {
			return c.MaxPos()
		}
		return Location{Row: pos.Row + 1, Col: 0}
	}
	return Location{Row: pos.Row, Col: pos.Col + 1}
}

func (c *Cursor) Above() Location {
	if c.buf == nil {
		return c.MinPos()
	}
	if c.OnFirstLine() {
		return c.loc
	}
	n, ok := c.buf.LineLen(c.loc.Row - 1)
	if !ok {
		return c.loc
	}
	return Location{Row: c.loc.Row - 1, Col: min(c.loc.Col, n)}
}

func (c *Cursor) Below() Location {
	if c.buf == nil {
		return c.MinPos()
	}
	if c.OnLastLine() {
		return c.loc
	}
	n, ok := c.buf.LineLen(c.loc.Row + 1)
	if !ok {
		return c.loc
	}
	return Location{Row: c.loc.Row + 1, Col: min(c.loc.Col, n)}
}

func (c *Cursor) StartLinePos() Location {
	if c.buf == nil {
		return c.MinPos()
	}
	return Location{Row: c.loc.Row}
}

func (c *Cursor) EndLinePos() Location {
	if c.buf == nil {
		return c.MinPos()
	}
	n, ok := c.buf.LineLen(c.loc.Row)
	if !ok {
		return c.MinPos()
	}
	return Location{Row: c.loc.Row, Col: n}
}

func (c *Cursor) OnFirstLine() bool {
	return c.loc.Row == 0
}

func (c *Cursor) OnLastLine() bool {
	return c.loc.Row == c.MaxPos().Row
}

func (c *Cursor) OnStartLine() bool {
	return c.loc.Col == 0
}

func (c *Cursor) OnEndLine() bool {
	return c.loc.Col == c.EndLinePos().Col
}

func (c *Cursor) OnFirstPos() bool {
	return c.OnFirstLine() && c.OnStartLine()
}

func (c *Cursor) OnLastPos() bool {
	return c.OnLastLine() && c.OnEndLine()
}
