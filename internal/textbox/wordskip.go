package textbox

import "unicode"

// CharClass partitions runes for word skipping.
type CharClass int

const (
	ClassSpace CharClass = iota
	ClassAlnum
	ClassPunct
)

func (c CharClass) String() string {
	switch c {
	case ClassSpace:
		return "space"
	case ClassAlnum:
		return "alnum"
	default:
		return "punct"
	}
}

func Classify(r rune) CharClass {
	switch {
	case unicode.IsSpace(r):
		return ClassSpace
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return ClassAlnum
	default:
		return ClassPunct
	}
}

// SkipLeft returns where a word skip to the left of the cursor lands: just
// right of the nearest rune whose class differs from the rune left of the
// cursor, or the line start. At column 0 it steps over the line break only.
func SkipLeft(c *Cursor) (Location, bool) {
	if c == nil {
		return Location{}, false
	}
	if c.buf == nil || c.OnFirstPos() {
		return c.Current(), false
	}
	if c.OnStartLine() {
		return c.Prev(), true
	}
	at := c.Current()
	adjacent, ok := c.buf.CharAt(Location{Row: at.Row, Col: at.Col - 1})
	if !ok {
		return c.StartLinePos(), true
	}
	class := Classify(adjacent)
	col := at.Col - 1
	for col > 0 {
		r, _ := c.buf.CharAt(Location{Row: at.Row, Col: col - 1})
		if Classify(r) != class {
			break
		}
		col--
	}
	return Location{Row: at.Row, Col: col}, true
}

// SkipRight mirrors SkipLeft: it lands left of the nearest rune whose class
// differs from the rune under the cursor, or at the line end. At the end of
// a line it steps over the line break only.
func SkipRight(c *Cursor) (Location, bool) {
	if c == nil {
		return Location{}, false
	}
	if c.buf == nil || c.OnLastPos() {
		return c.Current(), false
	}
	if c.OnEndLine() {
		return c.Next(), true
	}
	at := c.Current()
	adjacent, ok := c.buf.CharAt(at)
	if !ok {
		return c.EndLinePos(), true
	}
	class := Classify(adjacent)
	end := c.EndLinePos().Col
	col := at.Col + 1
	for col < end {
		r, _ := c.buf.CharAt(Location{Row: at.Row, Col: col})
		if Classify(r) != class {
			break
		}
		col++
	}
	return Location{Row: at.Row, Col: col}, true
}
