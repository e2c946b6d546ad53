package textbox

import (
	"fmt"
	"math"

	"go.uber.org/zap/zapcore"
)

// Location addresses a character slot in the buffer by (row, col) in runes.
// Row and Col are 0-based. Col may equal the line length (end of line).
type Location struct {
	Row int
	Col int
}

func Loc(row, col int) Location {
	return Location{Row: row, Col: col}
}

// NPos is the "no location" sentinel. It orders after every valid address
// and is never accepted by the buffer.
func NPos() Location {
	return Location{Row: math.MaxInt, Col: math.MaxInt}
}

func (l Location) IsNPos() bool {
	return l == NPos()
}

// Add adds two locations component-wise.
func (l Location) Add(other Location) Location {
	if l.IsNPos() || other.IsNPos() {
		return NPos()
	}
	return Location{Row: l.Row + other.Row, Col: l.Col + other.Col}
}

// Compare orders locations in reading order: by row, then by column.
func (l Location) Compare(other Location) int {
	if l.Row < other.Row {
		return -1
	}
	if l.Row > other.Row {
		return 1
	}
	if l.Col < other.Col {
		return -1
	}
	if l.Col > other.Col {
		return 1
	}
	return 0
}

func (l Location) Less(other Location) bool {
	return l.Compare(other) < 0
}

func (l Location) LessEq(other Location) bool {
	return l.Compare(other) <= 0
}

func MinLocation(a, b Location) Location {
	if b.Less(a) {
		return b
	}
	return a
}

func MaxLocation(a, b Location) Location {
	if a.Less(b) {
		return b
	}
	return a
}

func (l Location) String() string {
	if l.IsNPos() {
		return "(npos)"
	}
	return fmt.Sprintf("(%d,%d)", l.Row, l.Col)
}

func (l Location) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if l.IsNPos() {
		enc.AddBool("npos", true)
		return nil
	}
	enc.AddInt("row", l.Row)
	enc.AddInt("col", l.Col)
	return nil
}
