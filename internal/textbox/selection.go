package textbox

// Selection is an optional anchor. Combined with the cursor location it
// describes the half-open range [min(anchor, cursor), max(anchor, cursor)).
type Selection struct {
	anchor Location
}

func NewSelection() Selection {
	return Selection{anchor: NPos()}
}

func (s *Selection) Start(anchor Location) {
	s.anchor = anchor
}

func (s *Selection) Stop() {
	s.anchor = NPos()
}

func (s Selection) Active() bool {
	return !s.anchor.IsNPos()
}

// Range normalizes the selection against cursor. The anchor is clamped into
// buf first since edits may have shrunk the document since it was captured.
func (s Selection) Range(cursor Location, buf *Buffer) (Location, Location, bool) {
	if !s.Active() || buf == nil {
		return Location{}, Location{}, false
	}
	anchor := buf.Clamp(s.anchor)
	cursor = buf.Clamp(cursor)
	return MinLocation(anchor, cursor), MaxLocation(anchor, cursor), true
}
