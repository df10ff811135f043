package input

const (
	// DigitCount is the number of editable decimal digits.
	DigitCount = 4
	// DebounceMs is the minimum spacing between accepted edits.
	DebounceMs = 200
)

// Editor is the digit editing state machine: four decimal digits, a cursor,
// and the time of the last accepted edit.
//
// Axis A moves the cursor, axis B changes the digit under the cursor. A poll
// where both axes are deflected applies both edits, cursor first. The gate
// only reopens with time; holding the stick repeats the edit every
// DebounceMs.
type Editor struct {
	digits   [DigitCount]uint8
	cursor   int
	lastEdit uint64
}

// NewEditor returns an editor showing 0000 with the cursor on the first digit.
func NewEditor() *Editor {
	return &Editor{}
}

// Update applies one poll. It reports whether a cursor or digit edit was accepted.
func (e *Editor) Update(a, b Direction, now uint64) bool {
	// An edit exactly DebounceMs after the last one is still rejected;
	// the gate opens at DebounceMs+1.
	if now < e.lastEdit || now-e.lastEdit <= DebounceMs {
		return false
	}

	edited := false
	switch a {
	case Negative:
		e.cursor = (e.cursor + DigitCount - 1) % DigitCount
		edited = true
	case Positive:
		e.cursor = (e.cursor + 1) % DigitCount
		edited = true
	}

	switch b {
	case Negative:
		e.digits[e.cursor] = (e.digits[e.cursor] + 1) % 10
		edited = true
	case Positive:
		e.digits[e.cursor] = (e.digits[e.cursor] + 9) % 10
		edited = true
	}

	if edited {
		e.lastEdit = now
	}
	return edited
}

// Digits returns a copy of the digits, most significant first.
func (e *Editor) Digits() [DigitCount]uint8 { return e.digits }

// Cursor returns the selected digit index.
func (e *Editor) Cursor() int { return e.cursor }

// LastEdit returns the time of the last accepted edit.
func (e *Editor) LastEdit() uint64 { return e.lastEdit }

// Value composes the digits into one number.
func (e *Editor) Value() int { return Compose(e.digits) }

// Compose returns d[0]*1000 + d[1]*100 + d[2]*10 + d[3].
func Compose(d [DigitCount]uint8) int {
	v := 0
	for _, x := range d {
		v = v*10 + int(x)
	}
	return v
}
