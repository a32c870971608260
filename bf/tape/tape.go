// Package tape implements the interpreter's bidirectionally infinite
// signed-byte memory: a cursor into a conceptually unbounded array, backed
// by two arenas that grow in fixed-size chunks, plus a LIFO stack of saved
// cursor positions (bookmarks).
package tape

// ChunkSize is the reference growth increment: each arena grows by this
// many cells at a time rather than one cell at a time, matching
// spec.md §4.5's "allocating new chunks as needed" discipline even though
// the underlying representation here is a pair of Go slices rather than a
// linked list of fixed blocks (spec.md §9 endorses either representation).
const ChunkSize = 256

// Tape is a cursor into a bidirectionally infinite sequence of int8 cells,
// each implicitly zero until written. The zero value is not usable; use
// New or NewWithChunkSize.
type Tape struct {
	// right holds cells at index >= 0: right[0] is the origin cell.
	right []int8
	// left holds cells at index < 0: left[0] is index -1, left[1] is
	// index -2, and so on (reversed so growth is always an append).
	left []int8

	// cursor is the current logical index; cursor >= 0 means the active
	// cell is right[cursor], cursor < 0 means left[-cursor-1].
	cursor int64

	// highWater/lowWater are the highest/lowest logical indices ever
	// visited (i.e. ever moved onto by the cursor), used by
	// IsAtBeginning/IsAtEnd.
	highWater int64
	lowWater  int64

	chunkSize int
	bookmarks []int64
}

// New returns a fresh Tape: a single visited cell at the origin, value 0,
// simultaneously at its beginning and end.
func New() *Tape {
	return NewWithChunkSize(ChunkSize)
}

// NewWithChunkSize is like New but grows in chunks of n cells instead of
// ChunkSize. Exposed so tests can exercise chunk-boundary behavior without
// allocating megabytes of tape. n must be >= 1.
func NewWithChunkSize(n int) *Tape {
	if n < 1 {
		n = 1
	}
	t := &Tape{chunkSize: n}
	t.right = make([]int8, 1, n)
	return t
}

// growRight ensures right has at least idx+1 cells.
func (t *Tape) growRight(idx int64) {
	for int64(len(t.right)) <= idx {
		grow := int64(t.chunkSize)
		newLen := int64(len(t.right)) + grow
		if newLen <= idx {
			newLen = idx + 1
		}
		next := make([]int8, newLen)
		copy(next, t.right)
		t.right = next
	}
}

// growLeft ensures left has at least idx+1 cells (idx is the left-array
// index, i.e. logical index -(idx+1)).
func (t *Tape) growLeft(idx int64) {
	for int64(len(t.left)) <= idx {
		grow := int64(t.chunkSize)
		newLen := int64(len(t.left)) + grow
		if newLen <= idx {
			newLen = idx + 1
		}
		next := make([]int8, newLen)
		copy(next, t.left)
		t.left = next
	}
}

// cellPtr returns a pointer to the cell at the cursor's current logical
// index, growing storage if necessary.
func (t *Tape) cellPtr() *int8 {
	if t.cursor >= 0 {
		t.growRight(t.cursor)
		return &t.right[t.cursor]
	}
	idx := -t.cursor - 1
	t.growLeft(idx)
	return &t.left[idx]
}

// GetValue returns the byte at the cursor.
func (t *Tape) GetValue() int8 {
	return *t.cellPtr()
}

// SetValue writes v at the cursor.
func (t *Tape) SetValue(v int8) {
	*t.cellPtr() = v
}

func (t *Tape) updateWaterMarks() {
	if t.cursor > t.highWater {
		t.highWater = t.cursor
	}
	if t.cursor < t.lowWater {
		t.lowWater = t.cursor
	}
}

// MoveRightBy moves the cursor n cells to the right, allocating storage
// as needed.
func (t *Tape) MoveRightBy(n uint64) {
	t.cursor += int64(n)
	t.cellPtr() // force allocation of the newly visited cell
	t.updateWaterMarks()
}

// MoveLeftBy moves the cursor n cells to the left, allocating storage as
// needed.
func (t *Tape) MoveLeftBy(n uint64) {
	t.cursor -= int64(n)
	t.cellPtr()
	t.updateWaterMarks()
}

// MoveRight moves the cursor one cell to the right.
func (t *Tape) MoveRight() { t.MoveRightBy(1) }

// MoveLeft moves the cursor one cell to the left.
func (t *Tape) MoveLeft() { t.MoveLeftBy(1) }

// IncreaseBy adds n to the current cell, wrapping as a signed 8-bit value.
// n may be arbitrarily large; only n mod 256 matters.
func (t *Tape) IncreaseBy(n uint64) {
	p := t.cellPtr()
	*p = int8(uint8(*p) + uint8(n%256))
}

// DecreaseBy subtracts n from the current cell, wrapping as a signed
// 8-bit value.
func (t *Tape) DecreaseBy(n uint64) {
	p := t.cellPtr()
	*p = int8(uint8(*p) - uint8(n%256))
}

// Increase adds 1 to the current cell.
func (t *Tape) Increase() { t.IncreaseBy(1) }

// Decrease subtracts 1 from the current cell.
func (t *Tape) Decrease() { t.DecreaseBy(1) }

// Position returns the cursor's current logical index, relative to the
// origin cell (0). It is mainly useful for diagnostics: callers that only
// care about interpreting the program should prefer GetValue.
func (t *Tape) Position() int64 {
	return t.cursor
}

// IsAtBeginning reports whether the cursor is at the lowest cell ever
// visited.
func (t *Tape) IsAtBeginning() bool {
	return t.cursor == t.lowWater
}

// IsAtEnd reports whether the cursor is at the highest cell ever visited.
func (t *Tape) IsAtEnd() bool {
	return t.cursor == t.highWater
}

// PushBookmark saves the current cursor position.
func (t *Tape) PushBookmark() {
	t.bookmarks = append(t.bookmarks, t.cursor)
}

// PopBookmark restores the most recently pushed cursor position and
// removes it from the stack. It returns false (a no-op) if the stack is
// empty.
func (t *Tape) PopBookmark() bool {
	if len(t.bookmarks) == 0 {
		return false
	}
	last := len(t.bookmarks) - 1
	t.cursor = t.bookmarks[last]
	t.bookmarks = t.bookmarks[:last]
	return true
}
