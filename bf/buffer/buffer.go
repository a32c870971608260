// Package buffer provides a fixed-size block of signed bytes with indexed
// read/write access. It is the storage primitive shared by the program
// loader (source and embedded input) and the interpreter (input cursor).
package buffer

// Buffer owns a fixed-size block of signed 8-bit values. The size is fixed
// at construction and never changes; callers that need a different size
// construct a new Buffer.
type Buffer struct {
	data []int8
}

// New allocates a Buffer of the given size, zero-initialized. A size of 0
// is valid and represents "no data".
func New(size uint64) *Buffer {
	return &Buffer{data: make([]int8, size)}
}

// Size returns the size passed at construction.
func (b *Buffer) Size() uint64 {
	return uint64(len(b.data))
}

// Get returns the byte at index i. Callers must not pass i >= Size(); an
// out-of-range index returns 0 rather than panicking, since correct
// callers never do this.
func (b *Buffer) Get(i uint64) int8 {
	if i >= uint64(len(b.data)) {
		return 0
	}
	return b.data[i]
}

// Set writes v at index i. Out-of-range indices are silently ignored, by
// the same contract as Get.
func (b *Buffer) Set(i uint64, v int8) {
	if i >= uint64(len(b.data)) {
		return
	}
	b.data[i] = v
}

// SetContents copies src into the buffer starting at offset 0. It panics
// if len(src) exceeds Size(): unlike Get/Set, an oversized copy is always
// a caller bug rather than something a correct program can encounter in
// the ordinary course of operation, so it is not silently tolerated.
// Bytes beyond len(src) are left as they were.
func (b *Buffer) SetContents(src []int8) {
	if uint64(len(src)) > b.Size() {
		panic("buffer: SetContents source longer than buffer size")
	}
	copy(b.data, src)
}
