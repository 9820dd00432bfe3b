package pool

import (
	"errors"
	"io"
	"sync"
)

// Default sizes of the element buffer pool. A buffer grows past the default
// while an element is assembled; buffers larger than the threshold are not
// returned to the pool.
const (
	ElementBufferDefaultSize  = 1024 * 64       // 64KiB
	ElementBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes() returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<256KB), grow by ElementBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ElementBufferDefaultSize
	if cap(bb.B) > 4*ElementBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// AppendReadAt reads up to n bytes from r at off and appends them to the buffer.
//
// It returns the number of bytes appended. A short read at end of input
// returns the bytes read together with io.EOF; other read errors are
// returned as is and leave the buffer length unchanged.
func (bb *ByteBuffer) AppendReadAt(r io.ReaderAt, off int64, n int) (int, error) {
	start := len(bb.B)
	bb.ExtendOrGrow(n)

	read, err := r.ReadAt(bb.B[start:start+n], off)
	bb.B = bb.B[:start+read]

	if err != nil && !errors.Is(err, io.EOF) {
		bb.B = bb.B[:start]
		return 0, err
	}
	if err == nil && read < n {
		err = io.EOF
	}

	return read, err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // Optional maximum size threshold for buffers
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var elementDefaultPool = NewByteBufferPool(ElementBufferDefaultSize, ElementBufferMaxThreshold)

// GetElementBuffer retrieves a ByteBuffer from the default element pool.
func GetElementBuffer() *ByteBuffer {
	return elementDefaultPool.Get()
}

// PutElementBuffer returns a ByteBuffer to the default element pool.
func PutElementBuffer(bb *ByteBuffer) {
	elementDefaultPool.Put(bb)
}
