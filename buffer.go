// Package membuf provides a growable, seekable in-memory byte buffer whose
// backing storage is rented from a shared allocation pool instead of being
// allocated per instance. It is intended for short-lived or frequently
// resized buffers where per-instance heap allocation churn matters.
package membuf

import (
	"fmt"
	"io"
	"runtime"

	"github.com/scigolib/membuf/internal/utils"
)

// PooledBuffer is a mutable byte buffer backed by an array rented from a
// Pool. It tracks a logical length (the extent of valid data) and a cursor
// (the current read/write position) and implements the standard io
// interfaces over that state.
//
// Growth strategy:
//   - A write that exceeds remaining capacity rents a new array sized to
//     twice the post-write cursor position, amortizing future appends.
//   - Seek relative to io.SeekEnd and Truncate grow to exactly the requested
//     size - these are explicit size requests, not incremental appends.
//
// On growth only the bytes below the cursor are carried over; bytes between
// the cursor and the logical length are not preserved across a grow.
//
// Thread-safety: Not thread-safe. A PooledBuffer is single-owner; the pool
// behind it may be shared freely across instances and goroutines.
//
// Always create a PooledBuffer with New, NewWithCapacity or NewFromBytes;
// the zero value has no pool bound and is not usable.
type PooledBuffer struct {
	pool     Pool   // Source and sink for backing arrays
	backing  []byte // Rented storage; nil until first growth or rent
	length   int    // Logical extent of valid data
	pos      int    // Cursor for Read/Write/Seek
	released bool   // Set once by Release; one-way
}

// New returns an empty buffer bound to DefaultPool. No storage is rented
// until the first write or size-setting operation.
func New() *PooledBuffer {
	b := &PooledBuffer{pool: DefaultPool}
	runtime.SetFinalizer(b, func(pb *PooledBuffer) { pb.Release() })
	return b
}

// NewWithCapacity returns an empty buffer bound to the given pool, with
// capacity bytes rented up front. The pool must be non-nil.
func NewWithCapacity(pool Pool, capacity int) (*PooledBuffer, error) {
	if pool == nil {
		return nil, fmt.Errorf("nil pool: %w", ErrInvalidArgument)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("capacity %d: %w", capacity, ErrOutOfRange)
	}

	b := &PooledBuffer{pool: pool}
	if capacity > 0 {
		b.backing = pool.Get(capacity)
	}
	runtime.SetFinalizer(b, func(pb *PooledBuffer) { pb.Release() })
	return b, nil
}

// NewFromBytes returns a buffer holding a copy of src, rented from
// DefaultPool. The buffer's length equals len(src) and the cursor is at 0,
// so the contents are immediately readable. src is not retained.
func NewFromBytes(src []byte) *PooledBuffer {
	b := New()
	if len(src) > 0 {
		b.backing = b.pool.Get(len(src))
		copy(b.backing, src)
		b.length = len(src)
	}
	return b
}

// Read copies up to len(p) bytes from the cursor into p and advances the
// cursor by the number of bytes copied. It returns io.EOF when the cursor
// is at or beyond the logical length. Short reads are normal and carry no
// error.
func (b *PooledBuffer) Read(p []byte) (int, error) {
	if b.released {
		return 0, utils.WrapError("read", ErrReleased)
	}
	if len(p) == 0 {
		return 0, nil
	}
	if b.pos >= b.length {
		return 0, io.EOF
	}

	n := copy(p, b.backing[b.pos:b.length])
	b.pos += n
	return n, nil
}

// Write copies p into the buffer at the cursor, growing the backing array
// when remaining capacity is insufficient, and advances the cursor. The
// logical length is raised to the cursor if the write moved past it. A
// zero-length write is a no-op.
func (b *PooledBuffer) Write(p []byte) (int, error) {
	if b.released {
		return 0, utils.WrapError("write", ErrReleased)
	}
	if len(p) == 0 {
		return 0, nil
	}

	end, err := utils.CheckAdd(b.pos, len(p))
	if err != nil {
		return 0, utils.WrapError("write", err)
	}
	if end > len(b.backing) {
		// Double the post-write cursor position to amortize future appends.
		target, err := utils.CheckMul(end, 2)
		if err != nil {
			return 0, utils.WrapError("write growth", err)
		}
		b.grow(target)
	}

	copy(b.backing[b.pos:], p)
	b.pos = end
	if b.pos > b.length {
		b.length = b.pos
	}
	return len(p), nil
}

// Seek sets the cursor to offset, interpreted relative to whence, and
// returns the new cursor position.
//
// The three origins are deliberately asymmetric:
//   - io.SeekStart and io.SeekCurrent are bounded by [0, Cap()]; a target
//     outside that range fails with ErrOutOfRange and never grows storage.
//   - io.SeekEnd rejects only negative targets; a target beyond current
//     capacity grows the backing array to exactly that size.
//
// A successful seek past the logical length extends the length to the new
// cursor position.
func (b *PooledBuffer) Seek(offset int64, whence int) (int64, error) {
	if b.released {
		return 0, utils.WrapError("seek", ErrReleased)
	}

	var candidate int64
	switch whence {
	case io.SeekStart:
		candidate = offset
		if candidate < 0 || candidate > int64(len(b.backing)) {
			return 0, fmt.Errorf("seek target %d outside [0, %d]: %w", candidate, len(b.backing), ErrOutOfRange)
		}
	case io.SeekCurrent:
		candidate = int64(b.pos) + offset
		if candidate < 0 || candidate > int64(len(b.backing)) {
			return 0, fmt.Errorf("seek target %d outside [0, %d]: %w", candidate, len(b.backing), ErrOutOfRange)
		}
	case io.SeekEnd:
		candidate = int64(b.length) + offset
		if candidate < 0 {
			return 0, fmt.Errorf("seek target %d before start: %w", candidate, ErrOutOfRange)
		}
		target, err := utils.ToInt(candidate)
		if err != nil {
			return 0, utils.WrapError("seek from end", err)
		}
		if target > len(b.backing) {
			b.grow(target)
		}
	default:
		return 0, fmt.Errorf("invalid seek whence %d: %w", whence, ErrInvalidArgument)
	}

	b.pos = int(candidate)
	if b.pos > b.length {
		b.length = b.pos
	}
	return candidate, nil
}

// Truncate sets the logical length to n, growing the backing array to
// exactly n bytes when n exceeds current capacity. If the cursor is beyond
// the new length it is clamped to the length. Unlike bytes.Buffer.Truncate,
// n may exceed the current length.
func (b *PooledBuffer) Truncate(n int64) error {
	if b.released {
		return utils.WrapError("truncate", ErrReleased)
	}
	if n < 0 {
		return fmt.Errorf("truncate to %d: %w", n, ErrOutOfRange)
	}

	target, err := utils.ToInt(n)
	if err != nil {
		return utils.WrapError("truncate", err)
	}
	if target > len(b.backing) {
		b.grow(target)
	}

	b.length = target
	if b.pos > b.length {
		b.pos = b.length
	}
	return nil
}

// WriteTo writes the first Len() bytes of the buffer to w. The cursor is
// not consulted and not moved; WriteTo always emits the full logical
// contents. It returns the number of bytes written and any error from w.
func (b *PooledBuffer) WriteTo(w io.Writer) (int64, error) {
	if b.released {
		return 0, utils.WrapError("write to sink", ErrReleased)
	}
	if w == nil {
		return 0, fmt.Errorf("nil sink: %w", ErrInvalidArgument)
	}
	if b.length == 0 {
		return 0, nil
	}

	n, err := w.Write(b.backing[:b.length])
	if err != nil {
		return int64(n), utils.WrapError("sink write failed", err)
	}
	if n < b.length {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

// ReadByte reads and returns the byte at the cursor, advancing the cursor
// by one. It returns io.EOF at the end of the logical contents.
func (b *PooledBuffer) ReadByte() (byte, error) {
	if b.released {
		return 0, utils.WrapError("read byte", ErrReleased)
	}
	if b.pos >= b.length {
		return 0, io.EOF
	}

	c := b.backing[b.pos]
	b.pos++
	return c, nil
}

// WriteByte writes a single byte at the cursor, growing if needed.
func (b *PooledBuffer) WriteByte(c byte) error {
	_, err := b.Write([]byte{c})
	return err
}

// Bytes returns the buffer's logical contents [0, Len()) without copying.
//
// The returned slice aliases the backing array: it is valid only until the
// next call that mutates or releases the buffer (Write, Seek, Truncate,
// Release, Close). Callers must not retain it past that point. Returns nil
// after release.
func (b *PooledBuffer) Bytes() []byte {
	if b.released {
		return nil
	}
	return b.backing[:b.length]
}

// String returns a copy of the buffer's logical contents as a string.
// Unlike Bytes, the result does not alias the backing array.
func (b *PooledBuffer) String() string {
	return string(b.Bytes())
}

// Len returns the logical length of the buffer.
func (b *PooledBuffer) Len() int {
	return b.length
}

// Cap returns the size of the rented backing array. It is 0 when no array
// has been rented yet.
func (b *PooledBuffer) Cap() int {
	return len(b.backing)
}

// Position returns the current cursor position.
func (b *PooledBuffer) Position() int64 {
	return int64(b.pos)
}

// Release returns the backing array to the pool and marks the buffer
// released. Every subsequent operation except Release/Close fails with
// ErrReleased. Release is idempotent: a second call is a no-op and never
// returns the same array to the pool twice. A finalizer performs the same
// release as a safety net, but callers should release deterministically.
func (b *PooledBuffer) Release() {
	if b.released {
		return
	}
	if b.backing != nil {
		b.pool.Put(b.backing)
		b.backing = nil
	}
	b.length = 0
	b.pos = 0
	b.released = true
	runtime.SetFinalizer(b, nil)
}

// Close releases the buffer. It implements io.Closer and never returns an
// error; closing an already-closed buffer is a no-op.
func (b *PooledBuffer) Close() error {
	b.Release()
	return nil
}

// grow rents a newCap-sized array, carries over the bytes below the cursor
// and returns the old array to the pool. The copy happens before the old
// array is released, so no data below the cursor is ever lost.
func (b *PooledBuffer) grow(newCap int) {
	fresh := b.pool.Get(newCap)
	if b.backing != nil {
		copy(fresh, b.backing[:b.pos])
		b.pool.Put(b.backing)
	}
	b.backing = fresh
}

// Ensure PooledBuffer implements the standard io interfaces.
var (
	_ io.Reader     = (*PooledBuffer)(nil)
	_ io.Writer     = (*PooledBuffer)(nil)
	_ io.Seeker     = (*PooledBuffer)(nil)
	_ io.WriterTo   = (*PooledBuffer)(nil)
	_ io.ByteReader = (*PooledBuffer)(nil)
	_ io.ByteWriter = (*PooledBuffer)(nil)
	_ io.Closer     = (*PooledBuffer)(nil)
)
