package pbr

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// Buffer holds vertex data in a fixed-size CPU region and mirrors it into
// a driver buffer object. Writes mark the buffer dirty; the next Bind
// uploads it.
//
// The owner calls Release when done. Holders that store the buffer call
// AddRef first and Release when they let go of it.
type Buffer struct {
	refCount

	dev    Device
	handle Handle
	usage  Enum
	data   []byte
	pos    int
	limit  int
	dirty  bool
}

// BufferOption configures a Buffer.
type BufferOption func(*Buffer)

// WithUsage sets the usage hint passed to the driver on upload. It should
// be one of StaticDraw, DynamicDraw or StreamDraw. The default is
// StaticDraw.
func WithUsage(usage Enum) BufferOption {
	return func(b *Buffer) {
		b.usage = usage
	}
}

// NewBuffer allocates a buffer object with size bytes of CPU storage.
func NewBuffer(dev Device, size int, opts ...BufferOption) *Buffer {
	b := &Buffer{
		dev:    dev,
		handle: dev.GenBuffer(),
		usage:  StaticDraw,
		data:   make([]byte, size),
		limit:  size,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Handle returns the driver handle, or 0 after the buffer was freed.
func (b *Buffer) Handle() Handle {
	return b.handle
}

// Cap returns the fixed capacity in bytes.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Len returns the current write position in bytes.
func (b *Buffer) Len() int {
	return b.pos
}

// PutFloat writes value at the current position and advances it.
func (b *Buffer) PutFloat(value float32) error {
	if b.limit-b.pos < 4 {
		return errors.Wrapf(ErrBufferOverflow, "put float at %d of %d bytes", b.pos, b.limit)
	}
	b.dirty = true
	binary.LittleEndian.PutUint32(b.data[b.pos:], math.Float32bits(value))
	b.pos += 4
	return nil
}

// Flip ends a write pass: the written bytes become the upload range and
// the position goes back to the start.
func (b *Buffer) Flip() {
	b.dirty = true
	b.limit = b.pos
	b.pos = 0
}

// Bind binds the buffer to target and uploads the pending range if the
// contents changed since the last upload.
func (b *Buffer) Bind(target Enum) {
	b.dev.BindBuffer(target, b.handle)

	if b.dirty {
		b.dirty = false
		b.dev.BufferData(target, b.data[b.pos:b.limit], b.usage)
	}
}

// Release drops a reference and frees the buffer with the last one.
func (b *Buffer) Release() {
	if b.release("buffer") {
		b.dev.DeleteBuffer(b.handle)
		b.handle = 0
		b.data = nil
		b.pos, b.limit = 0, 0
	}
}
