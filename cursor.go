package ardump

import (
	"bytes"
	"encoding/binary"
)

// Cursor is a bounds-checked, read-only view of an archive held in memory. Every access names an
// absolute offset; a Cursor has no position of its own, so it can be shared freely between the
// member walk and symbol index lookups.
//
// Binary integers are read in host byte order. No byte swapping is performed: the archive is
// expected to have been produced on a machine with the same endianness.
type Cursor struct {
	b []byte
}

// NewCursor returns a Cursor over b. The Cursor never modifies or retains more than b itself.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int64 {
	return int64(len(c.b))
}

func (c *Cursor) check(off, n, end int64) error {
	if off < 0 || n < 0 || off > end || n > end-off {
		return &ErrBounds{Off: off, N: n, Len: end}
	}
	return nil
}

// ReadAt returns the n bytes starting at off. The returned slice aliases the buffer.
func (c *Cursor) ReadAt(off, n int64) ([]byte, error) {
	if err := c.check(off, n, c.Len()); err != nil {
		return nil, err
	}
	return c.b[off : off+n : off+n], nil
}

// Slice returns a Cursor over the n bytes starting at off. Offsets passed to the new Cursor are
// relative to off.
func (c *Cursor) Slice(off, n int64) (*Cursor, error) {
	b, err := c.ReadAt(off, n)
	if err != nil {
		return nil, err
	}
	return &Cursor{b: b}, nil
}

// Uint32 reads a host-order 32-bit integer at off.
func (c *Cursor) Uint32(off int64) (uint32, error) {
	b, err := c.ReadAt(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(b), nil
}

// CString returns the NUL-terminated string starting at off, without its terminator. The string
// and its terminator must lie before end.
func (c *Cursor) CString(off, end int64) ([]byte, error) {
	if end > c.Len() {
		end = c.Len()
	}
	if err := c.check(off, 0, end); err != nil {
		return nil, err
	}
	i := bytes.IndexByte(c.b[off:end], 0)
	if i < 0 {
		return nil, &ErrBounds{Off: off, N: end - off + 1, Len: end}
	}
	return c.b[off : off+int64(i) : off+int64(i)], nil
}
