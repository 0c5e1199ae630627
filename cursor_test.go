package ardump

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorReadAt(t *testing.T) {
	c := NewCursor([]byte("0123456789"))

	b, err := c.ReadAt(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("234"), b)

	b, err = c.ReadAt(10, 0)
	require.NoError(t, err)
	assert.Empty(t, b)

	for _, tc := range []struct {
		Description string
		Off, N      int64
	}{
		{"past end", 8, 3},
		{"negative offset", -1, 2},
		{"negative length", 2, -1},
		{"offset beyond end", 11, 0},
		{"overflowing length", 1, math.MaxInt64},
	} {
		t.Run(tc.Description, func(t *testing.T) {
			_, err := c.ReadAt(tc.Off, tc.N)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			assert.True(t, errdefs.IsOutOfRange(err))
			var bounds *ErrBounds
			require.ErrorAs(t, err, &bounds)
			assert.Equal(t, int64(10), bounds.Len)
		})
	}
}

func TestCursorUint32(t *testing.T) {
	b := binary.NativeEndian.AppendUint32([]byte{0xff}, 0x12345678)
	c := NewCursor(b)

	v, err := c.Uint32(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	_, err = c.Uint32(2)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCursorSlice(t *testing.T) {
	c := NewCursor([]byte("headerPAYLOADtrailer"))
	sub, err := c.Slice(6, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), sub.Len())

	b, err := sub.ReadAt(0, 7)
	require.NoError(t, err)
	assert.Equal(t, []byte("PAYLOAD"), b)

	_, err = sub.ReadAt(5, 3)
	assert.ErrorIs(t, err, ErrOutOfBounds, "reads are confined to the slice")
}

func TestCursorCString(t *testing.T) {
	c := NewCursor([]byte("foo\x00bar\x00baz"))

	s, err := c.CString(0, c.Len())
	require.NoError(t, err)
	assert.Equal(t, []byte("foo"), s)

	s, err = c.CString(4, c.Len())
	require.NoError(t, err)
	assert.Equal(t, []byte("bar"), s)

	s, err = c.CString(3, c.Len())
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = c.CString(8, c.Len())
	assert.ErrorIs(t, err, ErrOutOfBounds, "unterminated")

	_, err = c.CString(4, 6)
	assert.ErrorIs(t, err, ErrOutOfBounds, "terminator beyond end")

	_, err = c.CString(20, c.Len())
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestNumeric(t *testing.T) {
	n, err := numeric("ar_size", []byte("1234      "), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), n)

	n, err = numeric("ar_mode", []byte("100644  "), 8)
	require.NoError(t, err)
	assert.Equal(t, int64(0100644), n)

	n, err = numeric("ar_uid", []byte("      "), 10)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = signed("ar_date", []byte("-86400      "), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(-86400), n)

	_, err = numeric("ar_date", []byte("-86400      "), 10)
	assert.ErrorIs(t, err, ErrMalformedHeader)

	for _, b := range []string{"12a       ", "-1        ", "9         "} {
		_, err := numeric("ar_mode", []byte(b), 8)
		assert.ErrorIs(t, err, ErrMalformedHeader, b)
	}
}
