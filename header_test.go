/*
Copyright (c) 2013 Blake Smith <blakesmith0@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package ardump_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ar "github.com/please-build/ardump"
	"github.com/please-build/ardump/internal/artest"
)

func helloArchive() *artest.Archive {
	return artest.NewBuilder(false).Add("hello.txt", []byte("Hello world!\n")).Build()
}

func TestReadHeader(t *testing.T) {
	a := helloArchive()
	c := ar.NewCursor(a.Data)

	header, err := ar.ReadHeader(c, a.Offsets["hello.txt"])
	require.NoError(t, err)

	assert.Equal(t, int64(8), header.Offset)
	assert.Equal(t, time.Unix(1361157466, 0), header.ModTime)
	assert.Equal(t, 501, header.Uid)
	assert.Equal(t, 20, header.Gid)
	assert.Equal(t, int64(0100644), header.Mode)
	assert.Equal(t, int64(13), header.Size)
	assert.Equal(t, int64(73), header.TotalSize())

	assert.Equal(t, "hello.txt       ", string(header.RawName))
	assert.Equal(t, "1361157466  ", string(header.RawDate))
	assert.Equal(t, "501   ", string(header.RawUid))
	assert.Equal(t, "20    ", string(header.RawGid))
	assert.Equal(t, "100644  ", string(header.RawMode))
	assert.Equal(t, "13        ", string(header.RawSize))
	assert.Equal(t, "`\n", string(header.RawFmag))
}

func TestReadHeaderMalformed(t *testing.T) {
	for _, tc := range []struct {
		Description string
		At          int
		Text        string
	}{
		{"bad terminator", 58, "`x"},
		{"non-numeric size", 48, "1x        "},
		{"non-numeric date", 16, "yesterday   "},
		{"non-octal mode", 40, "100698  "},
		{"negative uid", 28, "-1    "},
	} {
		t.Run(tc.Description, func(t *testing.T) {
			a := helloArchive()
			copy(a.Data[a.Offsets["hello.txt"]+int64(tc.At):], tc.Text)

			_, err := ar.ReadHeader(ar.NewCursor(a.Data), a.Offsets["hello.txt"])
			assert.ErrorIs(t, err, ar.ErrMalformedHeader)
		})
	}
}

func TestReadHeaderBlankFields(t *testing.T) {
	a := helloArchive()
	off := a.Offsets["hello.txt"]
	copy(a.Data[off+16:], "                                ")

	header, err := ar.ReadHeader(ar.NewCursor(a.Data), off)
	require.NoError(t, err)
	assert.Equal(t, time.Unix(0, 0), header.ModTime)
	assert.Zero(t, header.Uid)
	assert.Zero(t, header.Gid)
	assert.Zero(t, header.Mode)
	assert.Equal(t, int64(13), header.Size)
}

func TestReadHeaderPreEpochDate(t *testing.T) {
	a := artest.NewBuilder(false).
		AddHeader(artest.Header{Name: "old.o", ModTime: time.Unix(-86400, 0)}, []byte("old")).
		Build()

	header, err := ar.ReadHeader(ar.NewCursor(a.Data), a.Offsets["old.o"])
	require.NoError(t, err)
	assert.Equal(t, "-86400      ", string(header.RawDate))
	assert.Equal(t, time.Unix(-86400, 0), header.ModTime)
}

func TestReadHeaderTruncated(t *testing.T) {
	a := helloArchive()
	_, err := ar.ReadHeader(ar.NewCursor(a.Data[:50]), a.Offsets["hello.txt"])
	assert.ErrorIs(t, err, ar.ErrOutOfBounds)
}
