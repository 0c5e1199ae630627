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
package ardump

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// Header is one archive member header. The Raw fields hold the header text exactly as stored;
// the remaining fields are decoded from them.
type Header struct {
	// Offset is the position of the header within the archive.
	Offset int64

	ModTime time.Time
	Uid     int
	Gid     int
	Mode    int64

	// Size is the size of the member's data section, which includes a BSD extended name if
	// the member has one.
	Size int64

	RawName []byte
	RawDate []byte
	RawUid  []byte
	RawGid  []byte
	RawMode []byte
	RawSize []byte
	RawFmag []byte
}

// TotalSize returns the number of bytes occupied by the member, header included.
func (h *Header) TotalSize() int64 {
	return h.Size + HEADER_BYTE_SIZE
}

// ReadHeader reads and validates the member header at off.
func ReadHeader(c *Cursor, off int64) (*Header, error) {
	b, err := c.ReadAt(off, HEADER_BYTE_SIZE)
	if err != nil {
		return nil, err
	}

	s := slicer(b)
	h := &Header{Offset: off}
	h.RawName = s.next(nameWidth)
	h.RawDate = s.next(dateWidth)
	h.RawUid = s.next(uidWidth)
	h.RawGid = s.next(gidWidth)
	h.RawMode = s.next(modeWidth)
	h.RawSize = s.next(sizeWidth)
	h.RawFmag = s.next(fmagWidth)

	if string(h.RawFmag) != HEADER_TERMINATOR {
		return nil, fmt.Errorf("%w: unexpected ar_fmag %q", ErrMalformedHeader, h.RawFmag)
	}

	date, err := signed("ar_date", h.RawDate, 10)
	if err != nil {
		return nil, err
	}
	uid, err := numeric("ar_uid", h.RawUid, 10)
	if err != nil {
		return nil, err
	}
	gid, err := numeric("ar_gid", h.RawGid, 10)
	if err != nil {
		return nil, err
	}
	if h.Mode, err = numeric("ar_mode", h.RawMode, 8); err != nil {
		return nil, err
	}
	if h.Size, err = numeric("ar_size", h.RawSize, 10); err != nil {
		return nil, err
	}
	h.ModTime = time.Unix(date, 0)
	h.Uid = int(uid)
	h.Gid = int(gid)

	return h, nil
}

// signed decodes a space-padded number. A field that is entirely blank decodes as 0.
func signed(field string, b []byte, base int) (int64, error) {
	t := bytes.TrimRight(b, " \x00")
	if len(t) == 0 {
		return 0, nil
	}
	n, err := strconv.ParseInt(string(t), base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrMalformedHeader, field, b)
	}
	return n, nil
}

// numeric is like signed but rejects negative values. Modification times before the epoch are
// legitimate; sizes, ids and modes are not.
func numeric(field string, b []byte, base int) (int64, error) {
	n, err := signed(field, b, base)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative %s %q", ErrMalformedHeader, field, b)
	}
	return n, nil
}
