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
)

// Name is a resolved member name.
type Name struct {
	// Raw holds the name bytes as stored: the name field up to its first NUL for a direct name,
	// or exactly the declared number of bytes following the header for an extended name.
	Raw []byte

	// Extended is true if the name was stored after the header using the "#1/" convention.
	Extended bool
}

// String returns the printable name. Extended names are commonly NUL padded and direct names
// space padded; neither padding is part of the name.
func (n Name) String() string {
	b := n.Raw
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if !n.Extended {
		b = bytes.TrimRight(b, " ")
	}
	return string(b)
}

// PayloadSkip returns the number of leading data section bytes taken up by the name.
func (n Name) PayloadSkip() int64 {
	if n.Extended {
		return int64(len(n.Raw))
	}
	return 0
}

// IsSymbolIndex reports whether n names the BSD symbol index member.
func (n Name) IsSymbolIndex() bool {
	s := n.String()
	return s == SYMDEF || s == SYMDEF_SORTED
}

// ResolveName determines the name of the member described by h. A name field consisting of "#1/"
// followed by an integer indicates that the name is stored immediately after the header; the
// integer is its length.
func ResolveName(c *Cursor, h *Header) (Name, error) {
	if !bytes.HasPrefix(h.RawName, []byte(BSD_NAME_PREFIX)) {
		raw := h.RawName
		if i := bytes.IndexByte(raw, 0); i >= 0 {
			raw = raw[:i]
		}
		return Name{Raw: raw}, nil
	}

	digits := bytes.TrimRight(h.RawName[len(BSD_NAME_PREFIX):], " ")
	length, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil || length < 0 {
		return Name{}, fmt.Errorf("%w: invalid long file name length %q", ErrMalformedHeader, h.RawName)
	}
	b, err := c.ReadAt(h.Offset+HEADER_BYTE_SIZE, length)
	if err != nil {
		return Name{}, fmt.Errorf("long file name: %w", err)
	}
	if length > h.Size {
		return Name{}, fmt.Errorf("%w: long file name length %d exceeds member size %d", ErrMalformedHeader, length, h.Size)
	}
	return Name{Raw: b, Extended: true}, nil
}

// ResolveNameAt reads the member header at off and resolves its name. It does not depend on any
// scan state, so it may be used to follow references from anywhere in the archive.
func ResolveNameAt(c *Cursor, off int64) (Name, error) {
	h, err := ReadHeader(c, off)
	if err != nil {
		return Name{}, err
	}
	return ResolveName(c, h)
}
