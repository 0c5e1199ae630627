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

// Package artest produces BSD ar archives for tests.
package artest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	ar "github.com/please-build/ardump"
)

var (
	ErrWriteTooLong = errors.New("artest: write too long")
)

// Header describes a member to be written.
type Header struct {
	Name    string
	ModTime time.Time
	Uid     int
	Gid     int
	Mode    int64
	Size    int64

	// Extended stores the name after the header even if it would fit in the name field.
	Extended bool
}

// Writer provides sequential writing of a BSD ar archive.
// Call WriteHeader to begin writing a new file, then call Write to supply the file's data.
type Writer struct {
	// w is the underlying io.Writer to which the archive file is written.
	w io.Writer

	// pad appends a newline to data sections of odd length.
	pad bool

	// closed is true if Close has been called on this Writer, or false if it has not.
	closed bool

	// wroteHeader is true if the archive header has been written to the underlying io.Writer, or
	// false if it has not yet.
	wroteHeader bool

	// nb is the number of bytes that have not yet been written (via Write) since the most
	// recent call to WriteHeader.
	nb int64

	// size is the data section size declared by the most recent call to WriteHeader.
	size int64
}

// NewWriter creates a new Writer that writes an ar archive to an underlying io.Writer. If pad is
// set, odd-length data sections are followed by a newline.
func NewWriter(w io.Writer, pad bool) *Writer {
	return &Writer{w: w, pad: pad}
}

func (aw *Writer) numeric(b []byte, x int64) {
	s := strconv.FormatInt(x, 10)
	for len(s) < len(b) {
		s = s + " "
	}
	copy(b, []byte(s))
}

func (aw *Writer) octal(b []byte, x int64) {
	s := "100" + strconv.FormatInt(x, 8)
	for len(s) < len(b) {
		s = s + " "
	}
	copy(b, []byte(s))
}

func (aw *Writer) string(b []byte, str string) {
	s := str
	for len(s) < len(b) {
		s = s + " "
	}
	copy(b, []byte(s))
}

func (aw *Writer) write(p []byte) (int, error) {
	if aw.closed {
		return 0, errors.New("artest: write to closed writer")
	}
	if err := aw.writeHeader(); err != nil {
		return 0, err
	}
	return aw.w.Write(p)
}

// Close finishes writing the archive, ensuring that a valid archive header has been written even if
// the archive contains no files. It does not close the underlying io.Writer.
func (aw *Writer) Close() error {
	if aw.closed {
		return errors.New("artest: writer closed twice")
	}
	if err := aw.writeHeader(); err != nil {
		return err
	}
	aw.closed = true
	return nil
}

// Write writes to the current entry in the archive. It returns ErrWriteTooLong if more than
// header.Size bytes are written after a call to WriteHeader.
func (aw *Writer) Write(b []byte) (n int, err error) {
	if int64(len(b)) > aw.nb {
		b = b[0:aw.nb]
		err = ErrWriteTooLong
	}
	n, werr := aw.write(b)
	aw.nb -= int64(n)
	if werr != nil {
		return n, werr
	}

	if aw.pad && n > 0 && aw.nb == 0 && aw.size%2 == 1 {
		if _, err := aw.write([]byte{'\n'}); err != nil {
			// Return n although we actually wrote n+1 bytes.
			// This is to make io.Copy() to work correctly.
			return n, err
		}
	}

	return
}

// writeHeader writes the global header to the underlying io.Writer. This must only happen once,
// and must be the first write operation on the io.Writer.
func (aw *Writer) writeHeader() error {
	if aw.wroteHeader {
		return nil
	}
	aw.wroteHeader = true
	if _, err := aw.w.Write([]byte(ar.GLOBAL_HEADER)); err != nil {
		return fmt.Errorf("artest: write archive header: %w", err)
	}
	return nil
}

// bsdName returns the bytes stored after the header for an extended name.
func bsdName(name string) []byte {
	b := append([]byte(name), 0, 0) // seems to pad with at least two nulls
	if len(b)%2 != 0 {
		b = append(b, 0) // pad out to an even number
	}
	return b
}

func extended(hdr *Header) bool {
	return hdr.Extended || len(hdr.Name) > 16
}

// dataSize returns the value of the header's size field.
func dataSize(hdr *Header) int64 {
	if extended(hdr) {
		return hdr.Size + int64(len(bsdName(hdr.Name)))
	}
	return hdr.Size
}

// WriteHeader writes the header to the underlying writer and prepares to receive the file payload.
// Names longer than 16 bytes are written after the header.
func (aw *Writer) WriteHeader(hdr *Header) error {
	header := make([]byte, ar.HEADER_BYTE_SIZE)
	s := slicer(header)

	var name []byte
	if extended(hdr) {
		name = bsdName(hdr.Name)
		aw.string(s.next(16), ar.BSD_NAME_PREFIX+strconv.Itoa(len(name)))
	} else {
		aw.string(s.next(16), hdr.Name)
	}
	aw.numeric(s.next(12), hdr.ModTime.Unix())
	aw.numeric(s.next(6), int64(hdr.Uid))
	aw.numeric(s.next(6), int64(hdr.Gid))
	aw.octal(s.next(8), hdr.Mode)
	aw.numeric(s.next(10), dataSize(hdr))
	aw.string(s.next(2), ar.HEADER_TERMINATOR)

	aw.nb = dataSize(hdr)
	aw.size = aw.nb
	_, err := aw.write(header)

	if err == nil && name != nil {
		// BSD-style writes the name before the data section
		_, err = aw.Write(name)
	}

	return err
}

type slicer []byte

func (sp *slicer) next(n int) (b []byte) {
	s := *sp
	b, *sp = s[0:n], s[n:]
	return
}
