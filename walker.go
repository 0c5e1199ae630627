package ardump

import (
	"fmt"
)

// Member is one archive member as found during a walk.
type Member struct {
	Name   Name
	Header *Header
}

// Offset returns the position of the member's header within the archive.
func (m *Member) Offset() int64 {
	return m.Header.Offset
}

// TotalSize returns the size of the member including its header.
func (m *Member) TotalSize() int64 {
	return m.Header.TotalSize()
}

// WalkFunc is called for each member of an archive, in archive order. A non-nil error stops the
// walk and is returned by Walk wrapped in an *ErrMember.
type WalkFunc func(c *Cursor, m *Member) error

func checkGlobalHeader(c *Cursor) error {
	magic, err := c.ReadAt(0, int64(len(GLOBAL_HEADER)))
	if err == nil && string(magic) == GLOBAL_HEADER {
		return nil
	}
	if v, err := c.Uint32(0); err == nil && (v == FAT_MAGIC || v == FAT_CIGAM) {
		return ErrFatBinary
	}
	if c.Len() < int64(len(GLOBAL_HEADER)) {
		return ErrMissingGlobalHeader
	}
	return ErrInvalidGlobalHeader
}

// Walk validates the global header of the archive in buf and calls fn for each member. The members
// must exactly cover the rest of buf; a member extending past the end is ErrMalformedArchive.
func Walk(buf []byte, fn WalkFunc, opts Options) error {
	c := NewCursor(buf)
	if err := checkGlobalHeader(c); err != nil {
		return err
	}

	off := int64(len(GLOBAL_HEADER))
	for off < c.Len() {
		h, err := ReadHeader(c, off)
		if err != nil {
			return &ErrMember{Offset: off, Err: err}
		}
		name, err := ResolveName(c, h)
		if err != nil {
			return &ErrMember{Offset: off, Err: err}
		}
		m := &Member{Name: name, Header: h}

		next := off + m.TotalSize()
		if next > c.Len() {
			return &ErrMember{
				Offset: off,
				Name:   name.String(),
				Err:    fmt.Errorf("%w: member of %d bytes extends past end of archive (%d bytes)", ErrMalformedArchive, m.TotalSize(), c.Len()),
			}
		}
		if err := fn(c, m); err != nil {
			return &ErrMember{Offset: off, Name: name.String(), Err: err}
		}

		if opts.Align && next%2 == 1 && next < c.Len() {
			next++
		}
		off = next
	}
	return nil
}

// Scan walks the archive in buf and reports its table of contents to r. Member headers and symbol
// counts are reported only when opts.Verbose is set; symbol index entries are always reported.
func Scan(buf []byte, r Reporter, opts Options) error {
	return Walk(buf, func(c *Cursor, m *Member) error {
		if opts.Verbose {
			r.Member(m)
		}
		if !m.Name.IsSymbolIndex() {
			return nil
		}
		idx, err := DecodeSymbolIndex(c, m)
		if err != nil {
			return err
		}
		if opts.Verbose {
			r.SymbolCount(len(idx.Symbols))
		}
		for i := range idx.Symbols {
			r.Symbol(&idx.Symbols[i])
		}
		return nil
	}, opts)
}
