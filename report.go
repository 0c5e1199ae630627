package ardump

import (
	"bytes"
	"fmt"
	"io"
)

// Reporter receives the table of contents of an archive as it is scanned.
type Reporter interface {
	// Member is called for each member header.
	Member(m *Member)

	// SymbolCount is called with the number of entries in a symbol index, before its symbols.
	SymbolCount(n int)

	// Symbol is called for each symbol index entry.
	Symbol(s *Symbol)
}

// TextReporter writes a table of contents in the format of the classic ardump tool. Member names
// are printed as returned by Name.String, so the space padding of a name stored in the header is
// not printed; the raw field is available as Header.RawName.
type TextReporter struct {
	w       io.Writer
	verbose bool
	err     error
}

// NewTextReporter returns a TextReporter writing to w. If verbose is set, symbol lines include
// the raw string table and member offsets.
func NewTextReporter(w io.Writer, verbose bool) *TextReporter {
	return &TextReporter{w: w, verbose: verbose}
}

// Err returns the first error encountered writing to the underlying io.Writer.
func (tr *TextReporter) Err() error {
	return tr.err
}

func (tr *TextReporter) printf(format string, args ...any) {
	if tr.err != nil {
		return
	}
	_, tr.err = fmt.Fprintf(tr.w, format, args...)
}

// field returns header text up to its first NUL.
func field(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

func (tr *TextReporter) Member(m *Member) {
	if m.Name.Extended {
		tr.printf("ar_name: %s (extended BSD name)\n", m.Name)
	} else {
		tr.printf("ar_name: %s\n", m.Name)
	}
	h := m.Header
	tr.printf("ar_date: %s\n", field(h.RawDate))
	tr.printf("ar_uid: %s\n", field(h.RawUid))
	tr.printf("ar_gid: %s\n", field(h.RawGid))
	tr.printf("ar_mode: %s\n", field(h.RawMode))
	tr.printf("ar_size: %s\n", field(h.RawSize))
	tr.printf("ar_fmag: %s\n", field(h.RawFmag))
}

func (tr *TextReporter) SymbolCount(n int) {
	tr.printf("%d ranlibs\n", n)
}

func (tr *TextReporter) Symbol(s *Symbol) {
	if tr.verbose {
		tr.printf("ran_strx 0x%x: %s, ran_off 0x%x: %s\n", s.StrOffset, s.Name, s.MemberOffset, s.Member)
		return
	}
	tr.printf("%s %s\n", s.Name, s.Member)
}

// Collector is a Reporter that keeps everything it is given.
type Collector struct {
	Members      []*Member
	SymbolCounts []int
	Symbols      []Symbol
}

func (c *Collector) Member(m *Member) {
	c.Members = append(c.Members, m)
}

func (c *Collector) SymbolCount(n int) {
	c.SymbolCounts = append(c.SymbolCounts, n)
}

func (c *Collector) Symbol(s *Symbol) {
	c.Symbols = append(c.Symbols, *s)
}
