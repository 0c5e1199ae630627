package artest

import (
	"bytes"
	"encoding/binary"
	"time"

	ar "github.com/please-build/ardump"
)

// Symbol maps a symbol name to the name of the member that defines it.
type Symbol struct {
	Name   string
	Member string
}

type entry struct {
	hdr  Header
	body []byte

	// symbols is non-nil for a symbol index member; body is generated once offsets are known.
	symbols []Symbol
}

// Builder lays out a BSD archive whose symbol index members reference other members by offset.
type Builder struct {
	pad     bool
	entries []entry
}

// Archive is the output of a Builder.
type Archive struct {
	Data []byte

	// Offsets maps each member name to the offset of its header. If a name occurs more than once
	// the last occurrence wins.
	Offsets map[string]int64
}

// NewBuilder returns an empty Builder. If pad is set, odd-length members are followed by a
// padding newline.
func NewBuilder(pad bool) *Builder {
	return &Builder{pad: pad}
}

func defaultHeader(name string, size int) Header {
	return Header{
		Name:    name,
		ModTime: time.Unix(1361157466, 0),
		Uid:     501,
		Gid:     20,
		Mode:    0644,
		Size:    int64(size),
	}
}

// Add appends a member with the given name and contents.
func (b *Builder) Add(name string, body []byte) *Builder {
	return b.AddHeader(defaultHeader(name, len(body)), body)
}

// AddHeader appends a member with an explicit header. hdr.Size is taken from body; a zero ModTime
// or Mode is replaced by the value Add would use.
func (b *Builder) AddHeader(hdr Header, body []byte) *Builder {
	def := defaultHeader(hdr.Name, len(body))
	if hdr.ModTime.IsZero() {
		hdr.ModTime = def.ModTime
	}
	if hdr.Mode == 0 {
		hdr.Mode = def.Mode
	}
	hdr.Size = def.Size
	b.entries = append(b.entries, entry{hdr: hdr, body: body})
	return b
}

// AddSymbolIndex appends a symbol index member. Every Symbol.Member must name a member added to
// the Builder. Use ar.SYMDEF or ar.SYMDEF_SORTED as the name; extended stores the name after the
// header, as Apple's ranlib does.
func (b *Builder) AddSymbolIndex(name string, extended bool, syms ...Symbol) *Builder {
	hdr := defaultHeader(name, symbolIndexSize(syms))
	hdr.Extended = extended
	if syms == nil {
		syms = []Symbol{}
	}
	b.entries = append(b.entries, entry{hdr: hdr, symbols: syms})
	return b
}

func stringTable(syms []Symbol) ([]byte, []uint32) {
	var strtab []byte
	offsets := make([]uint32, len(syms))
	for i, s := range syms {
		offsets[i] = uint32(len(strtab))
		strtab = append(strtab, s.Name...)
		strtab = append(strtab, 0)
	}
	return strtab, offsets
}

func symbolIndexSize(syms []Symbol) int {
	strtab, _ := stringTable(syms)
	return 4 + len(syms)*8 + 4 + len(strtab)
}

func symbolIndex(syms []Symbol, offsets map[string]int64) []byte {
	strtab, stroffs := stringTable(syms)
	out := make([]byte, 0, symbolIndexSize(syms))
	out = binary.NativeEndian.AppendUint32(out, uint32(len(syms)*8))
	for i, s := range syms {
		out = binary.NativeEndian.AppendUint32(out, stroffs[i])
		out = binary.NativeEndian.AppendUint32(out, uint32(offsets[s.Member]))
	}
	out = binary.NativeEndian.AppendUint32(out, uint32(len(strtab)))
	return append(out, strtab...)
}

// Build lays out and writes the archive.
func (b *Builder) Build() *Archive {
	offsets := map[string]int64{}
	off := int64(len(ar.GLOBAL_HEADER))
	for i := range b.entries {
		e := &b.entries[i]
		offsets[e.hdr.Name] = off
		off += ar.HEADER_BYTE_SIZE + dataSize(&e.hdr)
		if b.pad && off%2 == 1 {
			off++
		}
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, b.pad)
	for i := range b.entries {
		e := &b.entries[i]
		body := e.body
		if e.symbols != nil {
			body = symbolIndex(e.symbols, offsets)
		}
		// Writes to a bytes.Buffer cannot fail.
		_ = w.WriteHeader(&e.hdr)
		_, _ = w.Write(body)
	}
	_ = w.Close()
	return &Archive{Data: buf.Bytes(), Offsets: offsets}
}
