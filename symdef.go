package ardump

import (
	"fmt"
)

// Symbol is one entry of a BSD symbol index: a symbol and the member that defines it.
type Symbol struct {
	// StrOffset is the offset of the symbol name within the index string table.
	StrOffset uint32

	// MemberOffset is the archive offset of the defining member's header.
	MemberOffset uint32

	Name   string
	Member string
}

// SymbolIndex is the decoded payload of a __.SYMDEF or __.SYMDEF SORTED member.
type SymbolIndex struct {
	Symbols []Symbol
}

// DecodeSymbolIndex decodes the symbol index stored in m. The data section of m holds a 32-bit
// byte length followed by that many bytes of (string offset, member offset) pairs, then a 32-bit
// string table length followed by the string table. All reads are confined to the data section;
// member offsets are resolved against the whole archive.
func DecodeSymbolIndex(c *Cursor, m *Member) (*SymbolIndex, error) {
	skip := m.Name.PayloadSkip()
	data, err := c.Slice(m.Offset()+HEADER_BYTE_SIZE+skip, m.Header.Size-skip)
	if err != nil {
		return nil, &ErrSymbolIndex{Entry: -1, Err: err}
	}

	ranlibLen, err := data.Uint32(0)
	if err != nil {
		return nil, &ErrSymbolIndex{Entry: -1, Err: fmt.Errorf("ranlib length: %w", err)}
	}
	ranlibs, err := data.Slice(4, int64(ranlibLen))
	if err != nil {
		return nil, &ErrSymbolIndex{Entry: -1, Err: fmt.Errorf("ranlib array: %w", err)}
	}
	strtabOff := 4 + int64(ranlibLen)
	strtabLen, err := data.Uint32(strtabOff)
	if err != nil {
		return nil, &ErrSymbolIndex{Entry: -1, Err: fmt.Errorf("string table length: %w", err)}
	}
	strtab, err := data.Slice(strtabOff+4, int64(strtabLen))
	if err != nil {
		return nil, &ErrSymbolIndex{Entry: -1, Err: fmt.Errorf("string table: %w", err)}
	}

	n := int(ranlibLen / ranlibSize)
	idx := &SymbolIndex{Symbols: make([]Symbol, 0, n)}
	for i := 0; i < n; i++ {
		entry := int64(i) * ranlibSize
		strx, err := ranlibs.Uint32(entry)
		if err != nil {
			return nil, &ErrSymbolIndex{Entry: i, Err: fmt.Errorf("string offset: %w", err)}
		}
		off, err := ranlibs.Uint32(entry + 4)
		if err != nil {
			return nil, &ErrSymbolIndex{Entry: i, Err: fmt.Errorf("member offset: %w", err)}
		}

		name, err := strtab.CString(int64(strx), strtab.Len())
		if err != nil {
			return nil, &ErrSymbolIndex{Entry: i, Err: fmt.Errorf("symbol name: %w", err)}
		}
		member, err := ResolveNameAt(c, int64(off))
		if err != nil {
			return nil, &ErrSymbolIndex{Entry: i, Err: fmt.Errorf("member: %w", err)}
		}
		idx.Symbols = append(idx.Symbols, Symbol{
			StrOffset:    strx,
			MemberOffset: off,
			Name:         string(name),
			Member:       member.String(),
		})
	}
	return idx, nil
}
