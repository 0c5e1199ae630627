package ardump

const (
	HEADER_BYTE_SIZE = 60
	GLOBAL_HEADER    = "!<arch>\n"

	// HEADER_TERMINATOR closes every member header.
	HEADER_TERMINATOR = "`\n"

	// BSD_NAME_PREFIX marks a member whose name is stored after its header. The digits that follow
	// give the length of the stored name.
	BSD_NAME_PREFIX = "#1/"

	// SYMDEF and SYMDEF_SORTED are the names of the BSD symbol index member.
	SYMDEF        = "__.SYMDEF"
	SYMDEF_SORTED = "__.SYMDEF SORTED"

	// FAT_MAGIC is the magic number of a multi-architecture (universal) binary; FAT_CIGAM is the
	// same value with its bytes reversed.
	FAT_MAGIC = 0xcafebabe
	FAT_CIGAM = 0xbebafeca
)

// Header field widths, in the order they appear in a member header.
const (
	nameWidth = 16
	dateWidth = 12
	uidWidth  = 6
	gidWidth  = 6
	modeWidth = 8
	sizeWidth = 10
	fmagWidth = 2
)

// ranlibSize is the size of one symbol index entry: a string table offset and a member offset,
// both 32-bit.
const ranlibSize = 8

// Options configures a scan.
type Options struct {
	// Verbose reports every member header and the symbol count of each index member.
	Verbose bool

	// Align skips the padding byte that follows a member with an odd total size. The default is to
	// advance by exactly header plus payload size.
	Align bool
}

type slicer []byte

func (sp *slicer) next(n int) (b []byte) {
	s := *sp
	b, *sp = s[0:n], s[n:]
	return
}
