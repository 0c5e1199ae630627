package ardump

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// Failure classes. Every error returned by this package wraps exactly one of them, and each one is
// also classified by errdefs (e.g. errdefs.IsOutOfRange reports true for ErrOutOfBounds).
var (
	// ErrInputUnavailable indicates that the archive could not be opened or mapped.
	ErrInputUnavailable = errdefs.ErrUnavailable.WithMessage("ar: input unavailable")

	// ErrInvalidFormat indicates that the input is not an ar archive.
	ErrInvalidFormat = errdefs.ErrInvalidArgument.WithMessage("ar: invalid format")

	// ErrUnsupportedFormat indicates a recognised container format that is not handled.
	ErrUnsupportedFormat = errdefs.ErrNotImplemented.WithMessage("ar: unsupported format")

	// ErrMalformedHeader indicates a member header with a bad terminator or numeric field.
	ErrMalformedHeader = errdefs.ErrDataLoss.WithMessage("ar: malformed member header")

	// ErrMalformedArchive indicates that the member sequence does not end at the end of the file.
	ErrMalformedArchive = errdefs.ErrDataLoss.WithMessage("ar: malformed archive")

	// ErrOutOfBounds indicates that an offset or length read from the archive points outside it.
	ErrOutOfBounds = errdefs.ErrOutOfRange.WithMessage("ar: out of bounds")
)

var (
	// ErrMissingGlobalHeader indicates that the archive file is invalid because its global
	// header is missing (i.e., because the file is shorter than 8 bytes).
	ErrMissingGlobalHeader = fmt.Errorf("%w: missing global header", ErrInvalidFormat)

	// ErrInvalidGlobalHeader indicates that the archive file is invalid because its global
	// header is malformed (i.e., not the string "!<arch>\n").
	ErrInvalidGlobalHeader = fmt.Errorf("%w: file does not start with %q", ErrInvalidFormat, GLOBAL_HEADER)

	// ErrFatBinary indicates that the file is a multi-architecture binary rather than an archive.
	ErrFatBinary = fmt.Errorf("%w: fat/universal binaries are not archives", ErrUnsupportedFormat)
)

// ErrBounds describes a read of N bytes at Off from a buffer of Len bytes that does not fit.
type ErrBounds struct {
	Off int64
	N   int64
	Len int64
}

func (e *ErrBounds) Error() string {
	return fmt.Sprintf("%s: %d bytes at offset %d exceed %d", ErrOutOfBounds, e.N, e.Off, e.Len)
}

func (e *ErrBounds) Unwrap() error {
	return ErrOutOfBounds
}

// ErrMember indicates a problem with the archive member whose header starts at Offset. Name is
// empty when the failure happened before the name was resolved.
type ErrMember struct {
	Offset int64
	Name   string
	Err    error
}

func (e *ErrMember) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("archive member at offset %d: %s", e.Offset, e.Err)
	}
	return fmt.Sprintf("archive member '%s' at offset %d: %s", e.Name, e.Offset, e.Err)
}

func (e *ErrMember) Unwrap() error {
	return e.Err
}

// ErrSymbolIndex indicates a problem decoding the symbol index. Entry is the index of the
// offending symbol entry, or -1 if the index layout itself is broken.
type ErrSymbolIndex struct {
	Entry int
	Err   error
}

func (e *ErrSymbolIndex) Error() string {
	if e.Entry < 0 {
		return fmt.Sprintf("symbol index: %s", e.Err)
	}
	return fmt.Sprintf("symbol index entry %d: %s", e.Entry, e.Err)
}

func (e *ErrSymbolIndex) Unwrap() error {
	return e.Err
}
