// Package mapfile provides read-only, whole-file access to an archive on disk.
package mapfile

import (
	"fmt"
	"os"

	ar "github.com/please-build/ardump"
)

// File is an open file whose contents are available as a byte slice until Close is called.
type File struct {
	f    *os.File
	data []byte

	// mapped is true if data must be released with munmap.
	mapped bool
}

// Open opens the named file and makes its whole contents available through Bytes. Failures wrap
// ar.ErrInputUnavailable.
func Open(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read '%s': %w", ar.ErrInputUnavailable, name, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: failed to stat '%s': %w", ar.ErrInputUnavailable, name, err)
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%w: '%s' is not a regular file", ar.ErrInputUnavailable, name)
	}

	mf := &File{f: f}
	if fi.Size() == 0 {
		return mf, nil
	}
	if err := mf.load(fi.Size()); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: failed to map '%s': %w", ar.ErrInputUnavailable, name, err)
	}
	return mf, nil
}

// Bytes returns the file contents. The slice must not be modified or used after Close.
func (mf *File) Bytes() []byte {
	return mf.data
}

// Close releases the file contents and closes the file.
func (mf *File) Close() error {
	err := mf.unload()
	mf.data = nil
	if cerr := mf.f.Close(); err == nil {
		err = cerr
	}
	return err
}
