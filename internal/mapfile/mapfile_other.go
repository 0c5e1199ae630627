//go:build !unix

package mapfile

import (
	"io"
)

func (mf *File) load(size int64) error {
	data := make([]byte, size)
	if _, err := io.ReadFull(mf.f, data); err != nil {
		return err
	}
	mf.data = data
	return nil
}

func (mf *File) unload() error {
	return nil
}
