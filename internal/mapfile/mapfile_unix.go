//go:build unix

package mapfile

import (
	"fmt"
	"math"

	"golang.org/x/sys/unix"
)

func (mf *File) load(size int64) error {
	if size > math.MaxInt {
		return fmt.Errorf("file of %d bytes is too large to map", size)
	}
	data, err := unix.Mmap(int(mf.f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	mf.data = data
	mf.mapped = true
	return nil
}

func (mf *File) unload() error {
	if !mf.mapped {
		return nil
	}
	mf.mapped = false
	return unix.Munmap(mf.data)
}
