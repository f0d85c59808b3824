//go:build unix

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func osGranularity() int {
	return unix.Getpagesize()
}

func osMap(f *os.File, off int64, length int) ([]byte, error) {
	// PROT_WRITE on a MAP_PRIVATE mapping only touches private copies of the
	// pages, so a read-only descriptor is enough.
	return unix.Mmap(int(f.Fd()), off, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE)
}

func osUnmap(data []byte) error {
	return unix.Munmap(data)
}

func osAdvise(data []byte, pattern AccessPattern) error {
	var advice int
	switch pattern {
	case AccessSequential:
		advice = unix.MADV_SEQUENTIAL
	case AccessWillNeed:
		advice = unix.MADV_WILLNEED
	default:
		advice = unix.MADV_NORMAL
	}

	err := unix.Madvise(data, advice)
	if err == unix.EINVAL || err == unix.ENOSYS {
		return nil
	}
	return err
}
