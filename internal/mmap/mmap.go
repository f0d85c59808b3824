package mmap

import (
	"os"

	"github.com/cockroachdb/errors"
)

// AccessPattern provides hints to the kernel about how a window will be read.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects the window to be read front to back once.
	AccessSequential
	// AccessWillNeed expects the window to be read in the near future.
	AccessWillNeed
)

var (
	// ErrInvalidLength is returned when a window length is not positive.
	ErrInvalidLength = errors.New("mmap: invalid window length")
	// ErrUnaligned is returned when a window offset is not a multiple of Granularity.
	ErrUnaligned = errors.New("mmap: unaligned window offset")
)

// Granularity returns the alignment that window offsets must respect.
func Granularity() int {
	return osGranularity()
}

// Map maps length bytes of f starting at off. The result must be released
// with Unmap.
func Map(f *os.File, off int64, length int) ([]byte, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}
	if off < 0 || off%int64(osGranularity()) != 0 {
		return nil, errors.Wrapf(ErrUnaligned, "offset %d", off)
	}
	data, err := osMap(f, off, length)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap: map %d bytes at offset %d", length, off)
	}
	return data, nil
}

// Unmap releases a window returned by Map. Unmapping an empty slice is a no-op.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return osUnmap(data)
}

// Advise provides hints to the kernel about how data will be accessed.
// Advice is best-effort: an unsupported hint is not an error.
func Advise(data []byte, pattern AccessPattern) error {
	if len(data) == 0 {
		return nil
	}
	return osAdvise(data, pattern)
}
