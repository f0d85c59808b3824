//go:build !unix && !windows

package mmap

import (
	"io"
	"os"
)

const heapGranularity = 4 << 10

func osGranularity() int {
	return heapGranularity
}

// osMap reads the window into the heap on platforms without mmap.
func osMap(f *os.File, off int64, length int) ([]byte, error) {
	data := make([]byte, length)
	n, err := f.ReadAt(data, off)
	if err != nil && !(err == io.EOF && n == length) {
		return nil, err
	}
	return data, nil
}

func osUnmap([]byte) error {
	return nil
}

func osAdvise([]byte, AccessPattern) error {
	return nil
}
