package mmcsv

import (
	"os"

	"github.com/cockroachdb/errors"

	"github.com/oleg578/mmcsv/internal/mmap"
)

// mapState is the outcome of ensureMapped. Mapping failures are reported
// through the accompanying error instead.
type mapState int

const (
	mapReady mapState = iota
	mapEndOfInput
)

// blockMapper presents a file as a sequence of fixed-size, aligned windows,
// keeping at most one of them mapped at a time.
type blockMapper struct {
	f         *os.File
	size      int64
	blockSize int

	window []byte // len(window) is the number of valid bytes
	offset int64  // file offset of window[0]
	next   int64  // first file offset not yet mapped
	cursor int    // first byte of window not yet consumed

	windows int64

	mapFn func(f *os.File, off int64, length int) ([]byte, error)
}

func newBlockMapper(path string, target int) (*blockMapper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Op: "open", Path: path, Err: err}
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenError{Op: "stat", Path: path, Err: err}
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, &OpenError{Op: "stat", Path: path, Err: errors.Newf("not a regular file (mode %s)", fi.Mode())}
	}

	return &blockMapper{
		f:         f,
		size:      fi.Size(),
		blockSize: alignBlockSize(target, mmap.Granularity()),
		mapFn:     mmap.Map,
	}, nil
}

// alignBlockSize returns the smallest multiple of granularity that is >= target.
func alignBlockSize(target, granularity int) int {
	if target <= granularity {
		return granularity
	}
	return (target + granularity - 1) / granularity * granularity
}

// remaining returns the unconsumed bytes of the current window.
func (m *blockMapper) remaining() []byte {
	return m.window[m.cursor:]
}

// consume marks n bytes of the current window as read.
func (m *blockMapper) consume(n int) {
	m.cursor += n
}

// ensureMapped guarantees that the current window has unconsumed bytes,
// mapping the next block when it does not.
func (m *blockMapper) ensureMapped() (mapState, error) {
	if m.cursor < len(m.window) {
		return mapReady, nil
	}
	if err := m.unmap(); err != nil {
		return mapReady, err
	}
	if m.next >= m.size {
		return mapEndOfInput, nil
	}

	length := m.blockSize
	if rest := m.size - m.next; rest < int64(length) {
		length = int(rest)
	}
	data, err := m.mapFn(m.f, m.next, length)
	if err != nil {
		return mapReady, &MapError{Offset: m.next, Length: length, Err: err}
	}
	// The hint only affects readahead.
	_ = mmap.Advise(data, mmap.AccessSequential)

	m.window = data
	m.offset = m.next
	m.next += int64(length)
	m.cursor = 0
	m.windows++
	return mapReady, nil
}

func (m *blockMapper) unmap() error {
	if m.window == nil {
		return nil
	}
	data := m.window
	m.window = nil
	m.cursor = 0
	if err := mmap.Unmap(data); err != nil {
		return &MapError{Offset: m.offset, Length: len(data), Err: err}
	}
	return nil
}

// position returns the file offset of the next unconsumed byte.
func (m *blockMapper) position() int64 {
	if m.window == nil {
		return m.next
	}
	return m.offset + int64(m.cursor)
}

func (m *blockMapper) close() error {
	err := m.unmap()
	if m.f != nil {
		err = errors.CombineErrors(err, m.f.Close())
		m.f = nil
	}
	return err
}
