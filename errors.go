package mmcsv

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidDelimiter is returned by Open when the delimiter, quote, and escape
	// bytes are not distinct or one of them is a line terminator.
	ErrInvalidDelimiter = errors.New("mmcsv: invalid delimiter, quote, or escape byte")
	// ErrRowTooLarge is returned when a row spanning windows outgrows the configured maximum.
	ErrRowTooLarge = errors.New("mmcsv: row exceeds maximum size")
	// ErrClosed is returned when reading from a closed Reader.
	ErrClosed = errors.New("mmcsv: reader is closed")
	// ErrFieldCount is returned when a record contains an unexpected number of fields.
	ErrFieldCount = errors.New("mmcsv: wrong number of fields")
)

// OpenError reports a failure to open or stat the input file.
type OpenError struct {
	Op   string
	Path string
	Err  error
}

// Error formats the failed operation, the path, and the underlying error.
func (e *OpenError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("mmcsv: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying Err so OpenError participates in errors.Is.
func (e *OpenError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MapError reports a failure to map the window starting at Offset.
// The Reader stays usable, but further reads are likely to fail the same way.
type MapError struct {
	Offset int64
	Length int
	Err    error
}

// Error formats the window location and the underlying error.
func (e *MapError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("mmcsv: map window at offset %d (%d bytes): %v", e.Offset, e.Length, e.Err)
}

// Unwrap returns the underlying Err.
func (e *MapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
