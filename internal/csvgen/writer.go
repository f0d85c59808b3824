// Package csvgen encodes records in the dialect mmcsv reads: quoted fields with
// doubled quotes, plus an escape byte that makes the following byte literal.
// It exists to build test inputs of arbitrary size and shape.
package csvgen

import (
	"bufio"
	"io"

	"github.com/cockroachdb/errors"
)

const defaultBufferSize = 64 << 10

var (
	errNilWriter      = errors.New("csvgen: writer is nil")
	errWriterNoTarget = errors.New("csvgen: writer destination cannot be nil")
)

// Writer emits records that mmcsv decodes back to the same fields.
type Writer struct {
	dst *bufio.Writer

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Quote is the quote character. Default is '"'.
	Quote byte
	// Escape is the escape character. Default is '\\'.
	Escape byte
	// UseCRLF writes records terminated with \r\n when set.
	UseCRLF bool
	// AlwaysQuote forces quoting for all fields when enabled.
	AlwaysQuote bool

	written int64
	err     error
}

// NewWriter creates a new Writer that buffers output to w.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:    bufio.NewWriterSize(w, defaultBufferSize),
		Comma:  ',',
		Quote:  '"',
		Escape: '\\',
	}
}

// Write emits a single record terminated with the configured newline sequence.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.err != nil {
		return w.err
	}

	// A lone empty field would otherwise encode as an empty line, which
	// reads back as a row without fields.
	if len(record) == 1 && record[0] == "" {
		w.writeBytes(w.Quote, w.Quote)
	} else {
		for i := range record {
			if i > 0 {
				w.writeBytes(w.Comma)
			}
			w.writeField(record[i])
		}
	}

	if w.UseCRLF {
		w.writeBytes('\r', '\n')
	} else {
		w.writeBytes('\n')
	}
	return w.err
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
	}
	return w.err
}

// Written returns the number of bytes accepted so far, flushed or not.
func (w *Writer) Written() int64 {
	if w == nil {
		return 0
	}
	return w.written
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) writeField(field string) {
	needsQuote := w.AlwaysQuote || w.fieldNeedsQuote(field)
	if needsQuote {
		w.writeBytes(w.Quote)
	}
	start := 0
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case w.Quote:
			w.writeString(field[start:i])
			w.writeBytes(w.Quote, w.Quote)
			start = i + 1
		case w.Escape:
			w.writeString(field[start:i])
			w.writeBytes(w.Escape, w.Escape)
			start = i + 1
		}
	}
	w.writeString(field[start:])
	if needsQuote {
		w.writeBytes(w.Quote)
	}
}

func (w *Writer) fieldNeedsQuote(field string) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case w.Quote, w.Comma, '\n', '\r':
			return true
		}
	}
	return false
}

func (w *Writer) writeString(s string) {
	if w.err != nil || s == "" {
		return
	}
	n, err := w.dst.WriteString(s)
	w.written += int64(n)
	w.err = err
}

func (w *Writer) writeBytes(b ...byte) {
	if w.err != nil {
		return
	}
	n, err := w.dst.Write(b)
	w.written += int64(n)
	w.err = err
}
