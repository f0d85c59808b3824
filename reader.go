package mmcsv

import (
	"bytes"
	"io"
	"iter"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Reader reads rows and fields from a file through memory-mapped windows.
type Reader struct {
	// ReuseRecord indicates whether Read should reuse the backing array of the returned slice.
	ReuseRecord bool
	// FieldsPerRecord expects each record read by Read to contain this many fields.
	// Zero captures the width of the first record; a negative value disables the check.
	FieldsPerRecord int

	comma    byte
	quote    byte
	escape   byte
	quoteSep []byte
	maxRow   int

	blocks *blockMapper

	// parity counts quote bytes seen while looking for the current row's terminator.
	parity int
	// spill holds the prefix of a row that started in an earlier window.
	spill []byte

	row []byte
	gen uint64
	col columnCursor

	record   []string
	rows     int64
	maxSpill int
	closed   bool
}

// Stats describes the work a Reader has done so far.
type Stats struct {
	// Rows is the number of rows returned by ReadRow (directly or through Read).
	Rows int64
	// Windows is the number of blocks mapped.
	Windows int64
	// BlockSize is the effective window size after alignment.
	BlockSize int
	// FileSize is the size of the input at Open time.
	FileSize int64
	// MaxSpill is the longest row prefix ever carried across a window boundary.
	MaxSpill int
}

// Open opens the file at path for reading. Nothing is mapped until the first row
// is requested. The returned Reader must be released with Close.
func Open(path string, opts ...Option) (*Reader, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	blocks, err := newBlockMapper(path, o.blockSize)
	if err != nil {
		return nil, err
	}

	return &Reader{
		comma:    o.comma,
		quote:    o.quote,
		escape:   o.escape,
		quoteSep: []byte{o.quote},
		maxRow:   o.maxRowSize,
		blocks:   blocks,
	}, nil
}

// ReadRow returns the next row without its line terminator ("\n" or "\r\n").
// A line terminator only ends a row when an even number of quote bytes precede it
// in that row. At the end of input ReadRow returns io.EOF.
//
// The row aliases memory owned by the Reader and is valid until the next call to
// ReadRow, Read, or Close.
func (r *Reader) ReadRow() ([]byte, error) {
	if r == nil || r.closed {
		return nil, ErrClosed
	}
	r.gen++
	r.row = nil
	r.col = columnCursor{}

	for {
		state, err := r.blocks.ensureMapped()
		if err != nil {
			return nil, err
		}
		if state == mapEndOfInput {
			if len(r.spill) == 0 {
				return nil, io.EOF
			}
			// The last row has no terminator.
			row := r.spill[:len(r.spill):len(r.spill)]
			r.spill = r.spill[:0]
			r.parity = 0
			return r.emit(row), nil
		}

		data := r.blocks.remaining()
		if len(data) == 0 {
			continue
		}

		k := r.findTerminator(data)
		if k < 0 {
			if err := r.growSpill(data); err != nil {
				return nil, err
			}
			continue
		}

		seg := data[:k+1]
		row := seg
		if len(r.spill) > 0 {
			if err := r.growSpill(seg); err != nil {
				return nil, err
			}
			row = r.spill
		} else {
			r.blocks.consume(len(seg))
		}
		r.parity = 0
		r.spill = r.spill[:0]
		return r.emit(trimTerminator(row)), nil
	}
}

// growSpill consumes data from the current window and appends it to the
// spillover buffer. On failure the partial row is dropped.
func (r *Reader) growSpill(data []byte) error {
	if r.maxRow > 0 && len(r.spill)+len(data) > r.maxRow {
		start := r.rowStart()
		r.blocks.consume(len(data))
		r.spill = r.spill[:0]
		r.parity = 0
		return errors.Wrapf(ErrRowTooLarge, "row at offset %d longer than %d bytes", start, r.maxRow)
	}
	r.spill = append(r.spill, data...)
	r.blocks.consume(len(data))
	if len(r.spill) > r.maxSpill {
		r.maxSpill = len(r.spill)
	}
	return nil
}

// findTerminator returns the index of the first '\n' in data reached with even
// quote parity, or -1. Parity carries over between calls for the same row.
func (r *Reader) findTerminator(data []byte) int {
	off := 0
	for {
		nl := bytes.IndexByte(data[off:], '\n')
		if nl < 0 {
			r.parity += bytes.Count(data[off:], r.quoteSep)
			return -1
		}
		r.parity += bytes.Count(data[off:off+nl], r.quoteSep)
		if r.parity&1 == 0 {
			return off + nl
		}
		off += nl + 1
	}
}

// rowStart returns the file offset at which the row being assembled began.
func (r *Reader) rowStart() int64 {
	return r.blocks.position() - int64(len(r.spill))
}

func (r *Reader) emit(row []byte) []byte {
	r.row = row
	r.rows++
	return row
}

func trimTerminator(row []byte) []byte {
	n := len(row)
	if n > 0 && row[n-1] == '\n' {
		n--
		if n > 0 && row[n-1] == '\r' {
			n--
		}
	}
	return row[:n:n]
}

// sameBuffer reports whether a and b are the same view of the same memory.
func sameBuffer(a, b []byte) bool {
	return len(a) == len(b) && unsafe.SliceData(a) == unsafe.SliceData(b)
}

// Read parses the next record. It returns dst containing the decoded fields (which may
// reuse internal storage when ReuseRecord is true) and io.EOF once no rows remain.
// A record whose width differs from FieldsPerRecord is returned together with ErrFieldCount.
func (r *Reader) Read() (dst []string, err error) {
	row, err := r.ReadRow()
	if err != nil {
		return nil, err
	}

	if r.ReuseRecord {
		r.record = r.record[:0]
	} else {
		r.record = nil
	}
	for {
		field, ok := r.ReadColumn(row)
		if !ok {
			break
		}
		r.record = append(r.record, string(field))
	}

	if r.FieldsPerRecord == 0 {
		r.FieldsPerRecord = len(r.record)
		return r.record, nil
	}
	if r.FieldsPerRecord > 0 && len(r.record) != r.FieldsPerRecord {
		return r.record, errors.Wrapf(ErrFieldCount, "record %d has %d fields, want %d", r.rows, len(r.record), r.FieldsPerRecord)
	}
	return r.record, nil
}

// ReadAll exhausts the reader, repeatedly calling Read to collect records until io.EOF
// and returning the accumulated records plus the first non-EOF error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		if r.ReuseRecord {
			record = append([]string(nil), record...)
		}
		records = append(records, record)
	}
}

// Records returns an iterator over the remaining records. Iteration stops after
// the first error: ErrFieldCount is yielded with the offending record, any other
// error with a nil record. io.EOF is not yielded.
func (r *Reader) Records() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			record, err := r.Read()
			if err == io.EOF {
				return
			}
			if err != nil && !errors.Is(err, ErrFieldCount) {
				yield(nil, err)
				return
			}
			if !yield(record, err) || err != nil {
				return
			}
		}
	}
}

// Offset returns the file offset of the first byte not yet consumed by ReadRow.
func (r *Reader) Offset() int64 {
	if r == nil || r.blocks == nil {
		return 0
	}
	return r.blocks.position()
}

// Stats reports counters for the rows read so far.
func (r *Reader) Stats() Stats {
	if r == nil || r.blocks == nil {
		return Stats{}
	}
	return Stats{
		Rows:      r.rows,
		Windows:   r.blocks.windows,
		BlockSize: r.blocks.blockSize,
		FileSize:  r.blocks.size,
		MaxSpill:  r.maxSpill,
	}
}

// Close unmaps the current window and closes the file. Rows and fields returned
// earlier must not be used afterwards. Close is idempotent.
func (r *Reader) Close() error {
	if r == nil || r.closed {
		return nil
	}
	r.closed = true
	r.row = nil
	r.spill = nil
	r.col = columnCursor{}
	return r.blocks.close()
}
