package mmcsv

import "bytes"

// columnCursor tracks how much of the current row has been tokenized.
// It is an offset rather than a slice so that a cursor left over from an
// earlier row can be recognised by its generation and discarded.
type columnCursor struct {
	gen     uint64
	pos     int
	started bool
	done    bool
}

// ReadColumn returns the next field of row, or false once the row has no more
// fields. Consecutive calls with the row most recently returned by ReadRow walk
// its fields left to right. Any other buffer, such as a row from before the last
// ReadRow, is rejected and ends tokenization of the current row. A Reader that
// has not returned a row yet tokenizes the first buffer it is given.
//
// Fields are decoded in place: a leading quote byte starts a quoted field that ends
// at the next lone quote, a doubled quote stands for one quote, and the escape byte
// makes the following byte literal. Bytes between a closing quote and the next
// delimiter are dropped, and an unterminated quoted field runs to the end of the row.
// Decoding overwrites row, so the raw row is not available after the first call.
//
// The field aliases row and is valid until the next call to ReadRow, Read, or Close.
func (r *Reader) ReadColumn(row []byte) ([]byte, bool) {
	if r == nil || r.closed {
		return nil, false
	}
	if !sameBuffer(row, r.row) {
		if r.row != nil || r.rows > 0 {
			// Stale or foreign buffer: its bytes may already be decoded in place.
			r.col = columnCursor{gen: r.gen, started: true, done: true}
			return nil, false
		}
		r.gen++
		r.row = row
	}
	if r.col.gen != r.gen {
		r.col = columnCursor{gen: r.gen}
	}

	c := &r.col
	if c.done {
		return nil, false
	}
	n := len(row)
	if c.pos >= n && !c.started {
		c.done = true
		return nil, false
	}
	c.started = true

	i := c.pos
	quoted := i < n && row[i] == r.quote
	if quoted {
		i++
	}
	start, w := i, i

scan:
	for i < n {
		b := row[i]
		switch {
		case b == r.escape && i+1 < n:
			row[w] = row[i+1]
			w++
			i += 2
		case b == r.quote && i+1 < n && row[i+1] == r.quote:
			row[w] = b
			w++
			i += 2
		case quoted && b == r.quote, !quoted && b == r.comma:
			break scan
		default:
			// Clean fields never store, so they never dirty a mapped page.
			if w != i {
				row[w] = b
			}
			w++
			i++
		}
	}

	field := row[start:w:w]
	switch {
	case i >= n:
		c.pos, c.done = n, true
	case quoted:
		i++
		if j := bytes.IndexByte(row[i:], r.comma); j >= 0 {
			c.pos = i + j + 1
		} else {
			c.pos, c.done = n, true
		}
	default:
		c.pos = i + 1
	}
	return field, true
}
