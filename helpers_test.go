package mmcsv

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// writeCSV stores content in a fresh temporary file and returns its path.
func writeCSV(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// openString opens a Reader over content, closing it when the test ends.
func openString(t testing.TB, content string, opts ...Option) *Reader {
	t.Helper()
	r, err := Open(writeCSV(t, content), opts...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

// readRows drains r with ReadRow and returns copies of every row.
func readRows(t testing.TB, r *Reader) []string {
	t.Helper()
	var rows []string
	for {
		row, err := r.ReadRow()
		if errors.Is(err, io.EOF) {
			return rows
		}
		if err != nil {
			t.Fatalf("ReadRow() error = %v", err)
		}
		rows = append(rows, string(row))
	}
}

// readFields drains the columns of row and returns copies of every field.
func readFields(r *Reader, row []byte) []string {
	var fields []string
	for {
		field, ok := r.ReadColumn(row)
		if !ok {
			return fields
		}
		fields = append(fields, string(field))
	}
}

// readTable drains r row by row, tokenizing each row with ReadColumn.
func readTable(t testing.TB, r *Reader) [][]string {
	t.Helper()
	var table [][]string
	for {
		row, err := r.ReadRow()
		if errors.Is(err, io.EOF) {
			return table
		}
		if err != nil {
			t.Fatalf("ReadRow() error = %v", err)
		}
		table = append(table, readFields(r, row))
	}
}
