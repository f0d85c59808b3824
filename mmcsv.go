// # mmcsv: A Memory-Mapped Streaming CSV Reader for Go
//
// mmcsv reads large delimited-text files through fixed-size, memory-mapped windows so
// peak memory stays at one block plus the longest row that crosses a block boundary,
// regardless of file size.
//
// # Features
//
// - Page-aligned, copy-on-write block windows mapped lazily with golang.org/x/sys.
// - Quote-aware row scanning that survives arbitrary window-boundary splits.
// - Resumable, in-place field decoding with configurable delimiter, quote, and escape bytes.
// - A record layer (`Read`, `ReadAll`, `Records`) with `ReuseRecord` and `FieldsPerRecord`.
// - Lenient quoting: unterminated or trailing-garbage quoted fields are returned, not rejected.
//
// # Getting Started
//
//	r, err := mmcsv.Open("events.csv")
//	if err != nil { ... }
//	defer r.Close()
//
//	for {
//		row, err := r.ReadRow()
//		if err == io.EOF {
//			break
//		}
//		if err != nil { ... }
//		for {
//			field, ok := r.ReadColumn(row)
//			if !ok {
//				break
//			}
//			_ = field // valid until the next ReadRow
//		}
//	}
//
// Rows and fields alias memory owned by the Reader. Copy them if they must outlive
// the next ReadRow, Read, or Close call. A Reader is not safe for concurrent use.
package mmcsv
