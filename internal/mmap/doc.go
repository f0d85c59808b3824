// Package mmap maps fixed-size windows of a file into memory.
//
// Every window is a private, copy-on-write view: callers may write into the
// returned slice (for example to decode fields in place) and the backing file
// is never modified.
//
// # Platform Support
//
//   - Unix: mmap(2) with MAP_PRIVATE and madvise(2) for access hints
//   - Windows: CreateFileMapping(PAGE_WRITECOPY) / MapViewOfFile(FILE_MAP_COPY)
//   - Other platforms: a heap buffer filled with ReadAt
//
// Offsets passed to Map must be a multiple of Granularity.
package mmap
