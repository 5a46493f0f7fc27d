// Package zread provides a Reader that transparently decompresses a byte
// stream whose compression format, or absence thereof, is detected from its
// first bytes.
//
// For example, if f is an *os.File over gzip, bzip2, xz, zstd, lz4 or snappy
// compressed data, NewFileReader(f) returns a Reader that reads the
// decompressed byte stream. If f holds data that isn't compressed with a
// recognized format, the Reader forwards it unchanged.
//
// A Reader reads sequentially, is single-pass and isn't safe for concurrent
// use. It can be rebound to another source with Reset, ResetFD or ResetFile.
//
// Backends are compiled in by default, each of them can be excluded with a
// build tag named zread_no<format> (for example zread_nobzip2). A stream
// compressed with an excluded format fails detection with
// ErrUnsupportedFormat, it's never read as raw data.
package zread
