package format

import "github.com/cockroachdb/errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrTypeMismatch indicates a record of one type was decoded as another.
	ErrTypeMismatch = errors.New("format: record type mismatch")
	// ErrBadLength indicates a HobLength that cannot describe a valid record.
	ErrBadLength = errors.New("format: invalid record length")
)
