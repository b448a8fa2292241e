package docvalues

import "errors"

// ErrUnknownField is returned when a segment has no column for the requested
// field.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrUnknownField)`.
var ErrUnknownField = errors.New("unknown field")

// BytesValues iterates the byte-string values of one field within one
// segment.
//
// Usage: AdvanceExact positions the accessor on a document; if it reports
// true, exactly Count() calls to Next enumerate the document's values in
// sort order.
//
// The slice returned by Next aliases an internal buffer that is overwritten
// by the next call to Next or AdvanceExact. A value that crosses this
// boundary must be an owned copy.
type BytesValues interface {
	// AdvanceExact positions on doc. It reports false if the document has
	// no entry for the field.
	AdvanceExact(doc uint32) (bool, error)
	// Count returns the number of values of the current document.
	Count() int
	// Next returns the next value of the current document.
	Next() ([]byte, error)
}

// LongValues iterates the 64-bit integer values of one field within one
// segment. Same positioning contract as BytesValues; values are returned by
// value, so no copy rule applies.
type LongValues interface {
	AdvanceExact(doc uint32) (bool, error)
	Count() int
	Next() (int64, error)
}

// Reader opens per-field value accessors within one segment. Open failures
// are I/O errors of the underlying store and propagate unchanged.
type Reader interface {
	BytesValues(field string) (BytesValues, error)
	LongValues(field string) (LongValues, error)
}

// Segment is an independently processable partition of the document set.
// Document ordinals are dense in [0, MaxDoc).
type Segment interface {
	ID() uint64
	MaxDoc() uint32
	Reader() (Reader, error)
}
