// Package docvalues defines the boundary to the columnar per-document value
// store and provides an in-memory implementation of it.
//
// The store exposes, per segment and per field, either a multi-valued sorted
// byte-string accessor or a multi-valued sorted 64-bit integer accessor.
// Values are assumed already sorted and deduplicated per document; this
// package never re-sorts or re-deduplicates.
//
// Byte-string accessors reuse an internal buffer: a slice returned by Next
// is valid only until the next call on the same accessor. Callers that
// retain a value must copy it first.
package docvalues
