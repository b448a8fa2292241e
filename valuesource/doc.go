// Package valuesource extracts per-document field values from a columnar
// store and hands them, filtered and owned, to a set-mining engine as
// (field, values) tuples.
//
// A ValueSource is built once per configured field at request setup and is
// immutable afterwards; segment-processing tasks share it read-only. Each
// task obtains its own ValueCollector, a segment-scoped cursor that must not
// be shared across goroutines or reused for another segment.
//
// This layer decides nothing about how itemsets are counted, merged or
// reduced. It is a pass-through with filtering and copy semantics only: no
// retries, no caching, no cancellation.
package valuesource
