package valuesource

import (
	"errors"

	"github.com/hupe1980/freqitems/docvalues"
	"github.com/hupe1980/freqitems/field"
)

// ErrScriptedField is returned when a field configuration does not resolve
// to persistent per-document storage. Collectors must be cheaply
// re-openable per segment, which rules out computed values.
var ErrScriptedField = errors.New("scripted fields are not supported")

// Tuple is the unit of data handed to the mining engine: one field and the
// accepted values of one document.
//
// An empty Values slice covers three indistinguishable cases: the document
// is absent from the column, it has zero stored values, or every value was
// rejected by the filter.
type Tuple struct {
	Field  field.Field
	Values []field.Value
}

// ValueCollector extracts the accepted values of single documents within
// one segment.
//
// A collector is strictly segment-scoped: it must not be reused for another
// segment or shared between goroutines. Its only state is the underlying
// column iterator position.
type ValueCollector interface {
	Collect(doc uint32) (Tuple, error)
}

// ValueSource owns one field descriptor and an optional filter, and opens a
// private ValueCollector per segment.
//
// Sources are immutable after construction and safe for concurrent read-only
// use by independently scheduled segment tasks.
type ValueSource interface {
	// Field returns the descriptor of the configured field.
	Field() field.Field
	// ValueCollector binds a collector to one segment. I/O errors from the
	// underlying store propagate unchanged.
	ValueCollector(r docvalues.Reader) (ValueCollector, error)
}

// StringFilter accepts or rejects a single byte-string value. The passed
// slice may alias a transient store buffer; implementations must not retain
// it. A nil StringFilter accepts everything.
type StringFilter interface {
	Accept(v []byte) bool
}

// LongFilter accepts or rejects a single 64-bit integer value. A nil
// LongFilter accepts everything.
type LongFilter interface {
	Accept(v int64) bool
}

// FilterCompiler is the boundary to the predicate compiler collaborator: it
// turns a user-facing include/exclude specification into the accept
// predicate matching a field's value kind. The field's display format is
// provided because specifications are written against display values.
type FilterCompiler interface {
	CompileString(f field.Format) (StringFilter, error)
	CompileLong(f field.Format) (LongFilter, error)
}
