package freqitems

import (
	"github.com/hupe1980/freqitems/docvalues"
	"github.com/hupe1980/freqitems/field"
	"github.com/hupe1980/freqitems/valuesource"
)

// Re-exported sentinels, so callers can branch on the error taxonomy
// without importing every subpackage.
var (
	// ErrScriptedField rejects value-source construction over a field that
	// is not backed by persistent per-document storage.
	ErrScriptedField = valuesource.ErrScriptedField

	// ErrUnsupportedValueKind signals a construction defect: a value kind
	// with no matching variant.
	ErrUnsupportedValueKind = field.ErrUnsupportedValueKind

	// ErrUnknownField is returned when a segment has no column for a
	// requested field.
	ErrUnknownField = docvalues.ErrUnknownField
)
