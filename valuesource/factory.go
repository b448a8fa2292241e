package valuesource

import (
	"fmt"

	"github.com/hupe1980/freqitems/field"
)

// Config is the per-field configuration handed in by the owning engine.
type Config struct {
	// FieldName is the name of the store-backed field. Empty means the
	// configuration does not resolve to a stored field.
	FieldName string
	// Kind selects the value-source variant.
	Kind field.ValueKind
	// Format is the display format bound into the field descriptor. Nil
	// defaults to field.RawFormat.
	Format field.Format
	// Scripted marks a computed (on-the-fly) value configuration. Scripted
	// fields cannot back a value source.
	Scripted bool
}

// builders maps each value kind to its variant constructor. The table is
// closed and statically constructed; adding a kind means adding a row here.
var builders = map[field.ValueKind]func(field.Field, FilterCompiler) (ValueSource, error){
	field.KindBytes: func(fld field.Field, filters FilterCompiler) (ValueSource, error) {
		var filter StringFilter
		if filters != nil {
			var err error
			if filter, err = filters.CompileString(fld.Format()); err != nil {
				return nil, fmt.Errorf("compile string filter for %q: %w", fld.Name(), err)
			}
		}
		return NewKeywordValueSource(fld, filter), nil
	},
	field.KindLong: func(fld field.Field, filters FilterCompiler) (ValueSource, error) {
		var filter LongFilter
		if filters != nil {
			var err error
			if filter, err = filters.CompileLong(fld.Format()); err != nil {
				return nil, fmt.Errorf("compile long filter for %q: %w", fld.Name(), err)
			}
		}
		return NewNumericValueSource(fld, filter), nil
	},
}

// Build constructs the value-source variant matching the configured value
// kind. id becomes the field's stable merge key and must be unique within
// the request. A nil filters compiler produces sources that accept every
// value.
//
// Configurations that are not backed by persistent per-document storage are
// rejected with ErrScriptedField.
func Build(cfg Config, id uint32, filters FilterCompiler) (ValueSource, error) {
	if cfg.Scripted || cfg.FieldName == "" {
		return nil, fmt.Errorf("%w (field %q)", ErrScriptedField, cfg.FieldName)
	}

	build, ok := builders[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", field.ErrUnsupportedValueKind, cfg.Kind)
	}

	format := cfg.Format
	if format == nil {
		format = field.RawFormat{}
	}

	return build(field.New(cfg.FieldName, id, format, cfg.Kind), filters)
}
