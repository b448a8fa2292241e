package valuesource

import (
	"fmt"

	"github.com/hupe1980/freqitems/docvalues"
	"github.com/hupe1980/freqitems/field"
)

// NumericValueSource extracts 64-bit integer values from a multi-valued,
// per-document sorted and deduplicated column.
type NumericValueSource struct {
	fld    field.Field
	filter LongFilter
}

// NewNumericValueSource creates a numeric source. A nil filter accepts
// every value.
func NewNumericValueSource(fld field.Field, filter LongFilter) *NumericValueSource {
	return &NumericValueSource{fld: fld, filter: filter}
}

// Field implements ValueSource.
func (s *NumericValueSource) Field() field.Field { return s.fld }

// ValueCollector implements ValueSource.
func (s *NumericValueSource) ValueCollector(r docvalues.Reader) (ValueCollector, error) {
	values, err := r.LongValues(s.fld.Name())
	if err != nil {
		return nil, fmt.Errorf("open long column %q: %w", s.fld.Name(), err)
	}
	return &numericCollector{fld: s.fld, filter: s.filter, values: values}, nil
}

type numericCollector struct {
	fld    field.Field
	filter LongFilter
	values docvalues.LongValues
}

// Collect returns the accepted values of doc in column sort order.
// Integers are returned by value; no copy step is needed.
func (c *numericCollector) Collect(doc uint32) (Tuple, error) {
	empty := Tuple{Field: c.fld}

	ok, err := c.values.AdvanceExact(doc)
	if err != nil {
		return empty, err
	}
	if !ok {
		return empty, nil
	}

	count := c.values.Count()
	if count == 0 {
		return empty, nil
	}

	accepted := make([]field.Value, 0, count)
	for range count {
		v, err := c.values.Next()
		if err != nil {
			return empty, err
		}
		if c.filter == nil || c.filter.Accept(v) {
			accepted = append(accepted, field.LongValue(v))
		}
	}
	return Tuple{Field: c.fld, Values: accepted}, nil
}
