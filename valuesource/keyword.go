package valuesource

import (
	"bytes"
	"fmt"

	"github.com/hupe1980/freqitems/docvalues"
	"github.com/hupe1980/freqitems/field"
)

// KeywordValueSource extracts byte-string values from a multi-valued,
// per-document sorted and deduplicated column.
type KeywordValueSource struct {
	fld    field.Field
	filter StringFilter
}

// NewKeywordValueSource creates a keyword source. A nil filter accepts
// every value.
func NewKeywordValueSource(fld field.Field, filter StringFilter) *KeywordValueSource {
	return &KeywordValueSource{fld: fld, filter: filter}
}

// Field implements ValueSource.
func (s *KeywordValueSource) Field() field.Field { return s.fld }

// ValueCollector implements ValueSource.
func (s *KeywordValueSource) ValueCollector(r docvalues.Reader) (ValueCollector, error) {
	values, err := r.BytesValues(s.fld.Name())
	if err != nil {
		return nil, fmt.Errorf("open bytes column %q: %w", s.fld.Name(), err)
	}
	return &keywordCollector{fld: s.fld, filter: s.filter, values: values}, nil
}

type keywordCollector struct {
	fld    field.Field
	filter StringFilter
	values docvalues.BytesValues
}

// Collect returns the accepted values of doc in column sort order.
//
// The column exposes each value through a transient buffer that the next
// store call overwrites, so every accepted value is deep-copied before it
// crosses the collector boundary.
func (c *keywordCollector) Collect(doc uint32) (Tuple, error) {
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
			accepted = append(accepted, field.BytesValue(bytes.Clone(v)))
		}
	}
	return Tuple{Field: c.fld, Values: accepted}, nil
}
