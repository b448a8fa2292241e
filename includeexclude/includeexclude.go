// Package includeexclude compiles user-facing include/exclude
// specifications into the kind-specific accept predicates consumed by
// package valuesource.
//
// A specification combines optional regular expressions, exact value sets
// and (for numeric fields) inclusive bounds. Matching happens against the
// display value produced by the field's format, so a specification written
// against formatted output behaves the same for both value kinds.
package includeexclude

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/hupe1980/freqitems/field"
	"github.com/hupe1980/freqitems/valuesource"
)

// ErrBadSpec is returned when a specification cannot be compiled for the
// requested value kind.
var ErrBadSpec = errors.New("includeexclude: invalid specification")

// IncludeExclude is a declarative filter specification. The zero value
// accepts everything. Compiled once at value-source construction; the
// resulting predicates are immutable.
type IncludeExclude struct {
	// Include is an anchored regular expression a display value must match.
	// Empty means no regex constraint.
	Include string
	// Exclude is an anchored regular expression that rejects matching
	// display values.
	Exclude string
	// IncludeValues restricts acceptance to this exact display-value set
	// when non-empty.
	IncludeValues []string
	// ExcludeValues rejects these exact display values.
	ExcludeValues []string
	// Min and Max are optional inclusive bounds for numeric fields.
	Min *int64
	Max *int64
}

// IsZero reports whether the specification constrains nothing.
func (ie *IncludeExclude) IsZero() bool {
	return ie == nil ||
		(ie.Include == "" && ie.Exclude == "" &&
			len(ie.IncludeValues) == 0 && len(ie.ExcludeValues) == 0 &&
			ie.Min == nil && ie.Max == nil)
}

// CompileString implements valuesource.FilterCompiler.
func (ie *IncludeExclude) CompileString(f field.Format) (valuesource.StringFilter, error) {
	if ie.IsZero() {
		return nil, nil
	}
	if ie.Min != nil || ie.Max != nil {
		return nil, fmt.Errorf("%w: numeric bounds on a byte-string field", ErrBadSpec)
	}

	m, err := ie.compileMatcher()
	if err != nil {
		return nil, err
	}
	return &stringFilter{format: f, m: m}, nil
}

// CompileLong implements valuesource.FilterCompiler.
func (ie *IncludeExclude) CompileLong(f field.Format) (valuesource.LongFilter, error) {
	if ie.IsZero() {
		return nil, nil
	}

	m, err := ie.compileMatcher()
	if err != nil {
		return nil, err
	}

	lf := &longFilter{format: f, m: m, min: ie.Min, max: ie.Max}

	// Exact sets are additionally parsed as integers so they can be checked
	// without formatting, mirroring how stores compare raw longs.
	if len(ie.IncludeValues) > 0 {
		if lf.includeSet, err = parseLongSet(ie.IncludeValues); err != nil {
			return nil, err
		}
		m.includeSet = nil
	}
	if len(ie.ExcludeValues) > 0 {
		if lf.excludeSet, err = parseLongSet(ie.ExcludeValues); err != nil {
			return nil, err
		}
		m.excludeSet = nil
	}

	return lf, nil
}

// matcher holds the kind-independent compiled constraints, applied to
// display values.
type matcher struct {
	include    *regexp.Regexp
	exclude    *regexp.Regexp
	includeSet map[string]struct{}
	excludeSet map[string]struct{}
}

func (ie *IncludeExclude) compileMatcher() (*matcher, error) {
	m := &matcher{}

	var err error
	if ie.Include != "" {
		if m.include, err = compileAnchored(ie.Include); err != nil {
			return nil, err
		}
	}
	if ie.Exclude != "" {
		if m.exclude, err = compileAnchored(ie.Exclude); err != nil {
			return nil, err
		}
	}
	if len(ie.IncludeValues) > 0 {
		m.includeSet = toSet(ie.IncludeValues)
	}
	if len(ie.ExcludeValues) > 0 {
		m.excludeSet = toSet(ie.ExcludeValues)
	}
	return m, nil
}

func (m *matcher) accept(display string) bool {
	if m.include != nil && !m.include.MatchString(display) {
		return false
	}
	if m.includeSet != nil {
		if _, ok := m.includeSet[display]; !ok {
			return false
		}
	}
	if m.exclude != nil && m.exclude.MatchString(display) {
		return false
	}
	if m.excludeSet != nil {
		if _, ok := m.excludeSet[display]; ok {
			return false
		}
	}
	return true
}

type stringFilter struct {
	format field.Format
	m      *matcher
}

// Accept implements valuesource.StringFilter. v may alias a transient store
// buffer; it is fully consumed before returning.
func (f *stringFilter) Accept(v []byte) bool {
	return f.m.accept(f.format.FormatBytes(v))
}

type longFilter struct {
	format     field.Format
	m          *matcher
	min, max   *int64
	includeSet map[int64]struct{}
	excludeSet map[int64]struct{}
}

// Accept implements valuesource.LongFilter.
func (f *longFilter) Accept(v int64) bool {
	if f.min != nil && v < *f.min {
		return false
	}
	if f.max != nil && v > *f.max {
		return false
	}
	if f.includeSet != nil {
		if _, ok := f.includeSet[v]; !ok {
			return false
		}
	}
	if f.excludeSet != nil {
		if _, ok := f.excludeSet[v]; ok {
			return false
		}
	}
	// Regex constraints apply to the formatted value.
	if f.m.include == nil && f.m.exclude == nil {
		return true
	}
	return f.m.accept(f.format.FormatLong(v))
}

func compileAnchored(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
	}
	return re, nil
}

func parseLongSet(values []string) (map[int64]struct{}, error) {
	set := make(map[int64]struct{}, len(values))
	for _, s := range values {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q is not an integer", ErrBadSpec, s)
		}
		set[v] = struct{}{}
	}
	return set, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
