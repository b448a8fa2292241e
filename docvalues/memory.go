package docvalues

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// MemSegment is an in-memory segment. Columns keep their values sorted and
// deduplicated per document, and track document presence in a roaring
// bitmap so absent documents are answered without touching the value maps.
//
// A MemSegment is mutable while it is being populated and must not be
// modified once readers have been opened.
type MemSegment struct {
	id     uint64
	maxDoc uint32

	bytesCols map[string]*bytesColumn
	longCols  map[string]*longColumn
}

type bytesColumn struct {
	docs   *roaring.Bitmap
	values map[uint32][][]byte
}

type longColumn struct {
	docs   *roaring.Bitmap
	values map[uint32][]int64
}

// NewMemSegment creates an empty segment with document ordinals in
// [0, maxDoc).
func NewMemSegment(id uint64, maxDoc uint32) *MemSegment {
	return &MemSegment{
		id:        id,
		maxDoc:    maxDoc,
		bytesCols: make(map[string]*bytesColumn),
		longCols:  make(map[string]*longColumn),
	}
}

// ID returns the segment id.
func (s *MemSegment) ID() uint64 { return s.id }

// MaxDoc returns the exclusive upper bound of document ordinals.
func (s *MemSegment) MaxDoc() uint32 { return s.maxDoc }

// AddBytes adds byte-string values for one document. Values are copied,
// sorted and deduplicated; calling AddBytes twice for the same document
// merges the value sets.
func (s *MemSegment) AddBytes(field string, doc uint32, vals ...[]byte) error {
	if doc >= s.maxDoc {
		return fmt.Errorf("doc %d out of range [0,%d)", doc, s.maxDoc)
	}
	if _, ok := s.longCols[field]; ok {
		return fmt.Errorf("field %q already holds long values", field)
	}

	col, ok := s.bytesCols[field]
	if !ok {
		col = &bytesColumn{docs: roaring.New(), values: make(map[uint32][][]byte)}
		s.bytesCols[field] = col
	}

	merged := col.values[doc]
	for _, v := range vals {
		merged = append(merged, bytes.Clone(v))
	}
	slices.SortFunc(merged, bytes.Compare)
	merged = slices.CompactFunc(merged, bytes.Equal)

	col.values[doc] = merged
	col.docs.Add(doc)
	return nil
}

// AddLongs adds integer values for one document, with the same merge, sort
// and dedup semantics as AddBytes.
func (s *MemSegment) AddLongs(field string, doc uint32, vals ...int64) error {
	if doc >= s.maxDoc {
		return fmt.Errorf("doc %d out of range [0,%d)", doc, s.maxDoc)
	}
	if _, ok := s.bytesCols[field]; ok {
		return fmt.Errorf("field %q already holds byte-string values", field)
	}

	col, ok := s.longCols[field]
	if !ok {
		col = &longColumn{docs: roaring.New(), values: make(map[uint32][]int64)}
		s.longCols[field] = col
	}

	merged := append(col.values[doc], vals...)
	slices.Sort(merged)
	merged = slices.Compact(merged)

	col.values[doc] = merged
	col.docs.Add(doc)
	return nil
}

// Reader implements Segment. Each call returns an independent reader; the
// accessors it opens carry their own iterator state and scratch buffers.
func (s *MemSegment) Reader() (Reader, error) {
	return &memReader{seg: s}, nil
}

type memReader struct {
	seg *MemSegment
}

func (r *memReader) BytesValues(field string) (BytesValues, error) {
	col, ok := r.seg.bytesCols[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return &memBytesValues{col: col}, nil
}

func (r *memReader) LongValues(field string) (LongValues, error) {
	col, ok := r.seg.longCols[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return &memLongValues{col: col}, nil
}

// errExhausted signals Next calls beyond Count; a caller bug, not a data
// condition.
var errExhausted = errors.New("docvalues: no more values for current document")

type memBytesValues struct {
	col     *bytesColumn
	cur     [][]byte
	i       int
	scratch []byte
}

func (v *memBytesValues) AdvanceExact(doc uint32) (bool, error) {
	v.cur = nil
	v.i = 0
	if !v.col.docs.Contains(doc) {
		return false, nil
	}
	v.cur = v.col.values[doc]
	return true, nil
}

func (v *memBytesValues) Count() int { return len(v.cur) }

// Next returns the next value through a reused scratch buffer, matching the
// transient-buffer contract of on-disk column readers.
func (v *memBytesValues) Next() ([]byte, error) {
	if v.i >= len(v.cur) {
		return nil, errExhausted
	}
	v.scratch = append(v.scratch[:0], v.cur[v.i]...)
	v.i++
	return v.scratch, nil
}

type memLongValues struct {
	col *longColumn
	cur []int64
	i   int
}

func (v *memLongValues) AdvanceExact(doc uint32) (bool, error) {
	v.cur = nil
	v.i = 0
	if !v.col.docs.Contains(doc) {
		return false, nil
	}
	v.cur = v.col.values[doc]
	return true, nil
}

func (v *memLongValues) Count() int { return len(v.cur) }

func (v *memLongValues) Next() (int64, error) {
	if v.i >= len(v.cur) {
		return 0, errExhausted
	}
	val := v.cur[v.i]
	v.i++
	return val, nil
}
