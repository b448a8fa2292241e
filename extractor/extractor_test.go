package extractor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/freqitems/docvalues"
	"github.com/hupe1980/freqitems/field"
	"github.com/hupe1980/freqitems/valuesource"
)

type collectedTuple struct {
	segment uint64
	doc     uint32
	field   string
	values  []string
}

type recordingSink struct {
	mu     sync.Mutex
	tuples []collectedTuple
}

func (s *recordingSink) sink(segmentID uint64, doc uint32, tuple valuesource.Tuple) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var values []string
	for _, v := range tuple.Values {
		display, err := tuple.Field.FormatValue(v)
		if err != nil {
			return err
		}
		values = append(values, display)
	}
	s.tuples = append(s.tuples, collectedTuple{
		segment: segmentID,
		doc:     doc,
		field:   tuple.Field.Name(),
		values:  values,
	})
	return nil
}

func buildSources(t *testing.T) []valuesource.ValueSource {
	t.Helper()

	fruit, err := valuesource.Build(valuesource.Config{FieldName: "fruit", Kind: field.KindBytes}, 0, nil)
	require.NoError(t, err)
	code, err := valuesource.Build(valuesource.Config{FieldName: "code", Kind: field.KindLong}, 1, nil)
	require.NoError(t, err)
	return []valuesource.ValueSource{fruit, code}
}

func buildSegments(t *testing.T) []docvalues.Segment {
	t.Helper()

	s1 := docvalues.NewMemSegment(1, 3)
	require.NoError(t, s1.AddBytes("fruit", 0, []byte("apple")))
	require.NoError(t, s1.AddBytes("fruit", 2, []byte("banana"), []byte("apple")))
	require.NoError(t, s1.AddLongs("code", 0, 404))
	require.NoError(t, s1.AddLongs("code", 1, 200, 500))

	s2 := docvalues.NewMemSegment(2, 2)
	require.NoError(t, s2.AddBytes("fruit", 1, []byte("cherry")))
	require.NoError(t, s2.AddLongs("code", 0, 301))

	return []docvalues.Segment{s1, s2}
}

func TestRun(t *testing.T) {
	ex := New(buildSources(t), WithMaxParallel(2))

	var sink recordingSink
	require.NoError(t, ex.Run(context.Background(), buildSegments(t), sink.sink))

	assert.ElementsMatch(t, []collectedTuple{
		{segment: 1, doc: 0, field: "fruit", values: []string{"apple"}},
		{segment: 1, doc: 2, field: "fruit", values: []string{"apple", "banana"}},
		{segment: 1, doc: 0, field: "code", values: []string{"404"}},
		{segment: 1, doc: 1, field: "code", values: []string{"200", "500"}},
		{segment: 2, doc: 1, field: "fruit", values: []string{"cherry"}},
		{segment: 2, doc: 0, field: "code", values: []string{"301"}},
	}, sink.tuples)
}

func TestRunNoSegments(t *testing.T) {
	ex := New(buildSources(t))

	var sink recordingSink
	require.NoError(t, ex.Run(context.Background(), nil, sink.sink))
	assert.Empty(t, sink.tuples)
}

func TestRunSinkError(t *testing.T) {
	ex := New(buildSources(t))
	sinkErr := errors.New("sink full")

	err := ex.Run(context.Background(), buildSegments(t), func(uint64, uint32, valuesource.Tuple) error {
		return sinkErr
	})
	require.ErrorIs(t, err, sinkErr)
}

func TestRunMissingColumn(t *testing.T) {
	// Segment without the "code" column: opening the collector fails and
	// the error surfaces with segment context.
	seg := docvalues.NewMemSegment(7, 1)
	require.NoError(t, seg.AddBytes("fruit", 0, []byte("apple")))

	ex := New(buildSources(t))

	var sink recordingSink
	err := ex.Run(context.Background(), []docvalues.Segment{seg}, sink.sink)
	require.ErrorIs(t, err, docvalues.ErrUnknownField)
	assert.Contains(t, err.Error(), "segment 7")
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := New(buildSources(t))

	var sink recordingSink
	err := ex.Run(ctx, buildSegments(t), sink.sink)
	require.ErrorIs(t, err, context.Canceled)
}
