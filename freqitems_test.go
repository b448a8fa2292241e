package freqitems

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/freqitems/blobstore"
	"github.com/hupe1980/freqitems/docvalues"
	"github.com/hupe1980/freqitems/extractor"
	"github.com/hupe1980/freqitems/field"
	"github.com/hupe1980/freqitems/includeexclude"
	"github.com/hupe1980/freqitems/valuesource"
)

func testSpecs() []SourceSpec {
	return []SourceSpec{
		{
			Config: valuesource.Config{FieldName: "category", Kind: field.KindBytes},
			Filter: &includeexclude.IncludeExclude{Exclude: "internal_.*"},
		},
		{
			Config: valuesource.Config{FieldName: "error_code", Kind: field.KindLong},
			Filter: &includeexclude.IncludeExclude{Min: Int64(400), Max: Int64(599)},
		},
		{
			Config: valuesource.Config{FieldName: "label", Kind: field.KindBytes},
		},
	}
}

func TestBuildSources(t *testing.T) {
	sources, err := BuildSources(testSpecs())
	require.NoError(t, err)
	require.Len(t, sources, 3)

	for i, src := range sources {
		assert.Equal(t, uint32(i), src.Field().ID())
	}
	assert.Equal(t, "category", sources[0].Field().Name())
	assert.Equal(t, field.KindLong, sources[1].Field().Kind())
}

func TestBuildSourcesError(t *testing.T) {
	specs := []SourceSpec{
		{Config: valuesource.Config{FieldName: "derived", Kind: field.KindBytes, Scripted: true}},
	}

	_, err := BuildSources(specs)
	require.ErrorIs(t, err, ErrScriptedField)
}

func TestEndToEndExtraction(t *testing.T) {
	sources, err := BuildSources(testSpecs())
	require.NoError(t, err)

	seg := docvalues.NewMemSegment(1, 4)
	require.NoError(t, seg.AddBytes("category", 0, []byte("checkout"), []byte("internal_probe")))
	require.NoError(t, seg.AddBytes("category", 1, []byte("internal_probe")))
	require.NoError(t, seg.AddBytes("label", 0, []byte("eu-west")))
	require.NoError(t, seg.AddLongs("error_code", 0, 200, 503))
	require.NoError(t, seg.AddLongs("error_code", 3, 301))

	var mu sync.Mutex
	got := map[string][]string{}
	sink := func(_ uint64, doc uint32, tuple valuesource.Tuple) error {
		mu.Lock()
		defer mu.Unlock()
		for _, v := range tuple.Values {
			display, err := tuple.Field.FormatValue(v)
			if err != nil {
				return err
			}
			got[tuple.Field.Name()] = append(got[tuple.Field.Name()], display)
		}
		return nil
	}

	ex := NewExtractor(sources, extractor.WithMaxParallel(2))
	require.NoError(t, ex.Run(context.Background(), []docvalues.Segment{seg}, sink))

	// internal_probe is excluded, 200 and 301 fall outside [400,599].
	assert.Equal(t, []string{"checkout"}, got["category"])
	assert.Equal(t, []string{"503"}, got["error_code"])
	assert.Equal(t, []string{"eu-west"}, got["label"])
}

func TestPublishLoadFields(t *testing.T) {
	sources, err := BuildSources(testSpecs())
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, PublishFields(ctx, store, "request-7/fields", sources))

	fields, err := LoadFields(ctx, store, "request-7/fields")
	require.NoError(t, err)
	require.Len(t, fields, len(sources))

	for i, fld := range fields {
		assert.True(t, sources[i].Field().Equal(fld), "field %d", i)
	}
}

func TestLoadFieldsMissing(t *testing.T) {
	store := blobstore.NewMemoryStore()

	_, err := LoadFields(context.Background(), store, "nope")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestPublishLoadSegment(t *testing.T) {
	seg := docvalues.NewMemSegment(9, 5)
	require.NoError(t, seg.AddBytes("category", 2, []byte("alpha"), []byte("beta")))
	require.NoError(t, seg.AddLongs("error_code", 2, 404))

	store := blobstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, PublishSegment(ctx, store, "segments/9", seg, docvalues.CompressionZstd))

	got, err := LoadSegment(ctx, store, "segments/9")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), got.ID())
	assert.Equal(t, uint32(5), got.MaxDoc())

	r, err := got.Reader()
	require.NoError(t, err)
	values, err := r.BytesValues("category")
	require.NoError(t, err)
	ok, err := values.AdvanceExact(2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, values.Count())
}
