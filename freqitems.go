package freqitems

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/freqitems/blobstore"
	"github.com/hupe1980/freqitems/docvalues"
	"github.com/hupe1980/freqitems/extractor"
	"github.com/hupe1980/freqitems/field"
	"github.com/hupe1980/freqitems/includeexclude"
	"github.com/hupe1980/freqitems/valuesource"
)

// SourceSpec pairs one field configuration with its optional
// include/exclude specification.
type SourceSpec struct {
	Config valuesource.Config
	Filter *includeexclude.IncludeExclude
}

// BuildSources builds one value source per spec, assigning field ids in
// spec order. Ids are the stable merge keys for cross-execution-unit
// result merging, so all participating units must build from the same spec
// list.
func BuildSources(specs []SourceSpec) ([]valuesource.ValueSource, error) {
	sources := make([]valuesource.ValueSource, 0, len(specs))
	for i, spec := range specs {
		var compiler valuesource.FilterCompiler
		if !spec.Filter.IsZero() {
			compiler = spec.Filter
		}

		src, err := valuesource.Build(spec.Config, uint32(i), compiler)
		if err != nil {
			return nil, fmt.Errorf("build source %d (%q): %w", i, spec.Config.FieldName, err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// NewExtractor creates a segment fan-out extractor over the given sources.
func NewExtractor(sources []valuesource.ValueSource, optFns ...func(o *extractor.Options)) *extractor.Extractor {
	return extractor.New(sources, optFns...)
}

// Int64 returns a pointer to v, for includeexclude bound literals.
func Int64(v int64) *int64 { return &v }

// PublishFields writes the concatenated wire encoding of the sources' field
// descriptors to a blob, so a remote execution unit can merge partial
// results by field identity.
func PublishFields(ctx context.Context, store blobstore.BlobStore, name string, sources []valuesource.ValueSource) error {
	var buf []byte
	var err error
	for _, src := range sources {
		if buf, err = src.Field().AppendBinary(buf); err != nil {
			return fmt.Errorf("encode field %q: %w", src.Field().Name(), err)
		}
	}
	return store.Put(ctx, name, buf)
}

// LoadFields reads a blob written by PublishFields.
func LoadFields(ctx context.Context, store blobstore.BlobStore, name string) ([]field.Field, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data, err := io.ReadAll(blobstore.BlobReader(blob))
	if err != nil {
		return nil, err
	}

	var fields []field.Field
	for len(data) > 0 {
		fld, n, err := field.DecodeField(data)
		if err != nil {
			return nil, fmt.Errorf("decode field %d: %w", len(fields), err)
		}
		data = data[n:]
		fields = append(fields, fld)
	}
	return fields, nil
}

// PublishSegment streams a segment column snapshot into a blob.
func PublishSegment(ctx context.Context, store blobstore.BlobStore, name string, seg *docvalues.MemSegment, codec docvalues.Compression) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := docvalues.WriteSnapshot(w, seg, codec); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// LoadSegment reads a blob written by PublishSegment.
func LoadSegment(ctx context.Context, store blobstore.BlobStore, name string) (*docvalues.MemSegment, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	return docvalues.ReadSnapshot(blobstore.BlobReader(blob))
}
