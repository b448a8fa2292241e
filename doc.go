// Package freqitems extracts filtered per-document field values from a
// columnar value store and feeds them to frequent-itemset mining engines as
// uniform (field, values) tuples.
//
// # Quick Start
//
//	sources, _ := freqitems.BuildSources([]freqitems.SourceSpec{
//	    {Config: valuesource.Config{FieldName: "category", Kind: field.KindBytes}},
//	    {
//	        Config: valuesource.Config{FieldName: "error_code", Kind: field.KindLong},
//	        Filter: &includeexclude.IncludeExclude{Min: freqitems.Int64(400), Max: freqitems.Int64(599)},
//	    },
//	})
//
//	ex := freqitems.NewExtractor(sources, extractor.WithMaxParallel(4))
//	_ = ex.Run(ctx, segments, func(segmentID uint64, doc uint32, tuple valuesource.Tuple) error {
//	    // hand tuple.Values to the mining engine
//	    return nil
//	})
//
// Field descriptors carry the identity needed to merge partial results
// computed on different execution units; PublishFields and LoadFields ship
// them through a blob store. Segment column snapshots travel the same way
// via PublishSegment and LoadSegment.
package freqitems
