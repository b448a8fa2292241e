// Package extractor drives per-segment value extraction: it fans segments
// out to independently scheduled tasks, opens a private collector per
// source per task, and streams every non-empty (field, values) tuple to a
// caller-supplied sink.
//
// Counting, merging and reducing of itemsets stay with the consumer; the
// extractor only owns the segment-per-task execution model.
package extractor

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/freqitems/docvalues"
	"github.com/hupe1980/freqitems/valuesource"
)

// Sink receives one tuple per document per field. It is called concurrently
// from segment tasks and must be safe for concurrent use.
type Sink func(segmentID uint64, doc uint32, tuple valuesource.Tuple) error

// Options configure an Extractor.
type Options struct {
	// Logger receives task-level structured logs. Defaults to a discard
	// logger.
	Logger *slog.Logger
	// MaxParallel bounds the number of concurrently processed segments.
	// Zero or negative means one task per segment.
	MaxParallel int
}

// Extractor owns a fixed set of value sources and runs them over segments.
// Immutable after construction; Run may be called multiple times.
type Extractor struct {
	sources     []valuesource.ValueSource
	logger      *slog.Logger
	maxParallel int
}

// New creates an Extractor over the given sources.
func New(sources []valuesource.ValueSource, optFns ...func(o *Options)) *Extractor {
	opts := Options{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Extractor{
		sources:     sources,
		logger:      opts.Logger,
		maxParallel: opts.MaxParallel,
	}
}

// WithLogger configures the task logger.
func WithLogger(logger *slog.Logger) func(o *Options) {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithMaxParallel bounds concurrent segment tasks.
func WithMaxParallel(n int) func(o *Options) {
	return func(o *Options) {
		o.MaxParallel = n
	}
}

// Run processes every segment in its own task and forwards non-empty tuples
// to sink. The first failing task cancels the rest; the error propagates
// unchanged apart from added context. Empty tuples (absent document, no
// values, everything filtered) are dropped here, not forwarded.
func (e *Extractor) Run(ctx context.Context, segments []docvalues.Segment, sink Sink) error {
	g, ctx := errgroup.WithContext(ctx)
	if e.maxParallel > 0 {
		g.SetLimit(e.maxParallel)
	}

	for _, seg := range segments {
		g.Go(func() error {
			if err := e.runSegment(ctx, seg, sink); err != nil {
				e.logger.ErrorContext(ctx, "segment task failed",
					"segment", seg.ID(),
					"error", err,
				)
				return fmt.Errorf("segment %d: %w", seg.ID(), err)
			}
			return nil
		})
	}

	return g.Wait()
}

func (e *Extractor) runSegment(ctx context.Context, seg docvalues.Segment, sink Sink) error {
	reader, err := seg.Reader()
	if err != nil {
		return err
	}

	// Collectors are private to this task; they carry mutable iterator
	// state and must not leave it.
	collectors := make([]valuesource.ValueCollector, len(e.sources))
	for i, src := range e.sources {
		if collectors[i], err = src.ValueCollector(reader); err != nil {
			return err
		}
	}

	e.logger.DebugContext(ctx, "segment task started",
		"segment", seg.ID(),
		"max_doc", seg.MaxDoc(),
		"sources", len(collectors),
	)

	maxDoc := seg.MaxDoc()
	for doc := uint32(0); doc < maxDoc; doc++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, collector := range collectors {
			tuple, err := collector.Collect(doc)
			if err != nil {
				return err
			}
			if len(tuple.Values) == 0 {
				continue
			}
			if err := sink(seg.ID(), doc, tuple); err != nil {
				return err
			}
		}
	}

	e.logger.DebugContext(ctx, "segment task finished", "segment", seg.ID())
	return nil
}
