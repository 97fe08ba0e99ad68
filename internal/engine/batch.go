package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/genix/internal/generator"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidCount is returned when a batch is asked for fewer than one
// password.
var ErrInvalidCount = errors.New("invalid count: must be at least 1")

// DefaultConcurrency is the number of passwords drawn in parallel.
const DefaultConcurrency = 4

// SourceFactory creates the random source for one batch item.
type SourceFactory func() (generator.Source, error)

// secureSourceFactory returns a fresh crypto-seeded source per item.
func secureSourceFactory() (generator.Source, error) {
	return generator.NewSecureSource()
}

// BatchGenerator draws several passwords from one plan concurrently.
// Every item gets its own Source, so no random state is shared between
// goroutines.
type BatchGenerator struct {
	concurrency int
	logger      *slog.Logger
	newSource   SourceFactory
}

// BatchOption configures a BatchGenerator.
type BatchOption func(*BatchGenerator)

// WithConcurrency sets the maximum number of concurrent draws.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchGenerator) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithLogger sets the logger used for batch progress.
func WithLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchGenerator) {
		b.logger = logger
	}
}

// WithSourceFactory replaces the per-item source. Tests use it to inject
// seeded sources.
func WithSourceFactory(f SourceFactory) BatchOption {
	return func(b *BatchGenerator) {
		if f != nil {
			b.newSource = f
		}
	}
}

// NewBatchGenerator creates a BatchGenerator.
func NewBatchGenerator(opts ...BatchOption) *BatchGenerator {
	b := &BatchGenerator{
		concurrency: DefaultConcurrency,
		newSource:   secureSourceFactory,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Generate prepares req and draws count passwords.
//
// Construction errors are returned before any goroutine starts. Results keep
// their index order. If any draw fails or ctx is cancelled, no results are
// returned.
func (b *BatchGenerator) Generate(ctx context.Context, req Request, count int) ([]Result, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	plan, err := Prepare(req)
	if err != nil {
		return nil, err
	}
	return b.Draw(ctx, plan, count)
}

// Draw draws count passwords from an already prepared plan.
func (b *BatchGenerator) Draw(ctx context.Context, plan *Plan, count int) ([]Result, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	b.logger.Debug("starting batch generation",
		"style", plan.Style(),
		"length", plan.Length(),
		"bits", plan.Report().Bits,
		"count", count,
		"concurrency", b.concurrency,
	)
	startTime := time.Now()

	// Each goroutine writes only its own index.
	results := make([]Result, count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i := range count {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			src, err := b.newSource()
			if err != nil {
				return err
			}
			res, err := plan.Draw(src)
			if err != nil {
				return fmt.Errorf("item %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		b.logger.Warn("batch generation failed", "error", err)
		return nil, err
	}

	b.logger.Debug("batch generation complete",
		"count", count,
		"elapsed", time.Since(startTime),
	)
	return results, nil
}
