package clk

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pipeline hashes whole datasets into CLKs in parallel.
//
// Rows are split into contiguous chunks, each chunk is hashed by a worker,
// and results are placed back by chunk index, so the output order is the
// input order no matter which worker finishes first.
type Pipeline struct {
	enc       *Encoder
	validate  bool
	progress  ProgressSink
	logger    *slog.Logger
	workers   int
	chunkSize int

	// encode is swapped out in tests to simulate worker failures.
	encode func(row []string) (*bitset.BitSet, int, error)

	progressMu sync.Mutex
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithValidation enables or disables checking rows against the schema's
// field constraints before hashing. Validation is on by default. Row
// lengths are always checked.
func WithValidation(validate bool) Option {
	return func(p *Pipeline) {
		p.validate = validate
	}
}

// WithProgress sets the sink notified as chunks complete.
func WithProgress(sink ProgressSink) Option {
	return func(p *Pipeline) {
		p.progress = sink
	}
}

// WithLogger sets the logger runs are logged to. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithWorkers sets the maximum number of chunks hashed concurrently. The
// default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.workers = n
	}
}

// WithChunkSize fixes the number of rows per chunk instead of choosing it
// from the dataset size with ChunkSize.
func WithChunkSize(n int) Option {
	return func(p *Pipeline) {
		p.chunkSize = n
	}
}

// NewPipeline creates a Pipeline for schema. keys must have been derived for
// the same schema and are shared read-only by all workers.
func NewPipeline(schema *Schema, keys KeyList, opts ...Option) (*Pipeline, error) {
	enc, err := NewEncoder(schema, keys)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		enc:      enc,
		validate: true,
		logger:   slog.Default(),
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", ErrConfig, p.workers)
	}
	if p.chunkSize < 0 {
		return nil, fmt.Errorf("%w: chunk size must not be negative, got %d", ErrConfig, p.chunkSize)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.encode = enc.EncodeFolded
	return p, nil
}

// chunkResult is what a worker hands back for one chunk.
type chunkResult struct {
	clks      []string
	popcounts []int
}

// Run hashes rows and returns one serialized CLK per row, in row order.
//
// All validation happens before any hashing starts. If any chunk fails,
// Run returns the first error and no CLKs.
func (p *Pipeline) Run(ctx context.Context, rows [][]string) ([]string, error) {
	fields := p.enc.schema.Fields
	if p.validate {
		if err := ValidateRows(fields, rows); err != nil {
			return nil, err
		}
	} else if err := ValidateRowLengths(fields, rows); err != nil {
		return nil, err
	}

	chunkSize := p.chunkSize
	if chunkSize == 0 {
		chunkSize = ChunkSize(len(rows))
	}
	numChunks := (len(rows) + chunkSize - 1) / chunkSize

	log := p.logger.With("run_id", uuid.NewString())
	log.Info("hashing entities",
		"entities", len(rows),
		"chunk_size", chunkSize,
		"chunks", numChunks,
		"workers", p.workers,
		"schema_fingerprint", fmt.Sprintf("%016x", p.enc.schema.Fingerprint()),
	)
	start := time.Now()

	if p.progress != nil {
		p.progress.Init(len(rows))
	}

	results := make([]chunkResult, numChunks)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for idx := range numChunks {
		if gctx.Err() != nil {
			break
		}
		lo := idx * chunkSize
		hi := min(lo+chunkSize, len(rows))
		chunk := rows[lo:hi]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: chunk %d: panic: %v", ErrWorker, idx, r)
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.hashChunk(chunk, lo)
			if err != nil {
				return fmt.Errorf("%w: chunk %d: %w", ErrWorker, idx, err)
			}
			results[idx] = res
			p.notify(res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("hashing failed", "error", err)
		return nil, err
	}
	// errgroup only reports worker errors; a cancelled parent can stop
	// submission early without one.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clks := make([]string, 0, len(rows))
	for _, res := range results {
		clks = append(clks, res.clks...)
	}

	if p.progress != nil {
		p.progress.Finish()
	}
	log.Info("hashing complete", "entities", len(clks), "duration", time.Since(start))
	return clks, nil
}

// hashChunk encodes, folds and serializes every row of chunk. offset is the
// index of the chunk's first row in the dataset.
func (p *Pipeline) hashChunk(chunk [][]string, offset int) (chunkResult, error) {
	res := chunkResult{
		clks:      make([]string, len(chunk)),
		popcounts: make([]int, len(chunk)),
	}
	for i, row := range chunk {
		v, count, err := p.encode(row)
		if err != nil {
			return chunkResult{}, fmt.Errorf("row %d: %w", offset+i, err)
		}
		res.clks[i] = Serialize(v)
		res.popcounts[i] = count
	}
	return res, nil
}

func (p *Pipeline) notify(res chunkResult) {
	if p.progress == nil {
		return
	}
	p.progressMu.Lock()
	defer p.progressMu.Unlock()
	p.progress.Advance(len(res.clks), res.popcounts)
}

// GenerateCLKs derives keys from secrets using the schema's KDF parameters
// and hashes rows with a new Pipeline.
func GenerateCLKs(ctx context.Context, rows [][]string, schema *Schema, secrets [][]byte, opts ...Option) ([]string, error) {
	keys, err := DeriveKeys(secrets, len(schema.Fields), schema.KDF)
	if err != nil {
		return nil, err
	}
	p, err := NewPipeline(schema, keys, opts...)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, rows)
}
