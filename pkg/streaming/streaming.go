// Package streaming normalizes large collections of headings, one heading
// per line, without holding them in memory.
package streaming

import (
	"context"
	"io"

	"github.com/baditaflorin/go_naco/internal/adapters/logger"
	"github.com/baditaflorin/go_naco/internal/adapters/normalizer"
	"github.com/baditaflorin/go_naco/internal/adapters/stream"
	"github.com/baditaflorin/go_naco/internal/core/domain"
	"github.com/baditaflorin/go_naco/internal/ports"
	"github.com/baditaflorin/go_naco/internal/warmup"
	"github.com/baditaflorin/l"
)

// Result represents the outcome of normalizing a stream
type Result struct {
	LinesRead      int
	LinesWritten   int
	BytesProcessed int64
	ProcessingTime string // Duration as string for easy display
	Case           string
}

// Normalizer provides methods for streaming heading normalization
type Normalizer struct {
	processor  ports.StreamProcessor
	normalizer ports.Normalizer
	logger     ports.Logger
	mode       domain.CaseMode
}

// StreamingOption defines a functional option for configuring Normalizer
type StreamingOption func(*streamingConfig)

type streamingConfig struct {
	Case           string
	NormalizerType normalizer.NormalizerType
	Processor      stream.ProcessorConfig
	Logger         ports.Logger
	WarmUp         bool
}

// WithCase sets the case mode, "upper" (default) or "lower"
func WithCase(value string) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.Case = value
	}
}

// WithParallel enables normalization on a worker pool
func WithParallel(enable bool) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.Processor.UseParallel = enable
	}
}

// WithWorkers sets the number of parallel workers (0 = NumCPU)
func WithWorkers(n int) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.Processor.Workers = n
	}
}

// WithChunkSize sets the read chunk size in bytes
func WithChunkSize(size int) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.Processor.ChunkSize = size
	}
}

// WithBatchSize sets how many lines a parallel worker takes at once
func WithBatchSize(size int) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.Processor.BatchSize = size
	}
}

// WithEncoding sets the input encoding, e.g. "iso-8859-1". Empty means UTF-8.
func WithEncoding(label string) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.Processor.Encoding = label
	}
}

// WithFastNormalizer selects the single-pass table-driven normalizer
func WithFastNormalizer() StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.NormalizerType = normalizer.FastNormalizerType
	}
}

// WithLogger sets a logger. The caller keeps ownership and closes it.
func WithLogger(lg l.Logger) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithWarmUp runs the processor over sample headings before returning
func WithWarmUp(enable bool) StreamingOption {
	return func(cfg *streamingConfig) {
		cfg.WarmUp = enable
	}
}

// NewNormalizer creates a new streaming Normalizer. It fails when the
// encoding option names an unknown encoding. Without WithLogger nothing is
// logged.
func NewNormalizer(opts ...StreamingOption) (*Normalizer, error) {
	config := &streamingConfig{
		Case:           domain.CaseUpper,
		NormalizerType: normalizer.DefaultNormalizerType,
	}

	// Apply options
	for _, opt := range opts {
		opt(config)
	}

	// Log nothing unless a logger is provided
	if config.Logger == nil {
		config.Logger = logger.NewNopLogger()
	}

	mode := domain.ParseCaseMode(config.Case)
	norm := normalizer.NewNormalizerFactory().CreateNormalizer(config.NormalizerType, mode)

	processor, err := stream.NewProcessorFactory(config.Logger).CreateProcessorWithNormalizer(norm, config.Processor)
	if err != nil {
		return nil, err
	}

	n := &Normalizer{
		processor:  processor,
		normalizer: norm,
		logger:     config.Logger,
		mode:       mode,
	}

	if config.WarmUp {
		wc := warmup.DefaultWarmupConfig()
		wc.ForceGC = false
		mgr := warmup.NewManager(config.Logger, wc)
		mgr.RegisterNormalizer(norm)
		mgr.WarmUp(context.Background())
	}

	return n, nil
}

// Case returns the case mode the Normalizer was built with
func (n *Normalizer) Case() string {
	return n.mode.String()
}

// NormalizeStream reads headings from r, one per line, and writes each
// normalized heading followed by a newline to w. Line count and order are
// preserved, so output line i belongs to input line i.
func (n *Normalizer) NormalizeStream(ctx context.Context, r io.Reader, w io.Writer) (Result, error) {
	stats, err := n.processor.ProcessStream(ctx, r, w)
	return Result{
		LinesRead:      stats.LinesRead,
		LinesWritten:   stats.LinesWritten,
		BytesProcessed: stats.BytesProcessed,
		ProcessingTime: stats.Duration.String(),
		Case:           n.mode.String(),
	}, err
}

// NormalizeLines normalizes each element of lines. Unlike NormalizeStream
// an element may itself contain line breaks; it is still one heading.
func (n *Normalizer) NormalizeLines(ctx context.Context, lines []string) ([]string, error) {
	out := make([]string, len(lines))
	for i, line := range lines {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return out[:i], err
			}
		}
		out[i] = n.normalizer.Normalize(line)
	}
	return out, nil
}
