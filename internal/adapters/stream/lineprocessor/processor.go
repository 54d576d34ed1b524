package lineprocessor

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"time"

	"github.com/baditaflorin/go_naco/internal/core/domain"
	"github.com/baditaflorin/go_naco/internal/pool"
	"github.com/baditaflorin/go_naco/internal/ports"
)

// Constants for line processing
const (
	// DefaultChunkSize defines the default size of each chunk for reading
	DefaultChunkSize = 64 * 1024 // 64KB

	// DefaultBatchSize defines how many lines a parallel worker takes at once
	DefaultBatchSize = 256

	// Common newline characters
	CR = '\r'
	LF = '\n'
)

// Processor normalizes a stream of headings, one heading per line.
// Every input line produces exactly one output line, in input order;
// empty input lines produce empty output lines.
type Processor struct {
	logger     ports.Logger
	normalizer ports.Normalizer

	chunkPool *pool.BufferPool
	linePool  *pool.LinePool

	chunkSize   int
	batchSize   int
	workers     int
	useParallel bool
}

// ProcessingConfig defines configuration for line processing
type ProcessingConfig struct {
	ChunkSize   int
	BatchSize   int
	Workers     int
	UseParallel bool
}

// NewProcessor creates a new line processor
func NewProcessor(
	logger ports.Logger,
	normalizer ports.Normalizer,
	config ProcessingConfig,
) *Processor {
	// Use defaults if not specified
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	return &Processor{
		logger:      logger,
		normalizer:  normalizer,
		chunkPool:   pool.NewBufferPool(config.ChunkSize),
		linePool:    pool.NewLinePool(config.BatchSize),
		chunkSize:   config.ChunkSize,
		batchSize:   config.BatchSize,
		workers:     config.Workers,
		useParallel: config.UseParallel,
	}
}

// ProcessStream implements ports.StreamProcessor.
func (p *Processor) ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) (domain.StreamStats, error) {
	return p.ProcessLines(ctx, reader, writer)
}

// ProcessLines normalizes every line of reader and writes the results to
// writer. A nil writer discards the output but still counts lines.
func (p *Processor) ProcessLines(
	ctx context.Context,
	reader io.Reader,
	writer io.Writer,
) (domain.StreamStats, error) {
	if writer == nil {
		writer = io.Discard
	}
	if p.useParallel {
		return p.processLinesParallel(ctx, reader, writer)
	}
	return p.processLinesSequential(ctx, reader, writer)
}

// processLinesSequential normalizes and writes each line as soon as it is read
func (p *Processor) processLinesSequential(
	ctx context.Context,
	reader io.Reader,
	writer io.Writer,
) (domain.StreamStats, error) {
	startTime := time.Now()
	out := bufio.NewWriterSize(writer, p.chunkSize)

	var stats domain.StreamStats
	var err error
	stats.LinesRead, stats.BytesProcessed, err = p.scanLines(ctx, reader, func(line string) error {
		if _, werr := out.WriteString(p.normalizer.Normalize(line)); werr != nil {
			return werr
		}
		if werr := out.WriteByte(LF); werr != nil {
			return werr
		}
		stats.LinesWritten++
		return nil
	})
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	stats.Duration = time.Since(startTime)

	if err != nil {
		p.logger.Warn("Line processing stopped", "error", err, "lines", stats.LinesRead)
		return stats, err
	}

	p.logger.Debug("Line processing completed",
		"lines", stats.LinesRead,
		"bytes_processed", stats.BytesProcessed,
		"duration", stats.Duration,
	)
	return stats, nil
}

// scanLines reads reader chunk by chunk and calls emit for every line.
// LF, CRLF and lone CR all terminate a line, including when a CRLF pair
// is split across two reads. A final line without terminator is emitted
// if it is not empty.
func (p *Processor) scanLines(
	ctx context.Context,
	reader io.Reader,
	emit func(line string) error,
) (int, int64, error) {
	chunkBuffer := p.chunkPool.Get()
	defer p.chunkPool.Put(chunkBuffer)
	chunk := (*chunkBuffer)[:cap(*chunkBuffer)]

	var (
		lines          int
		bytesProcessed int64
		partial        []byte
		pendingCR      bool
	)

	flush := func(line []byte) error {
		if len(partial) > 0 {
			partial = append(partial, line...)
			line = partial
		}
		lines++
		err := emit(string(line))
		partial = partial[:0]
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return lines, bytesProcessed, err
		}

		n, readErr := reader.Read(chunk)
		if n > 0 {
			bytesProcessed += int64(n)
			data := chunk[:n]
			start := 0

			for i := 0; i < n; i++ {
				b := data[i]
				if pendingCR {
					pendingCR = false
					if b == LF {
						start = i + 1
						continue
					}
				}
				if b != LF && b != CR {
					continue
				}
				if err := flush(data[start:i]); err != nil {
					return lines, bytesProcessed, err
				}
				start = i + 1
				pendingCR = b == CR
			}

			partial = append(partial, data[start:]...)
		}

		if readErr == io.EOF {
			if len(partial) > 0 {
				if err := flush(nil); err != nil {
					return lines, bytesProcessed, err
				}
			}
			return lines, bytesProcessed, nil
		}
		if readErr != nil {
			return lines, bytesProcessed, readErr
		}
	}
}
