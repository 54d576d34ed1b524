package lineprocessor

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/baditaflorin/go_naco/internal/core/domain"
)

// MaxJobQueueSize limits the number of pending batches
const MaxJobQueueSize = 32

// lineJob is a batch of raw lines handed to a worker
type lineJob struct {
	seq   int
	lines *[]string
}

// lineJobResult holds the normalized lines of one batch
type lineJobResult struct {
	seq   int
	lines []string
}

// processLinesParallel spreads batches of lines over a worker pool and
// writes the results back in input order
func (p *Processor) processLinesParallel(
	ctx context.Context,
	reader io.Reader,
	writer io.Writer,
) (domain.StreamStats, error) {
	startTime := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan lineJob, MaxJobQueueSize)
	results := make(chan lineJobResult, MaxJobQueueSize)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.lineWorker(ctx, jobs, results, &wg)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var stats domain.StreamStats
	readDone := make(chan error, 1)

	go func() {
		defer close(jobs)

		seq := 0
		batch := p.linePool.Get()
		send := func() error {
			if len(*batch) == 0 {
				return nil
			}
			select {
			case jobs <- lineJob{seq: seq, lines: batch}:
				seq++
				batch = p.linePool.Get()
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lines, bytesProcessed, err := p.scanLines(ctx, reader, func(line string) error {
			*batch = append(*batch, line)
			if len(*batch) >= p.batchSize {
				return send()
			}
			return nil
		})
		if err == nil {
			err = send()
		}
		p.linePool.Put(batch)

		stats.LinesRead = lines
		stats.BytesProcessed = bytesProcessed
		readDone <- err
	}()

	// Results arrive out of order; hold them until their turn comes
	out := bufio.NewWriterSize(writer, p.chunkSize)
	waiting := make(map[int][]string)
	next := 0
	var writeErr error

	for result := range results {
		if writeErr != nil {
			continue
		}
		waiting[result.seq] = result.lines

		for {
			lines, ok := waiting[next]
			if !ok {
				break
			}
			delete(waiting, next)
			next++

			for _, line := range lines {
				if _, err := out.WriteString(line); err != nil {
					writeErr = err
					break
				}
				if err := out.WriteByte(LF); err != nil {
					writeErr = err
					break
				}
				stats.LinesWritten++
			}
			if writeErr != nil {
				cancel()
				break
			}
		}
	}

	readErr := <-readDone
	if writeErr == nil {
		writeErr = out.Flush()
	}
	stats.Duration = time.Since(startTime)

	err := writeErr
	if err == nil {
		err = readErr
	}
	if err == nil && stats.LinesWritten != stats.LinesRead {
		// workers only drop batches once the context is done
		err = ctx.Err()
	}
	if err != nil {
		p.logger.Warn("Parallel line processing stopped", "error", err, "lines", stats.LinesRead)
		return stats, err
	}

	p.logger.Debug("Parallel line processing completed",
		"lines", stats.LinesRead,
		"bytes_processed", stats.BytesProcessed,
		"workers", p.workers,
		"duration", stats.Duration,
	)
	return stats, nil
}

// lineWorker normalizes batches until the job channel is closed
func (p *Processor) lineWorker(
	ctx context.Context,
	jobs <-chan lineJob,
	results chan<- lineJobResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			p.linePool.Put(job.lines)
			return
		}

		normalized := make([]string, len(*job.lines))
		for i, line := range *job.lines {
			normalized[i] = p.normalizer.Normalize(line)
		}
		p.linePool.Put(job.lines)

		select {
		case results <- lineJobResult{seq: job.seq, lines: normalized}:
		case <-ctx.Done():
			return
		}
	}
}
