package warmup

import (
	"context"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_naco/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Number of headings in the generated sample
	SampleHeadings int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     1000,
		SampleHeadings: 200,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	processors  []ports.StreamProcessor
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// RegisterStreamProcessor adds a stream processor to be warmed up
func (wm *Manager) RegisterStreamProcessor(proc ports.StreamProcessor) {
	wm.processors = append(wm.processors, proc)
}

// WarmUp runs the warmup process for all registered components and
// returns the number of headings normalized.
func (wm *Manager) WarmUp(ctx context.Context) int64 {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.normalizers)+len(wm.processors),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	headings := GenerateHeadings(wm.config.SampleHeadings)
	var total int64
	total += wm.warmUpNormalizers(ctx, headings)
	total += wm.warmUpStreamProcessors(ctx, headings)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"headings", total,
		"duration", time.Since(startTime),
	)
	return total
}

// warmUpNormalizers runs every sample heading through every normalizer
func (wm *Manager) warmUpNormalizers(ctx context.Context, headings []string) int64 {
	if len(wm.normalizers) == 0 {
		return 0
	}
	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	return wm.run(ctx, wm.config.Iterations, func() int64 {
		var n int64
		for _, normalizer := range wm.normalizers {
			for _, h := range headings {
				_ = normalizer.Normalize(h)
				n++
			}
		}
		return n
	})
}

// warmUpStreamProcessors feeds the sample as one stream to every processor
func (wm *Manager) warmUpStreamProcessors(ctx context.Context, headings []string) int64 {
	if len(wm.processors) == 0 {
		return 0
	}
	wm.logger.Debug("Warming up stream processors", "count", len(wm.processors))

	sample := strings.Join(headings, "\n")
	// Fewer iterations for streaming
	return wm.run(ctx, wm.config.Iterations/10, func() int64 {
		var n int64
		for _, proc := range wm.processors {
			stats, err := proc.ProcessStream(ctx, strings.NewReader(sample), io.Discard)
			if err != nil {
				return n
			}
			n += int64(stats.LinesWritten)
		}
		return n
	})
}

// run calls round iterations times on each of the configured goroutines,
// stopping early when ctx is done
func (wm *Manager) run(ctx context.Context, iterations int, round func() int64) int64 {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int64
	)
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local int64
			for j := 0; j < iterations; j++ {
				if ctx.Err() != nil {
					break
				}
				local += round()
			}
			mu.Lock()
			total += local
			mu.Unlock()
		}()
	}
	wg.Wait()
	return total
}

// GenerateHeadings builds n heading-like strings that exercise every
// normalization pass: punctuation, deletions, Latin-1 fallbacks and case.
func GenerateHeadings(n int) []string {
	names := []string{
		"Brontë, Charlotte, 1816-1855",
		"O'Brien, Flann [pseud.]",
		"Dvořák, Antonín, 1841-1904",
		"Müller & Söhne (Firm)",
		"Þórðarson, Þórbergur",
		"García Márquez, Gabriel, 1927-2014",
		"Tolkien, J. R. R. (John Ronald Reuel)",
		"Ærø (Denmark) -- History",
		"Straße; Geschichte -- 19. Jahrhundert",
		"Smith, John, ½ century <1950>",
	}

	headings := make([]string, n)
	for i := range headings {
		headings[i] = names[i%len(names)]
	}
	return headings
}
