package benchmark

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/baditaflorin/go_naco/internal/adapters/logger"
	"github.com/baditaflorin/go_naco/internal/adapters/normalizer"
	"github.com/baditaflorin/go_naco/internal/adapters/stream"
	"github.com/baditaflorin/go_naco/internal/adapters/stream/lineprocessor"
	"github.com/baditaflorin/go_naco/internal/core/domain"
	"github.com/baditaflorin/go_naco/internal/warmup"
)

// generateHeadingText joins lineCount generated headings with LF, or CRLF
// when crlf is set.
func generateHeadingText(lineCount int, crlf bool) string {
	sep := "\n"
	if crlf {
		sep = "\r\n"
	}
	return strings.Join(warmup.GenerateHeadings(lineCount), sep)
}

// generateMixedHeadingText creates a text where every fourth heading is
// a long subject string
func generateMixedHeadingText(lineCount int) string {
	headings := warmup.GenerateHeadings(lineCount)
	long := strings.Repeat("Müller & Söhne (Firm) -- History -- 19th century; ", 20)

	var sb strings.Builder
	sb.Grow(lineCount * 80)
	for i, h := range headings {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if i%4 == 0 {
			sb.WriteString(long)
		}
		sb.WriteString(h)
	}
	return sb.String()
}

// BenchmarkLineProcessing compares sequential and parallel stream
// normalization over inputs of different shapes
func BenchmarkLineProcessing(b *testing.B) {
	small := generateHeadingText(50, false)
	medium := generateHeadingText(500, false)
	large := generateHeadingText(5000, false)
	crlf := generateHeadingText(5000, true)
	mixed := generateMixedHeadingText(500)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := logger.NewNopLogger()
	norm := normalizer.NewFastNormalizer(domain.Upper)

	sequential := lineprocessor.NewProcessor(log, norm, lineprocessor.ProcessingConfig{
		BatchSize:   100,
		UseParallel: false,
	})
	parallel := lineprocessor.NewProcessor(log, norm, lineprocessor.ProcessingConfig{
		BatchSize:   100,
		UseParallel: true,
	})

	benchmarks := []struct {
		name  string
		proc  *lineprocessor.Processor
		input string
	}{
		{"Sequential-Small", sequential, small},
		{"Sequential-Medium", sequential, medium},
		{"Sequential-Large", sequential, large},
		{"Sequential-CRLF", sequential, crlf},
		{"Sequential-Mixed", sequential, mixed},

		{"Parallel-Small", parallel, small},
		{"Parallel-Medium", parallel, medium},
		{"Parallel-Large", parallel, large},
		{"Parallel-CRLF", parallel, crlf},
		{"Parallel-Mixed", parallel, mixed},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bm.input)))

			for i := 0; i < b.N; i++ {
				if _, err := bm.proc.ProcessLines(ctx, strings.NewReader(bm.input), io.Discard); err != nil {
					b.Fatalf("Error processing: %v", err)
				}
			}
		})
	}
}

// BenchmarkLatin1Decoding measures the cost of transcoding legacy input
// before normalization
func BenchmarkLatin1Decoding(b *testing.B) {
	input := strings.Repeat("G\xf6del, Kurt\nBront\xeb, Charlotte\n\xde\xf3r\xf0arson\n", 1000)

	proc, err := stream.NewProcessorFactory(logger.NewNopLogger()).CreateProcessor(
		normalizer.FastNormalizerType,
		domain.Upper,
		stream.ProcessorConfig{Encoding: "iso-8859-1"},
	)
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	b.ReportAllocs()
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := proc.ProcessStream(ctx, strings.NewReader(input), io.Discard); err != nil {
			b.Fatalf("Error processing: %v", err)
		}
	}
}
