package ports

import (
	"context"
	"io"

	"github.com/baditaflorin/go_naco/internal/core/domain"
)

// StreamProcessor normalizes a stream of headings, one per line.
type StreamProcessor interface {
	// ProcessStream reads headings from reader and writes one normalized
	// heading per line to writer. A nil writer only counts.
	ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) (domain.StreamStats, error)
}
