// File: internal/adapters/stream/processor_factory.go
package stream

import (
	"github.com/baditaflorin/go_naco/internal/adapters/normalizer"
	"github.com/baditaflorin/go_naco/internal/adapters/stream/lineprocessor"
	"github.com/baditaflorin/go_naco/internal/core/domain"
	"github.com/baditaflorin/go_naco/internal/ports"
)

// ProcessorConfig defines configuration for creating processors
type ProcessorConfig struct {
	ChunkSize   int
	BatchSize   int
	Workers     int
	UseParallel bool
	// Encoding is a WHATWG label for the input; empty means UTF-8.
	Encoding string
}

// ProcessorFactory creates the appropriate stream processor based on requirements
type ProcessorFactory struct {
	logger ports.Logger
}

// NewProcessorFactory creates a new processor factory
func NewProcessorFactory(logger ports.Logger) *ProcessorFactory {
	return &ProcessorFactory{
		logger: logger,
	}
}

// CreateProcessor creates a line processor normalizing in the given case
// mode. It fails only when config.Encoding is not a known label.
func (f *ProcessorFactory) CreateProcessor(
	normalizerType normalizer.NormalizerType,
	mode domain.CaseMode,
	config ProcessorConfig,
) (ports.StreamProcessor, error) {
	norm := normalizer.NewNormalizerFactory().CreateNormalizer(normalizerType, mode)
	return f.CreateProcessorWithNormalizer(norm, config)
}

// CreateProcessorWithNormalizer creates a line processor around a
// caller-supplied normalizer.
func (f *ProcessorFactory) CreateProcessorWithNormalizer(
	norm ports.Normalizer,
	config ProcessorConfig,
) (ports.StreamProcessor, error) {
	enc, err := LookupEncoding(config.Encoding)
	if err != nil {
		return nil, err
	}

	lineProc := lineprocessor.NewProcessor(
		f.logger,
		norm,
		lineprocessor.ProcessingConfig{
			ChunkSize:   config.ChunkSize,
			BatchSize:   config.BatchSize,
			Workers:     config.Workers,
			UseParallel: config.UseParallel,
		},
	)

	if enc == nil {
		return lineProc, nil
	}
	f.logger.Debug("Decoding input", "encoding", config.Encoding)
	return NewDecodingProcessor(lineProc, enc), nil
}
