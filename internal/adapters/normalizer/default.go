package normalizer

import (
	"github.com/baditaflorin/go_naco/internal/core/domain"
	"github.com/baditaflorin/go_naco/internal/core/naco"
	"github.com/baditaflorin/go_naco/internal/ports"
)

// DefaultNormalizer applies the NACO passes one after another.
// It is the reference every other normalizer must agree with.
type DefaultNormalizer struct {
	mode domain.CaseMode
}

// NewDefaultNormalizer creates a new default normalizer for the given case mode.
func NewDefaultNormalizer(mode domain.CaseMode) ports.Normalizer {
	return &DefaultNormalizer{mode: mode}
}

// Normalize returns the NACO form of text.
func (n *DefaultNormalizer) Normalize(text string) string {
	return naco.Normalize(text, n.mode)
}

// Mode returns the case mode the normalizer was built with.
func (n *DefaultNormalizer) Mode() domain.CaseMode {
	return n.mode
}
