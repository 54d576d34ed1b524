// naco.go
// Package naco normalizes bibliographic headings with the NACO rules so that
// headings can be compared for equality.
//
// Normalization applies, in order: punctuation to space, deletion of
// apostrophes, brackets and pipes, ASCII fallbacks for Latin-1 Supplement
// characters, forced upper or lower case for ASCII letters, trimming, and
// collapsing of whitespace runs:
//
//	naco.NormalizeNACO("O'Brien [Ed.]", nil)                      // "OBRIEN ED"
//	naco.NormalizeNACO("Müller & Söhne", &naco.Options{Case: "lower"}) // "muller & sohne"
//
// Normalization never fails. Any case option other than "lower" means upper.
package naco

import (
	"sync/atomic"

	"github.com/baditaflorin/go_naco/internal/adapters/logger"
	"github.com/baditaflorin/go_naco/internal/adapters/normalizer"
	"github.com/baditaflorin/go_naco/internal/core/domain"
	core "github.com/baditaflorin/go_naco/internal/core/naco"
	"github.com/baditaflorin/go_naco/internal/ports"
	"github.com/baditaflorin/l"
)

// Case option values.
const (
	CaseUpper = domain.CaseUpper
	CaseLower = domain.CaseLower
)

// Process-wide normalizers, one per case mode. They are immutable after
// construction and safe for concurrent use.
var (
	upperNormalizer = normalizer.NewFastNormalizer(domain.Upper)
	lowerNormalizer = normalizer.NewFastNormalizer(domain.Lower)
)

func normalizerFor(mode domain.CaseMode) ports.Normalizer {
	if mode == domain.Lower {
		return lowerNormalizer
	}
	return upperNormalizer
}

// Options configures a single call to NormalizeNACO.
type Options struct {
	// Case is "upper" (default) or "lower".
	Case string `json:"case,omitempty" yaml:"case,omitempty"`
}

// NormalizeNACO returns the NACO form of text. A nil opts means upper case.
func NormalizeNACO(text string, opts *Options) string {
	mode := domain.Upper
	if opts != nil {
		mode = domain.ParseCaseMode(opts.Case)
	}
	return normalizerFor(mode).Normalize(text)
}

// NormalizePtr is NormalizeNACO for optional input: a nil text normalizes
// to the empty string.
func NormalizePtr(text *string, opts *Options) string {
	if text == nil {
		return ""
	}
	return NormalizeNACO(*text, opts)
}

// FallbackTable returns a copy of the Latin-1 Supplement to ASCII table.
func FallbackTable() map[rune]string {
	return core.FallbackTable()
}

// Normalizer normalizes headings with a stored case mode. The mode may be
// changed at any time, including while other goroutines call Normalize.
// The zero value is ready to use and normalizes to upper case.
type Normalizer struct {
	mode   atomic.Int32
	logger ports.Logger
}

// Option defines a functional option for configuring a Normalizer.
type Option func(*config)

type config struct {
	Case   string
	Logger ports.Logger
}

// WithCase sets the case mode. Only "lower" selects lower case.
func WithCase(value string) Option {
	return func(cfg *config) {
		cfg.Case = value
	}
}

// WithLogger sets a logger. Without one the Normalizer logs nothing.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// New creates a Normalizer. The default case mode is upper.
func New(opts ...Option) *Normalizer {
	cfg := config{Case: CaseUpper}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNopLogger()
	}

	n := &Normalizer{logger: cfg.Logger}
	n.SetCase(cfg.Case)
	return n
}

// Case returns the current case mode, "upper" or "lower".
func (n *Normalizer) Case() string {
	return n.caseMode().String()
}

// SetCase changes the case mode. Values other than "lower" select upper.
func (n *Normalizer) SetCase(value string) {
	mode := domain.ParseCaseMode(value)
	if value != CaseUpper && value != CaseLower {
		n.log().Debug("Unknown case option, using upper", "case", value)
	}
	n.mode.Store(int32(mode))
}

// Normalize returns the NACO form of text in the current case mode.
func (n *Normalizer) Normalize(text string) string {
	return normalizerFor(n.caseMode()).Normalize(text)
}

// log returns the configured logger, or a no-op logger for a zero-value
// Normalizer.
func (n *Normalizer) log() ports.Logger {
	if n.logger == nil {
		return logger.NewNopLogger()
	}
	return n.logger
}

func (n *Normalizer) caseMode() domain.CaseMode {
	return domain.CaseMode(n.mode.Load())
}
