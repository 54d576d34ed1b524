package normalizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_naco/internal/core/domain"
	"github.com/baditaflorin/go_naco/internal/core/naco"
	"github.com/baditaflorin/go_naco/internal/pool"
	"github.com/baditaflorin/go_naco/internal/ports"
)

// byteKind tells the single pass what to do with an ASCII byte
type byteKind uint8

const (
	kindEmit byteKind = iota
	kindSpace
	kindDrop
)

type asciiEntry struct {
	kind byteKind
	out  byte
}

// FastNormalizer produces the same output as DefaultNormalizer in a single
// pass over the input, with precomputed tables and pooled buffers.
type FastNormalizer struct {
	mode domain.CaseMode

	// Pre-computed decision table for ASCII characters (0-127)
	asciiTable [128]asciiEntry

	// Fallbacks with the case pass already applied
	fallbacks [naco.FallbackLast - naco.FallbackFirst + 1]string

	bufferPool *pool.BufferPool
}

// NewFastNormalizer creates a new fast normalizer with precomputed tables
func NewFastNormalizer(mode domain.CaseMode) ports.Normalizer {
	return newFastNormalizer(mode)
}

func newFastNormalizer(mode domain.CaseMode) *FastNormalizer {
	n := &FastNormalizer{
		mode:       mode,
		bufferPool: pool.NewBufferPool(256), // most headings are short
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case naco.ActionFor(r) == naco.Space, unicode.IsSpace(r):
			n.asciiTable[i] = asciiEntry{kind: kindSpace}
		case naco.ActionFor(r) == naco.Delete:
			n.asciiTable[i] = asciiEntry{kind: kindDrop}
		default:
			n.asciiTable[i] = asciiEntry{kind: kindEmit, out: byte(naco.FoldASCII(r, mode))}
		}
	}

	for r := naco.FallbackFirst; r <= naco.FallbackLast; r++ {
		fb, _ := naco.Fallback(r)
		folded := []byte(fb)
		for i, b := range folded {
			folded[i] = byte(naco.FoldASCII(rune(b), mode))
		}
		n.fallbacks[r-naco.FallbackFirst] = string(folded)
	}

	return n
}

// Normalize returns the NACO form of text
func (n *FastNormalizer) Normalize(text string) string {
	// Fast path for empty strings
	if len(text) == 0 {
		return ""
	}

	buffer := n.bufferPool.Get()
	defer n.bufferPool.Put(buffer)

	*buffer = n.AppendNormalized(*buffer, text)
	return string(*buffer)
}

// Mode returns the case mode the normalizer was built with
func (n *FastNormalizer) Mode() domain.CaseMode {
	return n.mode
}

// AppendNormalized appends the NACO form of text to dst and returns the
// extended slice.
//
// Whitespace is never written eagerly: a pending space is emitted only in
// front of the next visible character, which trims and collapses in the
// same pass.
func (n *FastNormalizer) AppendNormalized(dst []byte, text string) []byte {
	start := len(dst)
	pending := false

	emit := func(b byte) {
		if pending && len(dst) > start {
			dst = append(dst, ' ')
		}
		pending = false
		dst = append(dst, b)
	}

	for i := 0; i < len(text); {
		b := text[i]
		if b < utf8.RuneSelf {
			entry := n.asciiTable[b]
			switch entry.kind {
			case kindEmit:
				emit(entry.out)
			case kindSpace:
				pending = true
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		i += size

		if r >= naco.FallbackFirst && r <= naco.FallbackLast {
			fb := n.fallbacks[r-naco.FallbackFirst]
			for j := 0; j < len(fb); j++ {
				if fb[j] == ' ' {
					pending = true
				} else {
					emit(fb[j])
				}
			}
			continue
		}

		if unicode.IsSpace(r) {
			pending = true
			continue
		}

		if pending && len(dst) > start {
			dst = append(dst, ' ')
		}
		pending = false
		dst = utf8.AppendRune(dst, r)
	}

	return dst
}

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation
type NormalizerType int

const (
	// DefaultNormalizerType applies the passes one at a time
	DefaultNormalizerType NormalizerType = iota
	// FastNormalizerType uses precomputed tables and a single pass
	FastNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType, mode domain.CaseMode) ports.Normalizer {
	switch normalizerType {
	case FastNormalizerType:
		return NewFastNormalizer(mode)
	default:
		return NewDefaultNormalizer(mode)
	}
}
