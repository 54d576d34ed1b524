package stream

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/baditaflorin/go_naco/internal/core/domain"
	"github.com/baditaflorin/go_naco/internal/ports"
)

// LookupEncoding resolves a WHATWG encoding label such as "iso-8859-1" or
// "windows-1252". UTF-8 labels and the empty string resolve to nil,
// meaning the input is used as is.
func LookupEncoding(label string) (encoding.Encoding, error) {
	if isUTF8(label) {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc, nil
}

func isUTF8(label string) bool {
	e := strings.ToLower(strings.ReplaceAll(label, "-", ""))
	return e == "utf8" || e == ""
}

// DecodingProcessor transcodes its input to UTF-8 before handing it to the
// wrapped processor. Legacy heading exports are often Latin-1.
type DecodingProcessor struct {
	inner    ports.StreamProcessor
	encoding encoding.Encoding
}

// NewDecodingProcessor wraps inner so that input in enc is decoded first.
func NewDecodingProcessor(inner ports.StreamProcessor, enc encoding.Encoding) *DecodingProcessor {
	return &DecodingProcessor{inner: inner, encoding: enc}
}

// ProcessStream decodes reader and forwards to the wrapped processor.
func (d *DecodingProcessor) ProcessStream(ctx context.Context, reader io.Reader, writer io.Writer) (domain.StreamStats, error) {
	return d.inner.ProcessStream(ctx, transform.NewReader(reader, d.encoding.NewDecoder()), writer)
}
