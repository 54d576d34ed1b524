// Package fixture reads and checks NACO fixture files: one
// "original<TAB>normalized" pair per line, newline terminated.
package fixture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baditaflorin/go_naco/internal/ports"
)

// ErrMalformedLine is returned for a non-empty line without a tab.
var ErrMalformedLine = errors.New("fixture line has no tab separator")

// Pair is one fixture entry.
type Pair struct {
	// Line is the 1-based line number the pair was read from.
	Line       int
	Original   string
	Normalized string
}

// Mismatch records a pair whose original did not normalize as expected.
type Mismatch struct {
	Pair
	Got string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("line %d: %q normalized to %q, want %q", m.Line, m.Original, m.Got, m.Normalized)
}

// Read parses fixture pairs from r. Empty lines are skipped. The expected
// value is everything after the last tab, since normalized text never
// contains one.
func Read(r io.Reader) ([]Pair, error) {
	br := bufio.NewReader(r)

	var pairs []Pair
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return pairs, fmt.Errorf("read fixture line %d: %w", lineNo, err)
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			i := strings.LastIndexByte(line, '\t')
			if i < 0 {
				return pairs, fmt.Errorf("line %d: %w", lineNo, ErrMalformedLine)
			}
			pairs = append(pairs, Pair{
				Line:       lineNo,
				Original:   line[:i],
				Normalized: line[i+1:],
			})
		}

		if err == io.EOF {
			return pairs, nil
		}
	}
}

// ReadFile parses the fixture file at path.
func ReadFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture %s: %w", path, err)
	}
	defer f.Close()

	pairs, err := Read(f)
	if err != nil {
		return pairs, fmt.Errorf("fixture %s: %w", path, err)
	}
	return pairs, nil
}

// Write writes pairs in fixture format.
func Write(w io.Writer, pairs []Pair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		if strings.ContainsAny(p.Original, "\n\r") {
			return fmt.Errorf("original %q spans lines", p.Original)
		}
		bw.WriteString(p.Original)
		bw.WriteByte('\t')
		bw.WriteString(p.Normalized)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Build normalizes every original with n and returns the resulting pairs.
func Build(n ports.Normalizer, originals []string) []Pair {
	pairs := make([]Pair, len(originals))
	for i, o := range originals {
		pairs[i] = Pair{Line: i + 1, Original: o, Normalized: n.Normalize(o)}
	}
	return pairs
}

// Check runs every original through n and returns the pairs that did not
// produce the expected value.
func Check(n ports.Normalizer, pairs []Pair) []Mismatch {
	var mismatches []Mismatch
	for _, p := range pairs {
		if got := n.Normalize(p.Original); got != p.Normalized {
			mismatches = append(mismatches, Mismatch{Pair: p, Got: got})
		}
	}
	return mismatches
}
