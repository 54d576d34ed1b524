package domain

import "time"

// CaseMode selects the letter case of normalized output.
type CaseMode int

const (
	// Upper forces ASCII letters to upper case. It is the default.
	Upper CaseMode = iota
	// Lower forces ASCII letters to lower case.
	Lower
)

// Case option values as they appear in configuration and requests.
const (
	CaseUpper = "upper"
	CaseLower = "lower"
)

// ParseCaseMode maps a case option to a CaseMode.
// Only the exact value "lower" selects Lower; anything else, including
// the empty string, selects Upper.
func ParseCaseMode(value string) CaseMode {
	if value == CaseLower {
		return Lower
	}
	return Upper
}

// String returns the option value for the mode.
func (m CaseMode) String() string {
	if m == Lower {
		return CaseLower
	}
	return CaseUpper
}

// StreamStats holds the outcome of normalizing a stream of headings.
type StreamStats struct {
	// LinesRead is the number of input lines seen, including empty ones.
	LinesRead int
	// LinesWritten is the number of normalized lines written.
	LinesWritten int
	// BytesProcessed is the number of input bytes consumed after decoding.
	BytesProcessed int64
	// Duration is the wall time spent on the stream.
	Duration time.Duration
}
