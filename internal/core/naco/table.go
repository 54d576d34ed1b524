package naco

// Bounds of the Latin-1 Supplement block covered by the fallback table.
const (
	FallbackFirst rune = 0xA0
	FallbackLast  rune = 0xFF
)

// fallbacks holds the ASCII replacement for every code point from
// FallbackFirst to FallbackLast, indexed by r - FallbackFirst.
var fallbacks = [FallbackLast - FallbackFirst + 1]string{
	// 0xA0
	" ", " ", "C", " ", " ", "Y", " ", "SS", " ", " ", "a", " ", " ", "", " ", " ",
	// 0xB0
	" ", " ", "2", "3", "", "u", "P", " ", " ", "1", "o", " ", "1/4", "1/2", "3/4", " ",
	// 0xC0
	"A", "A", "A", "A", "A", "A", "AE", "C", "E", "E", "E", "E", "I", "I", "I", "I",
	// 0xD0
	"D", "N", "O", "O", "O", "O", "O", "x", "O", "U", "U", "U", "U", "U", "Th", "ss",
	// 0xE0
	"a", "a", "a", "a", "a", "a", "ae", "c", "e", "e", "e", "e", "i", "i", "i", "i",
	// 0xF0
	"d", "n", "o", "o", "o", "o", "o", " ", "o", "u", "u", "u", "u", "y", "th", "y",
}

// Fallback returns the ASCII replacement for r. The second result is false
// when r lies outside the Latin-1 Supplement and should pass through as is.
func Fallback(r rune) (string, bool) {
	if r < FallbackFirst || r > FallbackLast {
		return "", false
	}
	return fallbacks[r-FallbackFirst], true
}

// FallbackTable returns a copy of the table keyed by code point.
func FallbackTable() map[rune]string {
	table := make(map[rune]string, len(fallbacks))
	for i, s := range fallbacks {
		table[FallbackFirst+rune(i)] = s
	}
	return table
}
