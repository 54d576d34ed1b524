package naco

// Action is what the punctuation passes do with an ASCII character.
type Action uint8

const (
	// Keep leaves the character in place.
	Keep Action = iota
	// Space replaces the character with a single space.
	Space
	// Delete removes the character.
	Delete
)

const (
	// SpaceChars are replaced by a space in the first pass.
	SpaceChars = `!(){}<>-;:.?,/\@*%=$^_~`
	// DeleteChars are removed in the second pass.
	DeleteChars = `'[]|`
)

var asciiActions [128]Action

func init() {
	for i := 0; i < len(SpaceChars); i++ {
		asciiActions[SpaceChars[i]] = Space
	}
	for i := 0; i < len(DeleteChars); i++ {
		asciiActions[DeleteChars[i]] = Delete
	}
}

// ActionFor reports how the punctuation passes treat r.
// Only ASCII characters are ever replaced or deleted.
func ActionFor(r rune) Action {
	if r < 0 || r >= 128 {
		return Keep
	}
	return asciiActions[r]
}
