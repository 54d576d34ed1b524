// Package naco implements NACO heading normalization as a fixed sequence of
// rewrite passes:
//
//  1. punctuation in SpaceChars becomes a space
//  2. punctuation in DeleteChars is removed
//  3. Latin-1 Supplement characters are replaced by their ASCII fallback
//  4. ASCII letters are forced to the requested case
//  5. leading and trailing whitespace is trimmed
//  6. runs of whitespace collapse to one space
//
// The order is significant: fallbacks such as "1/2" are introduced after
// the punctuation passes and keep their slash.
package naco

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_naco/internal/core/domain"
)

// Normalize applies the NACO passes to text one after another.
// It never fails; the empty string normalizes to the empty string.
func Normalize(text string, mode domain.CaseMode) string {
	if text == "" {
		return ""
	}

	s := replaceWithSpace(text)
	s = deletePunctuation(s)
	s = applyFallbacks(s)
	s = applyCase(s, mode)
	s = strings.TrimFunc(s, unicode.IsSpace)
	return collapseSpace(s)
}

// mapRunes rebuilds s rune by rune. Invalid UTF-8 bytes are decoded as
// utf8.RuneError and written back as U+FFFD.
func mapRunes(s string, fn func(sb *strings.Builder, r rune)) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		fn(&sb, r)
	}
	return sb.String()
}

func replaceWithSpace(s string) string {
	return mapRunes(s, func(sb *strings.Builder, r rune) {
		if ActionFor(r) == Space {
			sb.WriteByte(' ')
			return
		}
		sb.WriteRune(r)
	})
}

func deletePunctuation(s string) string {
	return mapRunes(s, func(sb *strings.Builder, r rune) {
		if ActionFor(r) == Delete {
			return
		}
		sb.WriteRune(r)
	})
}

func applyFallbacks(s string) string {
	return mapRunes(s, func(sb *strings.Builder, r rune) {
		if fb, ok := Fallback(r); ok {
			sb.WriteString(fb)
			return
		}
		sb.WriteRune(r)
	})
}

func applyCase(s string, mode domain.CaseMode) string {
	return mapRunes(s, func(sb *strings.Builder, r rune) {
		sb.WriteRune(FoldASCII(r, mode))
	})
}

// FoldASCII converts an ASCII letter to the case selected by mode.
// Every other rune is returned unchanged.
func FoldASCII(r rune, mode domain.CaseMode) rune {
	if mode == domain.Lower {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}
	if 'a' <= r && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
