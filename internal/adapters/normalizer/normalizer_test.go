package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baditaflorin/go_naco/internal/core/domain"
)

var samples = []string{
	"",
	"hello, world!",
	"  multiple   spaces  ",
	"café",
	"O'Brien [Ed.]",
	"100% guaranteed",
	"Müller & Söhne",
	"½ price, ¼ off, ¾ left",
	"Þorsteinn Æsir Straße § 5",
	"co\u00ADoperate",
	"a\u00A0\u00A0b",
	"¿Qué? ¡Olé!",
	"a\tb\r\nc\u0085d e",
	"a—b “q” Δδ",
	"a\xffb\xfe",
	"'[]|",
	" .,;:!? ",
	"Tolkien, J. R. R. (John Ronald Reuel), 1892-1973",
	"x¹²³ 2×3 ©2001 µ¶",
	strings.Repeat("Ünïcödé, ", 100),
}

func TestFastNormalizerMatchesDefault(t *testing.T) {
	for _, mode := range []domain.CaseMode{domain.Upper, domain.Lower} {
		ref := NewDefaultNormalizer(mode)
		fast := NewFastNormalizer(mode)
		for _, s := range samples {
			assert.Equal(t, ref.Normalize(s), fast.Normalize(s), "input %q mode %s", s, mode)
		}
	}
}

func TestAppendNormalizedKeepsPrefix(t *testing.T) {
	n := newFastNormalizer(domain.Upper)
	got := n.AppendNormalized([]byte("prefix "), "  a, b  ")
	assert.Equal(t, "prefix A B", string(got))
}

func TestNormalizerFactory(t *testing.T) {
	f := NewNormalizerFactory()

	def := f.CreateNormalizer(DefaultNormalizerType, domain.Lower)
	assert.IsType(t, &DefaultNormalizer{}, def)
	assert.Equal(t, domain.Lower, def.(*DefaultNormalizer).Mode())

	fast := f.CreateNormalizer(FastNormalizerType, domain.Upper)
	assert.IsType(t, &FastNormalizer{}, fast)
	assert.Equal(t, domain.Upper, fast.(*FastNormalizer).Mode())

	unknown := f.CreateNormalizer(NormalizerType(42), domain.Upper)
	assert.IsType(t, &DefaultNormalizer{}, unknown)
}

func TestFastNormalizerConcurrentUse(t *testing.T) {
	n := NewFastNormalizer(domain.Upper)
	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			var last string
			for j := 0; j < 200; j++ {
				last = n.Normalize("Brontë, Charlotte, 1816-1855")
			}
			done <- last
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, "BRONTE CHARLOTTE 1816 1855", <-done)
	}
}

func FuzzFastNormalizerMatchesDefault(f *testing.F) {
	for _, s := range samples {
		f.Add(s)
	}

	upperRef, upperFast := NewDefaultNormalizer(domain.Upper), NewFastNormalizer(domain.Upper)
	lowerRef, lowerFast := NewDefaultNormalizer(domain.Lower), NewFastNormalizer(domain.Lower)

	f.Fuzz(func(t *testing.T, input string) {
		if want, got := upperRef.Normalize(input), upperFast.Normalize(input); want != got {
			t.Fatalf("upper mode mismatch for %q: default %q, fast %q", input, want, got)
		}
		if want, got := lowerRef.Normalize(input), lowerFast.Normalize(input); want != got {
			t.Fatalf("lower mode mismatch for %q: default %q, fast %q", input, want, got)
		}
	})
}
