//go:build property
// +build property

package glyph

import (
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGlyphProperties tests invariant properties of naming and numbering
func TestGlyphProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("sanitized names use only [A-Za-z0-9-]", prop.ForAll(
		func(name string) bool {
			for _, r := range Sanitize(name) {
				ok := r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
				if !ok {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("sanitize preserves length and alphanumerics", prop.ForAll(
		func(name string) bool {
			out := []rune(Sanitize(name))
			in := []rune(name)
			if len(out) != len(in) || utf8.RuneCountInString(name) != len(out) {
				return false
			}
			for i, r := range in {
				alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
				if alnum && out[i] != r {
					return false
				}
				if !alnum && out[i] != '-' {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("code points are injective within capacity", prop.ForAll(
		func(i, j int) bool {
			if i == j {
				return CodePoint(i) == CodePoint(j)
			}
			return CodePoint(i) != CodePoint(j)
		},
		gen.IntRange(0, Capacity-1),
		gen.IntRange(0, Capacity-1),
	))

	properties.TestingRun(t)
}
