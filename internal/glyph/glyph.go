// Package glyph names icons and assigns their code points.
package glyph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/conneroisu/iconfont/internal/collector"
	"github.com/conneroisu/iconfont/internal/errors"
)

// BasePoint is the first code point handed out, the start of the Unicode
// Private Use Area.
const BasePoint rune = 0xE000

// Capacity is the number of code points reserved for glyphs.
const Capacity = 0x2000

// Collision policies, see Assign.
type CollisionPolicy string

const (
	CollisionSuffix CollisionPolicy = "suffix"
	CollisionError  CollisionPolicy = "error"
	CollisionAllow  CollisionPolicy = "allow"
)

// Glyph is one addressable symbol of the font.
type Glyph struct {
	Name      string
	CodePoint rune
	Source    *collector.SourceIcon
}

// Hex returns the lowercase hexadecimal code point, e.g. "e000".
func (g Glyph) Hex() string {
	return strconv.FormatInt(int64(g.CodePoint), 16)
}

// Sanitize replaces every rune outside [A-Za-z0-9] with '-'. The result has
// as many runes as the input.
func Sanitize(basename string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, basename)
}

// CodePoint returns the code point for the icon at index in collection order.
func CodePoint(index int) rune {
	return BasePoint + rune(index)
}

// Assign creates one glyph per icon, in order.
//
// Names that sanitize to an already used value are handled according to
// policy: CollisionSuffix appends "-2", "-3", ... until the name is free,
// CollisionError fails, and CollisionAllow keeps the duplicate.
func Assign(icons []*collector.SourceIcon, policy CollisionPolicy) ([]Glyph, error) {
	if len(icons) > Capacity {
		return nil, errors.NewAssemblyError(errors.ErrCodeGlyphCapacity,
			fmt.Sprintf("%d icons exceed the %d available code points", len(icons), Capacity), nil).
			WithContext("count", len(icons)).
			WithContext("capacity", Capacity)
	}

	glyphs := make([]Glyph, 0, len(icons))
	used := make(map[string]string, len(icons))
	for i, icon := range icons {
		name := Sanitize(icon.Basename())

		if first, taken := used[name]; taken {
			switch policy {
			case CollisionAllow:
			case CollisionError:
				return nil, errors.NewAssemblyError(errors.ErrCodeGlyphNameCollision,
					fmt.Sprintf("glyph name %q is used by %s and %s", name, first, icon.Path), nil).
					WithFile(icon.Path)
			default:
				name = nextFree(name, used)
			}
		}
		if _, taken := used[name]; !taken {
			used[name] = icon.Path
		}

		glyphs = append(glyphs, Glyph{
			Name:      name,
			CodePoint: CodePoint(i),
			Source:    icon,
		})
	}

	return glyphs, nil
}

func nextFree(name string, used map[string]string) string {
	for n := 2; ; n++ {
		candidate := name + "-" + strconv.Itoa(n)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}
}
