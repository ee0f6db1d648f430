// Package manifest describes a generated font as YAML: the font and file
// names, the input fingerprint and the glyph map.
package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/iconfont/internal/fingerprint"
	"github.com/conneroisu/iconfont/internal/glyph"
)

// Manifest is the document written next to the font.
type Manifest struct {
	Font        string  `yaml:"font"`
	Prefix      string  `yaml:"prefix"`
	FontFile    string  `yaml:"font_file"`
	Stylesheet  string  `yaml:"stylesheet"`
	Fingerprint string  `yaml:"fingerprint"`
	Glyphs      []Entry `yaml:"glyphs"`
}

// Entry maps one class name to its code point.
type Entry struct {
	Name      string `yaml:"name"`
	Class     string `yaml:"class"`
	CodePoint string `yaml:"codepoint"`
	Source    string `yaml:"source,omitempty"`
}

// New builds the manifest for glyphs.
func New(font, prefix, fontFile, stylesheet string, digest fingerprint.Digest, glyphs []glyph.Glyph) *Manifest {
	m := &Manifest{
		Font:        font,
		Prefix:      prefix,
		FontFile:    fontFile,
		Stylesheet:  stylesheet,
		Fingerprint: string(digest),
		Glyphs:      make([]Entry, 0, len(glyphs)),
	}
	for _, g := range glyphs {
		e := Entry{
			Name:      g.Name,
			Class:     prefix + "-" + g.Name,
			CodePoint: g.Hex(),
		}
		if g.Source != nil {
			e.Source = filepath.ToSlash(g.Source.Path)
		}
		m.Glyphs = append(m.Glyphs, e)
	}
	return m
}

// Write encodes m as YAML.
func (m *Manifest) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}

// Read decodes a manifest.
func Read(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
