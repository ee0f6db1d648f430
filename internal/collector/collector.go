// Package collector discovers the SVG icons an icon font is built from.
//
// Collection is non-recursive: only regular files directly inside the
// input directory whose name ends in ".svg" are considered. Paths are
// returned in lexicographic order so that code-point assignment does not
// depend on the directory listing order of the underlying filesystem.
package collector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/conneroisu/iconfont/internal/errors"
)

// Extension is the file extension of collected icons.
const Extension = ".svg"

// SourceIcon is one input file, read once and never modified.
type SourceIcon struct {
	// Path identifies the icon.
	Path string
	// Size is the raw byte size of the file.
	Size int64
	// Content is the raw SVG document.
	Content []byte
}

// Basename returns the file name without directory and extension.
func (s *SourceIcon) Basename() string {
	return strings.TrimSuffix(filepath.Base(s.Path), Extension)
}

// Collect returns the icon paths of dir in lexicographic order.
func Collect(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewDirectoryNotFoundError(dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewDirectoryNotFoundError(dir, fmt.Errorf("not a directory"))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeReadInput, "failed to list input directory", err).WithFile(dir)
	}

	var paths []string
	for _, entry := range entries {
		if !isIcon(dir, entry) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	if len(paths) == 0 {
		return nil, errors.NewNoInputFilesError(dir)
	}

	sort.Strings(paths)
	return paths, nil
}

func isIcon(dir string, entry fs.DirEntry) bool {
	if !strings.HasSuffix(entry.Name(), Extension) {
		return false
	}
	if entry.Type().IsRegular() {
		return true
	}
	// follow symlinks to regular files
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		return err == nil && info.Mode().IsRegular()
	}
	return false
}

// Read loads every path into a SourceIcon, keeping the order of paths.
func Read(paths []string) ([]*SourceIcon, error) {
	icons := make([]*SourceIcon, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewAssemblyError("", "failed to read icon", err).WithFile(path)
		}
		icons = append(icons, &SourceIcon{
			Path:    path,
			Size:    int64(len(content)),
			Content: content,
		})
	}
	return icons, nil
}
