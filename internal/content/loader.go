package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader handles loading packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all valid pack files.
// Invalid files are skipped. Returns packs sorted by ID.
func (l *Loader) LoadAll() ([]*Pack, error) {
	var packs []*Pack

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		p, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		packs = append(packs, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs, nil
}

// LoadFile loads and validates a single pack file.
func (l *Loader) LoadFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if err := Validate(p); err != nil {
		return nil, fmt.Errorf("validating file %s: %w", path, err)
	}

	p.FilePath = path
	return p, nil
}

// LoadByID loads a specific pack by ID.
func (l *Loader) LoadByID(id string) (*Pack, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("pack not found: %s", id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
