// Package scanner walks a corpus directory. Every immediate subdirectory of
// the root is one assignment; source files are collected recursively under
// it, honoring the configured exclusion list.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Rudra2712/Plagiarism-detection-system/pkg/config"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/lang"
)

// Assignment is one corpus subdirectory with its source files, sorted.
type Assignment struct {
	Name  string
	Files []string
}

// Scanner walks corpus directories.
type Scanner struct {
	cfg        *config.Config
	extensions map[string]struct{}
}

// New creates a scanner. A nil config falls back to defaults.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	exts := make(map[string]struct{})
	for _, ext := range lang.SourceExtensions() {
		exts[ext] = struct{}{}
	}
	return &Scanner{cfg: cfg, extensions: exts}
}

// CollectAssignments returns the assignments under root in name order. A
// missing or unreadable root is an error; an assignment directory with no
// source files is kept with an empty file list.
func (s *Scanner) CollectAssignments(root string) ([]Assignment, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("corpus directory %s: %w", root, err)
	}

	var assignments []Assignment
	for _, entry := range entries {
		if !entry.IsDir() || s.cfg.ExcludedDir(entry.Name()) {
			continue
		}
		files, err := s.collectFiles(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, Assignment{Name: entry.Name(), Files: files})
	}

	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].Name < assignments[j].Name
	})
	return assignments, nil
}

func (s *Scanner) collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && s.cfg.ExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := s.extensions[ext]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
