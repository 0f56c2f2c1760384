// Package scan walks a directory of note files and applies the cohort
// extractor to each file's lines.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/medrex/cohort"
	"github.com/oxhq/medrex/pattern"
)

// Scope defines which files to scan.
type Scope struct {
	Root    string
	Include []string // doublestar globs; empty means every file
	Exclude []string
}

// FileResult holds one file's per-line extraction results. Lines that
// matched no pattern are omitted; Records carries only the hits.
type FileResult struct {
	Path    string
	Lines   int
	Records []cohort.RecordMatch
}

// Scanner applies an ordered pattern list over files under a root.
type Scanner struct {
	extractor *cohort.Extractor
}

// NewScanner returns a Scanner reading patterns from reg.
func NewScanner(reg *pattern.Registry) *Scanner {
	return &Scanner{extractor: cohort.NewExtractor(reg)}
}

// Scan walks scope.Root and extracts matches from every included file.
// Pattern names are validated before any file is read, so an unknown name
// fails the whole scan with no partial output. The context cancels the walk
// between files.
func (s *Scanner) Scan(ctx context.Context, scope Scope, names ...string) ([]FileResult, error) {
	// Validate names up front via an empty extraction.
	if _, err := s.extractor.Extract(nil, names...); err != nil {
		return nil, err
	}

	info, err := os.Stat(scope.Root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", scope.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", scope.Root)
	}

	var results []FileResult
	err = filepath.WalkDir(scope.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(scope.Root, path)
		if err != nil {
			rel = path
		}
		if !s.included(rel, scope) {
			return nil
		}

		res, err := s.scanFile(path, names)
		if err != nil {
			return err
		}
		if len(res.Records) > 0 {
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Scanner) scanFile(path string, names []string) (FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("reading %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	records, err := s.extractor.Extract(lines, names...)
	if err != nil {
		return FileResult{}, err
	}

	res := FileResult{Path: path, Lines: len(lines)}
	for _, rm := range records {
		if rm.Match != nil {
			res.Records = append(res.Records, rm)
		}
	}
	return res, nil
}

// included applies include/exclude globs against the path relative to the
// scan root, then against the basename, mirroring common glob tooling.
func (s *Scanner) included(rel string, scope Scope) bool {
	for _, glob := range scope.Exclude {
		if matchGlob(glob, rel) {
			return false
		}
	}
	if len(scope.Include) == 0 {
		return true
	}
	for _, glob := range scope.Include {
		if matchGlob(glob, rel) {
			return true
		}
	}
	return false
}

func matchGlob(glob, rel string) bool {
	if matched, err := doublestar.PathMatch(glob, rel); err == nil && matched {
		return true
	}
	// Also try matching against just the basename for simple patterns
	if !strings.Contains(glob, "/") {
		if matched, err := doublestar.PathMatch(glob, filepath.Base(rel)); err == nil && matched {
			return true
		}
	}
	return false
}
