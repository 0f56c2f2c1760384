// Package medrex is a thin convenience alias over the default pattern
// registry and the cohort extractor. Everything here delegates to
// pattern.Default; nothing is duplicated or copied.
package medrex

import (
	"github.com/oxhq/medrex/cohort"
	"github.com/oxhq/medrex/pattern"
)

// Patterns is the canonical access point for the built-in registry.
var Patterns = pattern.Default

// Get returns the named entry from the default registry.
func Get(name string) (*pattern.Entry, error) { return pattern.Get(name) }

// FullMatch matches text in its entirety against the named pattern.
func FullMatch(name, text string) (*pattern.Match, error) { return pattern.FullMatch(name, text) }

// Search finds the first occurrence of the named pattern in text.
func Search(name, text string) (*pattern.Match, error) { return pattern.Search(name, text) }

// FindAll finds every non-overlapping occurrence of the named pattern.
func FindAll(name, text string) ([]pattern.Match, error) { return pattern.FindAll(name, text) }

// Extract applies the named patterns to each record in order, first match
// wins. See cohort.Extract.
func Extract(records []string, names ...string) ([]cohort.RecordMatch, error) {
	return cohort.Extract(records, names...)
}
