// Package cohort applies named patterns over columns of free-text records,
// the selection step of building a clinical cohort. It operates on plain
// string slices so callers can feed it rows from any table engine.
package cohort

import (
	"github.com/oxhq/medrex/pattern"
)

// RecordMatch pairs an input record's position with its match, if any.
// Match is nil for records no pattern matched.
type RecordMatch struct {
	Index int
	Match *pattern.Match
}

// Extractor applies an ordered list of pattern names from one registry.
type Extractor struct {
	reg *pattern.Registry
}

// NewExtractor returns an Extractor reading from reg.
func NewExtractor(reg *pattern.Registry) *Extractor {
	return &Extractor{reg: reg}
}

// Extract scans each record with the named patterns in the order given.
// The first pattern that matches a record wins and later patterns are
// skipped for that record; this is an explicit precedence rule, not a merge.
// Every name is resolved before any record is scanned, so an unknown name
// fails the whole call with no partial output.
func (x *Extractor) Extract(records []string, names ...string) ([]RecordMatch, error) {
	if len(names) == 0 {
		return nil, &pattern.InvalidInputError{Reason: "at least one pattern name is required"}
	}

	// Fail fast on bad names; skipping one would silently reorder precedence.
	for _, name := range names {
		if _, err := x.reg.Get(name); err != nil {
			return nil, err
		}
	}

	out := make([]RecordMatch, len(records))
	for i, rec := range records {
		out[i] = RecordMatch{Index: i}
		for _, name := range names {
			m, err := x.reg.Search(name, rec)
			if err != nil {
				return nil, err
			}
			if m != nil {
				out[i].Match = m
				break
			}
		}
	}
	return out, nil
}

// Extract applies the named patterns over records using the default registry.
func Extract(records []string, names ...string) ([]RecordMatch, error) {
	return NewExtractor(pattern.Default).Extract(records, names...)
}
