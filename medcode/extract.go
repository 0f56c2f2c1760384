// Package medcode extracts medical codes (diagnosis, procedure, lab and
// drug identifiers) from free text.
package medcode

import (
	"regexp"
	"sort"
	"strconv"
)

// Code is one extracted identifier with the coding system it belongs to and
// its character offset in the (normalized) input.
type Code struct {
	System string
	Value  string
	Start  int
}

// Supported coding systems, in evaluation order.
const (
	SystemICD10    = "ICD-10-CM"
	SystemICD10Sub = "ICD-10 sub"
	SystemICD9     = "ICD-9 numeric"
	SystemICD9VE   = "ICD-9 V/E"
	SystemCPT      = "CPT"
	SystemLOINC    = "LOINC"
	SystemSNOMED   = "SNOMED"
	SystemATC      = "ATC"
)

type systemPattern struct {
	system string
	re     *regexp.Regexp
}

var systemPatterns = []systemPattern{
	{SystemICD10, regexp.MustCompile(`\b[A-Z]\d{2}\.\d{1,4}\b`)},
	{SystemICD10Sub, regexp.MustCompile(`\b[A-Z]\d{2}\.[A-Z]\d{1,3}\b`)},
	{SystemICD9, regexp.MustCompile(`\b\d{3}\.\d{1,2}\b`)},
	{SystemICD9VE, regexp.MustCompile(`\b[VE]\d{3}\.\d{1,2}\b`)},
	// Only CPT codes beginning with 9, optionally with a two-digit modifier.
	{SystemCPT, regexp.MustCompile(`\b9\d{4}(?:-\d{2})?\b`)},
	{SystemLOINC, regexp.MustCompile(`\b\d{1,5}-\d\b`)},
	{SystemSNOMED, regexp.MustCompile(`\b\d{6,18}\b`)},
	{SystemATC, regexp.MustCompile(`\b[A-Z]\d{2}[A-Z]{2}\d{2}\b`)},
}

// Glued ICD-10 pairs like "N17.9U07.1" are split before matching so both
// codes surface. RE2 has no lookbehind, so the boundary is captured and
// reinserted around a space.
var icd10GlueRe = regexp.MustCompile(`(\.\d)([A-Z])`)

var fiveDigitsRe = regexp.MustCompile(`^\d{5}$`)

// Extract returns every recognized medical code in text, ordered by offset.
// ICD-9 numeric candidates above 999.9 are dropped, and bare five-digit
// SNOMED candidates are suppressed so CPT keeps precedence.
func Extract(text string) []Code {
	text = icd10GlueRe.ReplaceAllString(text, "$1 $2")

	var out []Code
	for _, sp := range systemPatterns {
		for _, loc := range sp.re.FindAllStringIndex(text, -1) {
			value := text[loc[0]:loc[1]]

			if sp.system == SystemICD9 {
				if v, err := strconv.ParseFloat(value, 64); err == nil && v > 999.9 {
					continue
				}
			}
			if sp.system == SystemSNOMED && fiveDigitsRe.MatchString(value) {
				continue
			}

			out = append(out, Code{System: sp.system, Value: value, Start: loc[0]})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Values returns just the code strings from Extract, in offset order.
func Values(text string) []string {
	codes := Extract(text)
	values := make([]string, len(codes))
	for i, c := range codes {
		values[i] = c.Value
	}
	return values
}
