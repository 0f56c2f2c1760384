package cohort

import (
	"regexp"
	"sort"
)

// Span is one detected fragment of cohort-definition logic.
type Span struct {
	Start int
	End   int
	Text  string
}

// Cue classes for OHDSI-style cohort definitions. A fragment qualifies when
// a code-system term and at least one contextual cue (temporal window,
// inclusion/exclusion rule, or care setting) fall inside the same token
// window.
var (
	codeTermRe = regexp.MustCompile(`(?i)(?:icd(?:[- ]?(?:9|10|11))?|icd[- ]?cm|icd[- ]?o|international classification of diseases(?:[- ]?(?:9|10|11))?)|cpt|current procedural terminology(?:[- ]?4)?|hcpcs|healthcare common procedure coding system|snomed(?:[ -]?ct)?|rxnorm|loinc|read codes?|icpc|atc(?:\s+codes?)?|(?:diagnosis|procedure|billing|financial)\s+codes?`)

	temporalWindowRe = regexp.MustCompile(`(?i)(?:look[- ]?back|wash[- ]?out|baseline|observation|follow[- ]?up|time[- ]?at[- ]?risk|index)\s+(?:period|window|date|time)|(?:prior|subsequent)\s+(?:to|observation|enrollment|index)|\d+\s*(?:days|months|years)\s+of\s+(?:observation|enrollment|follow[- ]?up)|(?:fixed time|time window|temporal)|within\s*\d+\s*(?:day|week|month|year)s?|in\s+the\s+(?:past|previous)\s+\d+\s*(?:months?|years?)|at\s+least\s+\d+\s*(?:months?|years?)|prior\s+to\s+(?:the\s+)?(?:index|cohort\s+entry)\s+date?|pre[- ]?index|post[- ]?index|during\s+the\s+\d+\s*(?:day|week|month|year)\s+baseline|after\s+(?:discharge|index)|\bindex\b`)

	inclExclRe = regexp.MustCompile(`(?i)(?:inclusion|exclusion|eligibility|selection)\s+criteria|(?:included|excluded)\s+(?:patients|subjects|participants|individuals)|(?:required|criteria for)\s+(?:inclusion|exclusion|eligibility)|cohort definition|phenotype algorithm|(?:must|had)\s+to\s+have|must\s+have|must\s+not\s+have|required\s+to\s+have|patients?\s+with.+?(?:were|was)\s+excluded?`)

	careSettingRe = regexp.MustCompile(`(?i)(?:inpatient|outpatient|ambulatory)\s+(?:setting|visit|stay|care|record|encounter|population|basis)|(?:hospitalized|hospitalization|admitted\s+to\s+(?:hospital|inpatient))|(?:emergency\s+department|ed|emergency\s+room|er)\s+(?:visit|setting|care|encounter)|(?:clinic|primary care|specialty care)\s+(?:visit|setting|record|encounter)|primary care|specialist visit|telehealth visit|same[- ]?day surgery|day[- ]?case`)
)

// logicWindow is the token distance within which a code term and a context
// cue must co-occur for a candidate to qualify.
const logicWindow = 2000

// FindCohortLogic identifies fragments of cohort-definition logic in free
// text, such as a methods section or protocol. A candidate cue of any class
// is reported only when a code-system term and a contextual cue both occur
// within the token window starting at the candidate.
func FindCohortLogic(text string) []Span {
	spans := tokenSpans(text)

	codeWords := matchStartWords(codeTermRe, text, spans)
	contextWords := append(matchStartWords(temporalWindowRe, text, spans),
		append(matchStartWords(inclExclRe, text, spans),
			matchStartWords(careSettingRe, text, spans)...)...)
	sort.Ints(contextWords)

	var out []Span
	for _, re := range []*regexp.Regexp{codeTermRe, temporalWindowRe, inclExclRe, careSettingRe} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			w := wordAt(loc[0], spans)
			if !anyInWindow(codeWords, w, logicWindow) || !anyInWindow(contextWords, w, logicWindow) {
				continue
			}
			out = append(out, Span{Start: loc[0], End: loc[1], Text: text[loc[0]:loc[1]]})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return dedupeSpans(out)
}

// tokenSpans returns the character spans of whitespace-delimited tokens.
var tokenRe = regexp.MustCompile(`\S+`)

func tokenSpans(text string) [][]int {
	return tokenRe.FindAllStringIndex(text, -1)
}

// wordAt maps a character offset to the index of the token containing or
// following it.
func wordAt(pos int, spans [][]int) int {
	i := sort.Search(len(spans), func(i int) bool { return spans[i][1] > pos })
	if i == len(spans) {
		return len(spans) - 1
	}
	return i
}

func matchStartWords(re *regexp.Regexp, text string, spans [][]int) []int {
	locs := re.FindAllStringIndex(text, -1)
	words := make([]int, 0, len(locs))
	for _, loc := range locs {
		words = append(words, wordAt(loc[0], spans))
	}
	sort.Ints(words)
	return words
}

// anyInWindow reports whether sorted has a value in [from, from+window).
func anyInWindow(sorted []int, from, window int) bool {
	i := sort.SearchInts(sorted, from)
	return i < len(sorted) && sorted[i] < from+window
}

func dedupeSpans(in []Span) []Span {
	out := in[:0]
	for i, s := range in {
		if i > 0 && s == in[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
