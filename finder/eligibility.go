package finder

import "regexp"

// Eligibility-criteria cues. The trap filters diagnostic/classification
// criteria, which read like eligibility language but describe something else.
var (
	inclCueRe = regexp.MustCompile(`(?i)\b(?:eligible\s+(?:patients|participants|subjects|individuals)\s+were|inclusion\s+criteria\s+(?:included|were|consisted\s+of)|eligible\s+if|criteria\s+for\s+enrollment|patients?\s+were\s+eligible|we\s+included|must\s+meet\s+all\s+of\s+the\s+following|required\s+to\s+have)\b`)

	exclCueRe = regexp.MustCompile(`(?i)\b(?:we\s+excluded|exclusion\s+criteria|excluded\s+patients?|patients?\s+were\s+excluded|exclusion\s+included|were\s+not\s+eligible|must\s+not\s+have)\b`)

	eligCueRe = regexp.MustCompile(`(?i)\b(?:inclusion\s+criteria|exclusion\s+criteria|eligible|enrollment\s+criteria)\b`)

	eligHeadingRe = regexp.MustCompile(`(?im)^(?:eligibility|inclusion\s+and\s+exclusion\s+criteria|study\s+population|participants?)\s*[:\-]?\s*$`)

	eligQualifierRe = regexp.MustCompile(`(?i)\b(?:age\s+\d{1,3}|\d{1,3}\s*(?:years?|yrs?)|male|female|men|women|diagnosed|history\s+of)\b`)

	eligTrapRe = regexp.MustCompile(`(?i)\b(?:diagnostic\s+criteria|classification\s+criteria|performance\s+criteria)\b`)

	eligTightRe = regexp.MustCompile(`(?i)\b(?:adults?|children)\s+\d{1,3}(?:–|-|\s+to\s+)\d{1,3}\s+[^.\n]{0,80}(?:eligible|inclusion\s+criteria)[^.\n]{0,120}(?:exclusion\s+criteria|were\s+excluded)\b`)
)

// EligibilityCriteriaV1 is the high-recall tier: any inclusion, exclusion or
// general eligibility cue, with trap filtering.
func EligibilityCriteriaV1(text string) []Result {
	return collect([]*regexp.Regexp{inclCueRe, exclCueRe, eligCueRe}, eligTrapRe, 25, text)
}

// EligibilityCriteriaV2 keeps inclusion/exclusion cues that have a concrete
// qualifier (age, sex, diagnosis) within four words.
func EligibilityCriteriaV2(text string) []Result {
	const window = 4
	spans := TokenSpans(text)
	qualWords := matchWords(eligQualifierRe, text, spans)

	var out []Result
	for _, re := range []*regexp.Regexp{inclCueRe, exclCueRe} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			ws, we := charToWord(loc[0], loc[1], spans)
			if !nearAny(qualWords, ws, window) && !nearAny(qualWords, we, window) {
				continue
			}
			out = append(out, Result{StartWord: ws, EndWord: we, Snippet: text[loc[0]:loc[1]]})
		}
	}
	return out
}

// EligibilityCriteriaV3 keeps cues appearing inside an eligibility heading
// block (the 500 characters after the heading).
func EligibilityCriteriaV3(text string) []Result {
	spans := TokenSpans(text)
	blocks := headingBlocks(eligHeadingRe, text, 500)

	var out []Result
	for _, re := range []*regexp.Regexp{inclCueRe, exclCueRe} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if !insideBlocks(loc[0], blocks) {
				continue
			}
			ws, we := charToWord(loc[0], loc[1], spans)
			out = append(out, Result{StartWord: ws, EndWord: we, Snippet: text[loc[0]:loc[1]]})
		}
	}
	return out
}

// EligibilityCriteriaV4 keeps inclusion cues that have an exclusion cue
// within six words, requiring both halves of a criteria statement.
func EligibilityCriteriaV4(text string) []Result {
	const window = 6
	spans := TokenSpans(text)
	exclWords := matchWords(exclCueRe, text, spans)

	var out []Result
	for _, loc := range inclCueRe.FindAllStringIndex(text, -1) {
		ws, we := charToWord(loc[0], loc[1], spans)
		if !nearAny(exclWords, ws, window) && !nearAny(exclWords, we, window) {
			continue
		}
		out = append(out, Result{StartWord: ws, EndWord: we, Snippet: text[loc[0]:loc[1]]})
	}
	return out
}

// EligibilityCriteriaV5 is the high-precision tier: a paired statement
// listing age eligibility and an explicit exclusion.
func EligibilityCriteriaV5(text string) []Result {
	return collect([]*regexp.Regexp{eligTightRe}, eligTrapRe, 25, text)
}

// EligibilityCriteriaFinders maps tier names to their finders.
var EligibilityCriteriaFinders = map[string]Func{
	"v1": EligibilityCriteriaV1,
	"v2": EligibilityCriteriaV2,
	"v3": EligibilityCriteriaV3,
	"v4": EligibilityCriteriaV4,
	"v5": EligibilityCriteriaV5,
}
