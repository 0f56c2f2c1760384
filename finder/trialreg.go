package finder

import "regexp"

// Trial-registration cues. Traps keep IRB/ethics approvals and unrelated
// registries from counting as registration statements.
var (
	registryIDRe = regexp.MustCompile(`(?i)\b(?:NCT\d{8}|ISRCTN\d{6,8}|EudraCT\s*\d{4}-\d{6}-\d{2}|ChiCTR(?:-\w+)?|ANZCTR\s*\w+|JPRN-\w+|ClinicalTrials\.gov|ISRCTN|EudraCT|ChiCTR)\b`)

	regCueRe = regexp.MustCompile(`(?i)\b(?:trial\s+registration|study\s+registered|registered\s+(?:at|in|with|on)|recorded\s+as|registration\s+was\s+recorded|prospectively\s+registered|ChiCTR|ClinicalTrials\.gov|EudraCT|ISRCTN)\b`)

	regVerbRe = regexp.MustCompile(`(?i)\b(?:registered|recorded|submitted|prospectively\s+registered)\b`)

	regHeadingRe = regexp.MustCompile(`(?im)^(?:trial\s+registration|registration)\s*[:\-]?\s*$`)

	regTightRe = regexp.MustCompile(`(?i)(?:this\s+)?trial\s+was\s+prospectively\s+registered(?:\s+at\s+\w+)?[^\n]{0,60}?(?:NCT\d{8}|ISRCTN\d{6,8}|EudraCT\s*\d{4}-\d{6}-\d{2}|ChiCTR-\w+)`)

	regTrapRe = regexp.MustCompile(`(?i)\bIRB\s+|ethical\s+approval|registry\s+of\s+deeds\b`)
)

// TrialRegistrationV1 is the high-recall tier: any registration cue or
// registry identifier, with trap filtering.
func TrialRegistrationV1(text string) []Result {
	return collect([]*regexp.Regexp{regCueRe, registryIDRe}, regTrapRe, 40, text)
}

// TrialRegistrationV2 keeps cues that have a registration verb within six
// words.
func TrialRegistrationV2(text string) []Result {
	return trialRegistrationNear(text, 6)
}

func trialRegistrationNear(text string, window int) []Result {
	spans := TokenSpans(text)
	verbWords := matchWords(regVerbRe, text, spans)

	var out []Result
	for _, re := range []*regexp.Regexp{regCueRe, registryIDRe} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			ws, we := charToWord(loc[0], loc[1], spans)
			if !nearAny(verbWords, ws, window) {
				continue
			}
			out = append(out, Result{StartWord: ws, EndWord: we, Snippet: text[loc[0]:loc[1]]})
		}
	}
	return out
}

// TrialRegistrationV3 keeps cues appearing inside a Trial Registration
// heading block (the 400 characters after the heading).
func TrialRegistrationV3(text string) []Result {
	spans := TokenSpans(text)
	blocks := headingBlocks(regHeadingRe, text, 400)

	var out []Result
	for _, re := range []*regexp.Regexp{regCueRe, registryIDRe} {
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

// TrialRegistrationV4 tightens V2 by additionally requiring an explicit
// registry identifier within the same window.
func TrialRegistrationV4(text string) []Result {
	const window = 6
	spans := TokenSpans(text)
	idWords := matchWords(registryIDRe, text, spans)

	var out []Result
	for _, r := range trialRegistrationNear(text, window) {
		if nearAny(idWords, r.StartWord, window) || nearAny(idWords, r.EndWord, window) {
			out = append(out, r)
		}
	}
	return out
}

// TrialRegistrationV5 is the high-precision tier: the tight "prospectively
// registered at ... (NCT...)" template.
func TrialRegistrationV5(text string) []Result {
	return collect([]*regexp.Regexp{regTightRe}, regTrapRe, 40, text)
}

// TrialRegistrationFinders maps tier names to their finders.
var TrialRegistrationFinders = map[string]Func{
	"v1": TrialRegistrationV1,
	"v2": TrialRegistrationV2,
	"v3": TrialRegistrationV3,
	"v4": TrialRegistrationV4,
	"v5": TrialRegistrationV5,
}
