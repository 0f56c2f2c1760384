// Package finder implements precision/recall ladders for locating
// clinical-trial reporting statements in free text. Each topic exposes five
// tiers, v1 (high recall) through v5 (high precision); every tier is a plain
// function from text to word-indexed results, so tiers can be swapped or
// composed by callers tuning for their corpus.
package finder

import (
	"regexp"
	"sort"
)

// Result is one located statement, addressed by word index into the
// whitespace-delimited token stream of the input.
type Result struct {
	StartWord int
	EndWord   int
	Snippet   string
}

// Func is a single ladder tier.
type Func func(text string) []Result

var tokenRe = regexp.MustCompile(`\S+`)

// TokenSpans returns the character spans of whitespace-delimited tokens.
func TokenSpans(text string) [][]int {
	return tokenRe.FindAllStringIndex(text, -1)
}

// charToWord maps a character span to the word indexes of its first and
// last token.
func charToWord(start, end int, spans [][]int) (int, int) {
	ws := sort.Search(len(spans), func(i int) bool { return spans[i][1] > start })
	we := ws
	for we+1 < len(spans) && spans[we+1][0] < end {
		we++
	}
	return ws, we
}

// collect gathers matches of every pattern, skipping any whose surrounding
// context trips the trap expression.
func collect(patterns []*regexp.Regexp, trap *regexp.Regexp, contextChars int, text string) []Result {
	spans := TokenSpans(text)
	var out []Result
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if trap != nil {
				lo := loc[0] - contextChars
				if lo < 0 {
					lo = 0
				}
				hi := loc[1] + contextChars
				if hi > len(text) {
					hi = len(text)
				}
				if trap.MatchString(text[lo:hi]) {
					continue
				}
			}
			ws, we := charToWord(loc[0], loc[1], spans)
			out = append(out, Result{StartWord: ws, EndWord: we, Snippet: text[loc[0]:loc[1]]})
		}
	}
	return out
}

// matchWords returns the sorted start-word indexes of every match of re.
func matchWords(re *regexp.Regexp, text string, spans [][]int) []int {
	locs := re.FindAllStringIndex(text, -1)
	words := make([]int, 0, len(locs))
	for _, loc := range locs {
		ws, _ := charToWord(loc[0], loc[1], spans)
		words = append(words, ws)
	}
	sort.Ints(words)
	return words
}

// nearAny reports whether sorted holds a value within distance of w.
func nearAny(sorted []int, w, distance int) bool {
	i := sort.SearchInts(sorted, w-distance)
	return i < len(sorted) && sorted[i] <= w+distance
}

// headingBlocks returns [start, end) character ranges covering blockChars
// characters after each heading match.
func headingBlocks(heading *regexp.Regexp, text string, blockChars int) [][]int {
	var blocks [][]int
	for _, loc := range heading.FindAllStringIndex(text, -1) {
		end := loc[1] + blockChars
		if end > len(text) {
			end = len(text)
		}
		blocks = append(blocks, []int{loc[1], end})
	}
	return blocks
}

func insideBlocks(pos int, blocks [][]int) bool {
	for _, b := range blocks {
		if b[0] <= pos && pos < b[1] {
			return true
		}
	}
	return false
}
