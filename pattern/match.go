package pattern

import "regexp"

// matchFromIndex builds a Match from a submatch index slice as returned by
// FindStringSubmatchIndex. Named groups that did not participate are omitted.
func matchFromIndex(name, text string, re *regexp.Regexp, idx []int) *Match {
	m := &Match{
		Pattern: name,
		Text:    text[idx[0]:idx[1]],
		Start:   idx[0],
		End:     idx[1],
	}
	for i, groupName := range re.SubexpNames() {
		if groupName == "" || 2*i >= len(idx) {
			continue
		}
		s, e := idx[2*i], idx[2*i+1]
		if s < 0 {
			continue
		}
		if m.Groups == nil {
			m.Groups = make(map[string]string)
		}
		m.Groups[groupName] = text[s:e]
	}
	return m
}

// FullMatch attempts to match the entire input against the named pattern.
// It returns nil when the whole string does not satisfy the pattern; it
// never partially matches.
func (r *Registry) FullMatch(name, text string) (*Match, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	idx := e.fullRe.FindStringSubmatchIndex(text)
	if idx == nil {
		return nil, nil
	}
	return matchFromIndex(name, text, e.fullRe, idx), nil
}

// Search finds the first occurrence of the named pattern anywhere in text.
// It returns nil when there is no occurrence.
func (r *Registry) Search(name, text string) (*Match, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	idx := e.re.FindStringSubmatchIndex(text)
	if idx == nil {
		return nil, nil
	}
	return matchFromIndex(name, text, e.re, idx), nil
}

// FindAll returns every non-overlapping occurrence of the named pattern in
// text, left to right. Each call derives a fresh slice from the current
// input; a text with no occurrences yields an empty result, not an error.
func (r *Registry) FindAll(name, text string) ([]Match, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	all := e.re.FindAllStringSubmatchIndex(text, -1)
	out := make([]Match, len(all))
	for i, idx := range all {
		out[i] = *matchFromIndex(name, text, e.re, idx)
	}
	return out, nil
}
