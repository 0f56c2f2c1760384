// Package pattern provides a registry of named, precompiled regular
// expressions and uniform match operations over them. The built-in table is
// assembled once at package load and is read-only afterwards, so the default
// registry is safe for concurrent readers by construction.
package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Flag is a compile-time regex option. Flags are folded into the compiled
// form once; they never change after registration.
type Flag string

const (
	// IgnoreCase makes the pattern case-insensitive ((?i)).
	IgnoreCase Flag = "i"
	// Multiline makes ^ and $ match at line boundaries ((?m)).
	Multiline Flag = "m"
	// DotAll makes . match newlines ((?s)).
	DotAll Flag = "s"
)

// Entry is a single named pattern. Both compiled forms are derived
// deterministically from Source+Flags at registration and never mutated.
type Entry struct {
	Name   string
	Source string
	Flags  []Flag

	re     *regexp.Regexp // unanchored, for Search/FindAll
	fullRe *regexp.Regexp // anchored, for FullMatch
}

// Re returns the compiled unanchored expression.
func (e *Entry) Re() *regexp.Regexp { return e.re }

// Match is the result of one successful match attempt. Instances are owned
// solely by the caller; the registry keeps no reference to them.
type Match struct {
	Pattern string
	Text    string
	Start   int
	End     int
	// Groups maps named capture groups to their captured substrings.
	// Groups that did not participate in the match are absent.
	Groups map[string]string
}

// Registry maps pattern names to compiled entries. The zero value is not
// usable; call NewRegistry. Lookups and registrations are safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// compile builds both compiled forms for a source+flags pair.
func compile(source string, flags []Flag) (re, fullRe *regexp.Regexp, err error) {
	prefix := ""
	if len(flags) > 0 {
		letters := make([]string, len(flags))
		for i, f := range flags {
			letters[i] = string(f)
		}
		prefix = "(?" + strings.Join(letters, "") + ")"
	}
	re, err = regexp.Compile(prefix + source)
	if err != nil {
		return nil, nil, err
	}
	fullRe, err = regexp.Compile(prefix + `\A(?:` + source + `)\z`)
	if err != nil {
		return nil, nil, err
	}
	return re, fullRe, nil
}

// Register compiles source with the given flags and adds it under name.
// Registering an already-present name is an error; entries are immutable once
// added.
func (r *Registry) Register(name, source string, flags ...Flag) error {
	if name == "" {
		return &InvalidInputError{Reason: "pattern name cannot be empty"}
	}
	re, fullRe, err := compile(source, flags)
	if err != nil {
		return fmt.Errorf("compiling pattern %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("pattern %q already registered", name)
	}
	r.entries[name] = &Entry{
		Name:   name,
		Source: source,
		Flags:  flags,
		re:     re,
		fullRe: fullRe,
	}
	return nil
}

// mustRegister is used for the built-in table, where the sources are fixed.
func (r *Registry) mustRegister(name, source string, flags ...Flag) {
	if err := r.Register(name, source, flags...); err != nil {
		panic(err)
	}
}

// Get returns the entry registered under name. Repeated calls return the
// same entry.
func (r *Registry) Get(name string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, &UnknownPatternError{Name: name}
	}
	return e, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Names returns all registered pattern names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is the process-wide registry holding the built-in table. It is
// populated once at package load; there is no reinitialization API.
var Default = NewRegistry()

// Package-level convenience functions delegating to Default.

// Get returns the named entry from the default registry.
func Get(name string) (*Entry, error) { return Default.Get(name) }

// FullMatch matches text in its entirety against the named default pattern.
func FullMatch(name, text string) (*Match, error) { return Default.FullMatch(name, text) }

// Search finds the first occurrence of the named default pattern in text.
func Search(name, text string) (*Match, error) { return Default.Search(name, text) }

// FindAll finds every non-overlapping occurrence of the named default
// pattern in text.
func FindAll(name, text string) ([]Match, error) { return Default.FindAll(name, text) }

// Names lists the default registry's pattern names.
func Names() []string { return Default.Names() }
