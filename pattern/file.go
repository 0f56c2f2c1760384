package pattern

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileEntry is one pattern definition in a YAML pattern file:
//
//	patterns:
//	  - name: ONC_HISTORY
//	    source: 'history\s+of\s+\w+'
//	    flags: [i]
type fileEntry struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Flags  []string `yaml:"flags"`
}

type patternFile struct {
	Patterns []fileEntry `yaml:"patterns"`
}

// LoadReader parses a YAML pattern document and registers every entry.
// The load is atomic: entries are validated and compiled before any of them
// is registered, so a malformed source or duplicate name leaves the registry
// untouched.
func (r *Registry) LoadReader(src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("reading pattern file: %w", err)
	}

	var pf patternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parsing pattern file: %w", err)
	}
	if len(pf.Patterns) == 0 {
		return &InvalidInputError{Reason: "pattern file defines no patterns"}
	}

	type compiled struct {
		entry fileEntry
		flags []Flag
	}
	pending := make([]compiled, 0, len(pf.Patterns))
	seen := make(map[string]struct{}, len(pf.Patterns))
	for _, fe := range pf.Patterns {
		if fe.Name == "" || fe.Source == "" {
			return &InvalidInputError{Reason: "pattern file entry missing name or source"}
		}
		if _, dup := seen[fe.Name]; dup {
			return &InvalidInputError{Reason: fmt.Sprintf("pattern file defines %q twice", fe.Name)}
		}
		seen[fe.Name] = struct{}{}
		if r.Has(fe.Name) {
			return fmt.Errorf("pattern %q already registered", fe.Name)
		}

		flags := make([]Flag, 0, len(fe.Flags))
		for _, f := range fe.Flags {
			switch Flag(f) {
			case IgnoreCase, Multiline, DotAll:
				flags = append(flags, Flag(f))
			default:
				return &InvalidInputError{Reason: fmt.Sprintf("pattern %q has unknown flag %q", fe.Name, f)}
			}
		}
		if _, _, err := compile(fe.Source, flags); err != nil {
			return fmt.Errorf("compiling pattern %q: %w", fe.Name, err)
		}
		pending = append(pending, compiled{entry: fe, flags: flags})
	}

	for _, c := range pending {
		if err := r.Register(c.entry.Name, c.entry.Source, c.flags...); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile registers the patterns defined in the YAML file at path.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening pattern file: %w", err)
	}
	defer f.Close()
	return r.LoadReader(f)
}
