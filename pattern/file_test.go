package pattern

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReader(t *testing.T) {
	doc := `
patterns:
  - name: ONC_HISTORY
    source: 'history\s+of\s+(?P<condition>\w+)'
    flags: [i]
  - name: BED_COUNT
    source: '\d+ beds'
`
	r := NewRegistry()
	require.NoError(t, r.LoadReader(strings.NewReader(doc)))

	m, err := r.Search("ONC_HISTORY", "Documented History of melanoma.")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "melanoma", m.Groups["condition"])

	assert.True(t, r.Has("BED_COUNT"))
}

func TestLoadReaderAtomicOnBadRegex(t *testing.T) {
	doc := `
patterns:
  - name: GOOD
    source: '\w+'
  - name: BAD
    source: '(unclosed'
`
	r := NewRegistry()
	err := r.LoadReader(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BAD")

	// Nothing from the failed document was registered.
	assert.False(t, r.Has("GOOD"))
	assert.False(t, r.Has("BAD"))
}

func TestLoadReaderRejectsDuplicates(t *testing.T) {
	doc := `
patterns:
  - name: DUP
    source: 'a+'
  - name: DUP
    source: 'b+'
`
	r := NewRegistry()
	err := r.LoadReader(strings.NewReader(doc))

	var invalidErr *InvalidInputError
	require.True(t, errors.As(err, &invalidErr))
	assert.False(t, r.Has("DUP"))
}

func TestLoadReaderRejectsUnknownFlag(t *testing.T) {
	doc := `
patterns:
  - name: FLAGGED
    source: 'x'
    flags: [q]
`
	r := NewRegistry()
	err := r.LoadReader(strings.NewReader(doc))

	var invalidErr *InvalidInputError
	require.True(t, errors.As(err, &invalidErr))
	assert.Contains(t, err.Error(), "FLAGGED")
}

func TestLoadReaderRejectsEmptyDocument(t *testing.T) {
	r := NewRegistry()
	err := r.LoadReader(strings.NewReader("patterns: []"))

	var invalidErr *InvalidInputError
	require.True(t, errors.As(err, &invalidErr))
}

func TestLoadReaderRejectsRegisteredName(t *testing.T) {
	doc := `
patterns:
  - name: TAKEN
    source: 'a'
`
	r := NewRegistry()
	require.NoError(t, r.Register("TAKEN", "b"))

	err := r.LoadReader(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}
