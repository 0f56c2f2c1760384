package cohort

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/medrex/pattern"
)

func TestExtractPreservesOrderAndAlignment(t *testing.T) {
	records := []string{"a", "b12b", "c"}
	results, err := Extract(records, pattern.Digit)
	require.NoError(t, err)
	require.Len(t, results, len(records))

	for i, rm := range results {
		assert.Equal(t, i, rm.Index)
	}
	assert.Nil(t, results[0].Match)
	require.NotNil(t, results[1].Match)
	assert.Equal(t, "12", results[1].Match.Text)
	assert.Nil(t, results[2].Match)
}

func TestExtractFirstPatternWins(t *testing.T) {
	// Both patterns match the record; the one named first must win.
	records := []string{"email info@example.com code N17.9"}

	results, err := Extract(records, pattern.ICD10CM, pattern.Email)
	require.NoError(t, err)
	require.NotNil(t, results[0].Match)
	assert.Equal(t, pattern.ICD10CM, results[0].Match.Pattern)

	reversed, err := Extract(records, pattern.Email, pattern.ICD10CM)
	require.NoError(t, err)
	require.NotNil(t, reversed[0].Match)
	assert.Equal(t, pattern.Email, reversed[0].Match.Pattern)
}

func TestExtractLaterPatternsCoverOtherRecords(t *testing.T) {
	records := []string{
		"id 44054006 on file", // SNOMED
		"contact x@y.org",     // EMAIL only
		"nothing relevant",    // no match
	}
	results, err := Extract(records, pattern.SNOMED, pattern.Email)
	require.NoError(t, err)

	require.NotNil(t, results[0].Match)
	assert.Equal(t, pattern.SNOMED, results[0].Match.Pattern)
	require.NotNil(t, results[1].Match)
	assert.Equal(t, pattern.Email, results[1].Match.Pattern)
	assert.Nil(t, results[2].Match)
}

func TestExtractUnknownPatternFailsFast(t *testing.T) {
	records := []string{"info@example.com", "also info@example.com"}

	results, err := Extract(records, pattern.Email, "NOPE")
	require.Error(t, err)
	assert.Nil(t, results, "no partial output on error")

	var unknownErr *pattern.UnknownPatternError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "NOPE", unknownErr.Name)
}

func TestExtractRequiresAtLeastOneName(t *testing.T) {
	_, err := Extract([]string{"a"})

	var invalidErr *pattern.InvalidInputError
	require.True(t, errors.As(err, &invalidErr))
}

func TestExtractEmptyRecords(t *testing.T) {
	results, err := Extract(nil, pattern.Email)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExtractorCustomRegistry(t *testing.T) {
	reg := pattern.NewRegistry()
	require.NoError(t, reg.Register("VOWELS", `[aeiou]+`))

	x := NewExtractor(reg)
	results, err := x.Extract([]string{"rhythm", "beat"}, "VOWELS")
	require.NoError(t, err)

	assert.Nil(t, results[0].Match)
	require.NotNil(t, results[1].Match)
	assert.Equal(t, "ea", results[1].Match.Text)
}
