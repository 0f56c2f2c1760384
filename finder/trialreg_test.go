package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrialRegistrationLadder(t *testing.T) {
	hitNCT := "This trial was prospectively registered at ClinicalTrials.gov (NCT04567890)."
	hitISRCTN := "Trial registration: ISRCTN12345678."
	missIRB := "Protocol was filed with the IRB for review."
	missObserv := "Our observational study was recorded in a local registry."

	t.Run("v1 high recall", func(t *testing.T) {
		assert.NotEmpty(t, TrialRegistrationV1(hitNCT))
		assert.NotEmpty(t, TrialRegistrationV1(hitISRCTN))
		assert.Empty(t, TrialRegistrationV1(missIRB))
		assert.Empty(t, TrialRegistrationV1(missObserv))
	})

	t.Run("v2 verb proximity", func(t *testing.T) {
		assert.NotEmpty(t, TrialRegistrationV2(hitNCT))
		assert.Empty(t, TrialRegistrationV2(missIRB))
	})

	t.Run("v4 requires registry id", func(t *testing.T) {
		assert.NotEmpty(t, TrialRegistrationV4(hitNCT))
		// A registration verb without an identifier nearby is not enough.
		assert.Empty(t, TrialRegistrationV4("The study was registered with the local ethics board after enrollment started and no public identifier was ever assigned to it."))
	})

	t.Run("v5 tight template", func(t *testing.T) {
		assert.NotEmpty(t, TrialRegistrationV5(hitNCT))
		assert.Empty(t, TrialRegistrationV5(hitISRCTN))
		assert.Empty(t, TrialRegistrationV5(missObserv))
	})
}

func TestTrialRegistrationV3HeadingBlock(t *testing.T) {
	text := "Trial Registration:\nThe study is registered at ClinicalTrials.gov (NCT01234567).\n\nMethods\nPatients were enrolled at two sites."

	results := TrialRegistrationV3(text)
	require.NotEmpty(t, results)

	// A cue outside any registration heading block is ignored.
	assert.Empty(t, TrialRegistrationV3("The study is registered at ClinicalTrials.gov (NCT01234567)."))
}

func TestTrialRegistrationResultsAddressTokens(t *testing.T) {
	text := "Trial registration: ISRCTN12345678."
	spans := TokenSpans(text)

	for _, r := range TrialRegistrationV1(text) {
		assert.GreaterOrEqual(t, r.StartWord, 0)
		assert.LessOrEqual(t, r.StartWord, r.EndWord)
		assert.Less(t, r.EndWord, len(spans))
		assert.NotEmpty(t, r.Snippet)
	}
}

func TestTrialRegistrationFindersMap(t *testing.T) {
	require.Len(t, TrialRegistrationFinders, 5)
	for _, tier := range []string{"v1", "v2", "v3", "v4", "v5"} {
		assert.Contains(t, TrialRegistrationFinders, tier)
	}
}
