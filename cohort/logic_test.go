package cohort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCohortLogic(t *testing.T) {
	text := "Patients with ICD-10 diagnosis codes for diabetes were identified " +
		"during the baseline period on an inpatient basis."

	spans := FindCohortLogic(text)
	require.NotEmpty(t, spans)

	snippets := make([]string, len(spans))
	for i, s := range spans {
		snippets[i] = s.Text
		assert.LessOrEqual(t, 0, s.Start)
		assert.Less(t, s.Start, s.End)
		assert.LessOrEqual(t, s.End, len(text))
		assert.Equal(t, text[s.Start:s.End], s.Text)
	}
	assert.Contains(t, snippets, "ICD-10")
	assert.Contains(t, snippets, "diagnosis codes")

	// The window scans forward from each candidate, so a trailing context
	// cue with no code term after it is not itself reported.
	assert.NotContains(t, snippets, "inpatient basis")
}

func TestFindCohortLogicSorted(t *testing.T) {
	text := "Cohort definition used CPT codes within 30 days of the index date " +
		"for patients with an inpatient stay; exclusion criteria applied."

	spans := FindCohortLogic(text)
	require.NotEmpty(t, spans)
	for i := 1; i < len(spans); i++ {
		assert.LessOrEqual(t, spans[i-1].Start, spans[i].Start)
	}
}

func TestFindCohortLogicRequiresCodeTerm(t *testing.T) {
	// Contextual cues alone, without any code-system term, must not qualify.
	text := "Participants were followed during the baseline period in an outpatient setting."
	assert.Empty(t, FindCohortLogic(text))
}

func TestFindCohortLogicRequiresContext(t *testing.T) {
	// A code-system mention without temporal/eligibility/setting context.
	text := "The appendix lists SNOMED terms used by the annotation team."
	assert.Empty(t, FindCohortLogic(text))
}

func TestFindCohortLogicPlainText(t *testing.T) {
	assert.Empty(t, FindCohortLogic("The weather was pleasant and nobody was enrolled."))
	assert.Empty(t, FindCohortLogic(""))
}
