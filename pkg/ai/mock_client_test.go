package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocredit/pkg/scoring/types"
)

func TestMockDecisionThresholds(t *testing.T) {
	m := NewMock()

	cases := []struct {
		total    int
		decision string
	}{
		{80, "approve"},
		{65, "approve"},
		{64, "review"},
		{50, "review"},
		{49, "reject"},
		{0, "reject"},
	}
	for _, c := range cases {
		a, err := m.AnalyzeScoring(types.FeatureRecord{}, types.ScoreBreakdown{TotalScore: c.total}, "")
		require.NoError(t, err)
		assert.Equal(t, c.decision, a.Decision, "total %d", c.total)
	}
}

func TestMockFlagsWeaknesses(t *testing.T) {
	m := NewMock()

	a, err := m.AnalyzeScoring(types.FeatureRecord{}, types.ScoreBreakdown{
		TotalScore:           40,
		EncumbranceScore:     3,
		DiversificationScore: 3,
		DebtToIncomeRatio:    0.62,
	}, "")
	require.NoError(t, err)

	assert.NotEmpty(t, a.Weaknesses)
	assert.NotEmpty(t, a.Recommendations)
	require.Len(t, a.RiskFactors, 1)
	assert.Contains(t, a.RiskFactors[0], "0.620")
}
