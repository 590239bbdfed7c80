package ai

import (
	"fmt"

	"agrocredit/pkg/scoring/types"
)

type mockClient struct{}

func NewMock() Client { return &mockClient{} }

// AnalyzeScoring produces a deterministic rule-of-thumb analysis when no
// model endpoint is configured.
func (m *mockClient) AnalyzeScoring(features types.FeatureRecord, b types.ScoreBreakdown, advisoryCtx string) (*Analysis, error) {
	a := &Analysis{
		Assessment: fmt.Sprintf("Total score %d/100, annual rate %.0f%% (mock analysis)", b.TotalScore, b.InterestRate*100),
		Confidence: "low",
	}

	switch {
	case b.TotalScore >= 65:
		a.Decision = "approve"
	case b.TotalScore >= 50:
		a.Decision = "review"
	default:
		a.Decision = "reject"
	}

	if b.LandScore >= 18 {
		a.Strengths = append(a.Strengths, "large land holding")
	}
	if b.MachineryScore >= 25 {
		a.Strengths = append(a.Strengths, "modern machinery fleet")
	}
	if b.EncumbranceScore <= 8 {
		a.Weaknesses = append(a.Weaknesses, "unresolved structure registrations")
		a.Recommendations = append(a.Recommendations, "complete registration of farm structures")
	}
	if b.DiversificationScore <= 3 {
		a.Weaknesses = append(a.Weaknesses, "low crop diversification")
		a.Recommendations = append(a.Recommendations, "diversify into at least two crop types")
	}
	if b.DebtToIncomeRatio > 0.5 {
		a.RiskFactors = append(a.RiskFactors, fmt.Sprintf("debt-to-income ratio %.3f exceeds 0.5", b.DebtToIncomeRatio))
	}
	return a, nil
}
