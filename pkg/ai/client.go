package ai

import "agrocredit/pkg/scoring/types"

// Analysis is the structured narrative a model returns for a computed
// score. It is advisory only and never feeds back into the numbers.
type Analysis struct {
	Assessment      string   `json:"overall_assessment"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	RiskFactors     []string `json:"risk_factors"`
	Recommendations []string `json:"recommendations"`
	Decision        string   `json:"loan_decision"`    // approve|reject|review
	Confidence      string   `json:"confidence_level"` // high|medium|low
}

type Client interface {
	AnalyzeScoring(features types.FeatureRecord, breakdown types.ScoreBreakdown, advisoryCtx string) (*Analysis, error)
}
