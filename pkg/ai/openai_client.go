package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agrocredit/pkg/scoring/types"
)

type openAI struct {
	endpoint string
	key      string
	model    string
}

func NewOpenAI(endpoint, key, model string) Client {
	return &openAI{endpoint: endpoint, key: key, model: model}
}

func (c *openAI) AnalyzeScoring(features types.FeatureRecord, b types.ScoreBreakdown, advisoryCtx string) (*Analysis, error) {
	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are an agricultural credit underwriting expert. Reply ONLY valid JSON."},
			{"role": "user", "content": renderAnalysisPrompt(features, b, advisoryCtx)},
		},
		"temperature": 0.2,
	}

	buf, _ := json.Marshal(reqBody)
	httpc := &http.Client{Timeout: 25 * time.Second}
	req, _ := http.NewRequest("POST", strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(buf))
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("no choices")
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	// models occasionally wrap JSON in a code fence
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var a Analysis
	if err := json.Unmarshal([]byte(content), &a); err != nil {
		return nil, fmt.Errorf("parse analysis: %v / raw: %s", err, content)
	}
	if a.Decision == "" {
		a.Decision = "review"
	}
	return &a, nil
}

func renderAnalysisPrompt(f types.FeatureRecord, b types.ScoreBreakdown, advisoryCtx string) string {
	fj, _ := json.Marshal(f)
	bj, _ := json.Marshal(b)
	return fmt.Sprintf(`Analyze this agricultural credit scoring outcome and respond with JSON only:
{"overall_assessment":"...","strengths":["..."],"weaknesses":["..."],"risk_factors":["..."],"recommendations":["..."],"loan_decision":"approve|reject|review","confidence_level":"high|medium|low"}

The numeric score is final; your analysis must explain it, not change it.

FEATURES:
%s

SCORING RESULT:
%s

ADVISORY NOTES (optional context, do not copy verbatim):
%s
`, fj, bj, advisoryCtx)
}
