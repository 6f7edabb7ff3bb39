package tracker

import (
	"context"

	"stayhub-backend/internal/aiclient"
)

// AnalysisBatchSize bounds how many TODOs go into one provider call
const AnalysisBatchSize = 25

// Analysis is the provider's verdict on one TODO
type Analysis struct {
	Title    string `json:"title"`
	Priority string `json:"priority"` // low | medium | high
	Effort   string `json:"effort"`   // small | medium | large
	Summary  string `json:"summary"`
}

type analysisRequest struct {
	Items []analysisItem `json:"items"`
}

type analysisItem struct {
	Title string `json:"title"`
	File  string `json:"file"`
	Line  int    `json:"line"`
}

type analysisResponse struct {
	Results []Analysis `json:"results"`
}

// AnalyzeBatch asks the AI provider to triage TODOs in batches. When
// the provider is not configured the sync runs without analysis.
func AnalyzeBatch(ctx context.Context, ai *aiclient.Client, items []TodoItem) (map[string]Analysis, error) {
	if !ai.Enabled() || len(items) == 0 {
		return nil, nil
	}

	results := make(map[string]Analysis, len(items))
	for start := 0; start < len(items); start += AnalysisBatchSize {
		end := start + AnalysisBatchSize
		if end > len(items) {
			end = len(items)
		}

		req := analysisRequest{}
		for _, item := range items[start:end] {
			req.Items = append(req.Items, analysisItem{
				Title: item.Title,
				File:  item.File,
				Line:  item.Line,
			})
		}

		var resp analysisResponse
		if err := ai.Post(ctx, "/v1/todo-analysis", req, &resp); err != nil {
			return nil, err
		}

		for _, result := range resp.Results {
			results[result.Title] = result
		}
	}

	return results, nil
}
