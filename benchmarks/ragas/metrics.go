// ABOUTME: Retrieval metrics for context recall, precision, and response faithfulness
// ABOUTME: Deterministic evaluation based on ground truth substring matches

package ragas

import (
	"fmt"
	"strings"
)

// MetricsCalculator computes scores for benchmark tests
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateFaithfulness computes faithfulness score (0.0-1.0).
// All expected items present and no forbidden items scores 1.0.
func (m *MetricsCalculator) CalculateFaithfulness(
	response string,
	expectedInResponse []string,
	forbiddenInResponse []string,
) (float64, string) {
	missingItems := missing(response, expectedInResponse)
	forbiddenFound := present(response, forbiddenInResponse)

	switch {
	case len(missingItems) == 0 && len(forbiddenFound) == 0:
		return 1.0, "Perfect faithfulness - response matches expected ground truth"
	case len(missingItems) > 0 && len(forbiddenFound) > 0:
		return 0.0, fmt.Sprintf(
			"Faithfulness failure - missing expected items: %v, forbidden items found: %v",
			missingItems, forbiddenFound,
		)
	case len(missingItems) > 0:
		return 0.5, fmt.Sprintf("Partial faithfulness - missing expected items: %v", missingItems)
	default:
		return 0.5, fmt.Sprintf("Partial faithfulness - forbidden items found: %v", forbiddenFound)
	}
}

// CalculateContextRecall is the share of expected items found in the retrieved tweets
func (m *MetricsCalculator) CalculateContextRecall(
	retrievedContext []string,
	expectedContextItems []string,
) (float64, string) {
	if len(expectedContextItems) == 0 {
		return 1.0, "No context retrieval required"
	}

	missingItems := missing(strings.Join(retrievedContext, " "), expectedContextItems)
	recall := float64(len(expectedContextItems)-len(missingItems)) / float64(len(expectedContextItems))

	if recall == 1.0 {
		return 1.0, "Perfect context recall - all expected items retrieved"
	}
	return recall, fmt.Sprintf("Partial context recall (%.2f) - missing items: %v", recall, missingItems)
}

// CalculateContextPrecision is the share of retrieved tweets containing no forbidden item
func (m *MetricsCalculator) CalculateContextPrecision(
	retrievedContext []string,
	forbiddenContextItems []string,
) (float64, string) {
	if len(retrievedContext) == 0 {
		return 1.0, "Nothing retrieved"
	}

	clean := 0
	var leaked []string
	for _, item := range retrievedContext {
		found := present(item, forbiddenContextItems)
		if len(found) == 0 {
			clean++
		} else {
			leaked = append(leaked, found...)
		}
	}

	precision := float64(clean) / float64(len(retrievedContext))
	if precision == 1.0 {
		return 1.0, "No forbidden context retrieved"
	}
	return precision, fmt.Sprintf("Forbidden context retrieved (%.2f): %v", precision, leaked)
}

// CalculatePromptFidelity is the share of expected strings present in the rendered prompt
func (m *MetricsCalculator) CalculatePromptFidelity(prompt string, expectedInPrompt []string) (float64, string) {
	if len(expectedInPrompt) == 0 {
		return 1.0, "No prompt expectations"
	}

	missingItems := missing(prompt, expectedInPrompt)
	score := float64(len(expectedInPrompt)-len(missingItems)) / float64(len(expectedInPrompt))
	if score == 1.0 {
		return 1.0, "Prompt contains every expected line"
	}
	return score, fmt.Sprintf("Prompt missing: %v", missingItems)
}

// EvaluateTest scores one scenario. response is empty when no chat model ran.
func (m *MetricsCalculator) EvaluateTest(
	scenario TestScenario,
	retrievedContext []string,
	prompt string,
	response string,
) TestResult {
	gt := scenario.GroundTruth

	recall, recallDetail := m.CalculateContextRecall(retrievedContext, gt.ExpectedContextItems)
	precision, precisionDetail := m.CalculateContextPrecision(retrievedContext, gt.ForbiddenContextItems)
	fidelity, fidelityDetail := m.CalculatePromptFidelity(prompt, gt.ExpectedInPrompt)

	scores := []float64{recall, precision, fidelity}
	details := map[string]interface{}{
		"recall_detail":    recallDetail,
		"precision_detail": precisionDetail,
		"prompt_detail":    fidelityDetail,
		"context_items":    len(retrievedContext),
	}

	var faithfulness *float64
	if response != "" {
		score, detail := m.CalculateFaithfulness(response, gt.ExpectedInResponse, gt.ForbiddenInResponse)
		faithfulness = &score
		scores = append(scores, score)
		details["faithfulness_detail"] = detail
		details["final_response"] = response[:min(200, len(response))]
	}

	// Every computed metric has to clear 0.9
	status := "PASS"
	total := 0.0
	for _, s := range scores {
		total += s
		if s < 0.9 {
			status = "FAIL"
		}
	}

	return TestResult{
		TestID:                scenario.ID,
		TestName:              scenario.Name,
		ContextRecallScore:    recall,
		ContextPrecisionScore: precision,
		PromptFidelityScore:   fidelity,
		FaithfulnessScore:     faithfulness,
		OverallScore:          total / float64(len(scores)),
		Status:                status,
		Details:               details,
	}
}

// missing returns the items not found in text, case-insensitively
func missing(text string, items []string) []string {
	upper := strings.ToUpper(text)
	var out []string
	for _, item := range items {
		if !strings.Contains(upper, strings.ToUpper(item)) {
			out = append(out, item)
		}
	}
	return out
}

// present returns the items found in text, case-insensitively
func present(text string, items []string) []string {
	upper := strings.ToUpper(text)
	var out []string
	for _, item := range items {
		if strings.Contains(upper, strings.ToUpper(item)) {
			out = append(out, item)
		}
	}
	return out
}
