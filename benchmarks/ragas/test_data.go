// ABOUTME: Benchmark scenarios for retrieval and simulation quality
// ABOUTME: Each scenario carries a small corpus, one query, and its ground truth

package ragas

// TestScenario represents one retrieval benchmark
type TestScenario struct {
	ID          string
	Name        string
	Description string
	Corpus      []CorpusRow
	Celebrity   string
	Event       string
	TopK        int
	GroundTruth GroundTruth
}

// CorpusRow is one CSV row of a scenario corpus
type CorpusRow struct {
	Celebrity string
	Date      string
	Text      string
}

// GroundTruth defines expected outcomes for evaluation
type GroundTruth struct {
	// Context retrieval expectations, matched against retrieved tweet text
	ExpectedContextItems  []string
	ForbiddenContextItems []string

	// Strings the rendered prompt must contain
	ExpectedInPrompt []string

	// Response expectations; only checked when a chat model is configured
	ExpectedInResponse  []string
	ForbiddenInResponse []string
}

// TestResult represents the outcome of a benchmark test
type TestResult struct {
	TestID                string                 `json:"test_id"`
	TestName              string                 `json:"test_name"`
	ContextRecallScore    float64                `json:"context_recall"`
	ContextPrecisionScore float64                `json:"context_precision"`
	PromptFidelityScore   float64                `json:"prompt_fidelity"`
	FaithfulnessScore     *float64               `json:"faithfulness,omitempty"`
	OverallScore          float64                `json:"overall"`
	Status                string                 `json:"status"` // "PASS" or "FAIL"
	Details               map[string]interface{} `json:"details,omitempty"`
}

var sharedCorpus = []CorpusRow{
	{"Elon Musk", "2021-02-04", "Dogecoin is the people's crypto"},
	{"Elon Musk", "2021-04-01", "Dogecoin to the moon"},
	{"Elon Musk", "2020-05-30", "Rocket launch went perfectly today"},
	{"Elon Musk", "2019-11-22", "Cybertruck glass was supposed to hold"},
	{"Elon Musk", "2020-12-20", "Mars base by 2030 is the plan"},
	{"Elon Musk", "2021-03-14", "Grammys tonight should be wild"},
	{"Taylor Swift", "2021-03-14", "Grammys tonight with my favorite people"},
	{"Taylor Swift", "2020-07-24", "Wrote a new song about cats"},
	{"Taylor Swift", "2021-05-01", "Dogecoin memes are everywhere lately"},
}

// GetTest1A returns Test 1A: topical recall within one persona
func GetTest1A() TestScenario {
	return TestScenario{
		ID:          "test_1a",
		Name:        "Topical Recall",
		Description: "Tweets sharing the event's topic should rank first for the celebrity",
		Corpus:      sharedCorpus,
		Celebrity:   "Elon Musk",
		Event:       "Dogecoin price jumps",
		TopK:        2,
		GroundTruth: GroundTruth{
			ExpectedContextItems:  []string{"people's crypto", "to the moon"},
			ForbiddenContextItems: []string{"memes", "Rocket launch"},
			ExpectedInPrompt:      []string{"Celebrity: Elon Musk", "Event: Dogecoin price jumps"},
			ExpectedInResponse:    []string{"doge"},
		},
	}
}

// GetTest1B returns Test 1B: persona isolation on a shared topic
func GetTest1B() TestScenario {
	return TestScenario{
		ID:          "test_1b",
		Name:        "Persona Isolation",
		Description: "Another celebrity's tweets about the same event must never be retrieved",
		Corpus:      sharedCorpus,
		Celebrity:   "Taylor Swift",
		Event:       "Grammys tonight",
		TopK:        5,
		GroundTruth: GroundTruth{
			ExpectedContextItems:  []string{"favorite people", "song about cats"},
			ForbiddenContextItems: []string{"should be wild"},
			ExpectedInPrompt:      []string{"Celebrity: Taylor Swift"},
		},
	}
}

// GetTest2A returns Test 2A: prompt rendering of the best example
func GetTest2A() TestScenario {
	return TestScenario{
		ID:          "test_2a",
		Name:        "Prompt Fidelity",
		Description: "The top example is rendered with its date and the fixed task instructions",
		Corpus:      sharedCorpus,
		Celebrity:   "Elon Musk",
		Event:       "Mars mission announced",
		TopK:        1,
		GroundTruth: GroundTruth{
			ExpectedContextItems: []string{"Mars base"},
			ExpectedInPrompt: []string{
				"- (2020-12-20): Mars base by 2030 is the plan",
				"Limit to 280 characters each",
			},
			ExpectedInResponse: []string{"mars"},
		},
	}
}

// GetAllTests returns every benchmark scenario
func GetAllTests() []TestScenario {
	return []TestScenario{
		GetTest1A(),
		GetTest1B(),
		GetTest2A(),
	}
}
