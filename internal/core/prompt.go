// ABOUTME: Prompt rendering for persona tweet simulation
// ABOUTME: Fixed template wrapping retrieved examples and task instructions
package core

import (
	"fmt"
	"strings"

	"github.com/harper/tweetsim/internal/models"
)

const promptTemplate = `
Celebrity: %s
Event: %s

Here are some of their past tweets to guide the style:
---
%s
---

Task:
- Generate 2-3 plausible new tweets in this persona’s style
- Limit to 280 characters each
- Reflect how this persona might react to the event
`

// FormatExample renders one retrieved tweet as "- (YYYY-MM-DD): text"
func FormatExample(t models.Tweet) string {
	return fmt.Sprintf("- (%s): %s", t.DateString(), t.Text)
}

// BuildPrompt renders the user prompt for a celebrity reacting to an event
func BuildPrompt(celebrity, event string, examples []models.RetrievedTweet) string {
	lines := make([]string, len(examples))
	for i, ex := range examples {
		lines[i] = FormatExample(ex.Tweet)
	}
	return fmt.Sprintf(promptTemplate, celebrity, event, strings.Join(lines, "\n"))
}
