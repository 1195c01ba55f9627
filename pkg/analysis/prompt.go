package analysis

import (
	"fmt"
	"strings"
)

// MaxRecentTagHints caps how many recently-used tag names are offered to
// the model as a relevance hint, bounding prompt size.
const MaxRecentTagHints = 50

const taggingInstructions = `You are a tagging assistant for a personal journal.
Given a journal entry, respond with a JSON object of the form {"tags": ["..."]}.
Tags must be short single tokens using only letters, digits, underscore or hyphen.
Prefer reusing the user's existing tags when they fit. Return JSON only, no prose.`

const moodInstructions = `You are a mood analyst for a personal journal.
Given a journal entry, respond with a JSON object of the form
{"mood_score": N, "explanation": "..."} where N is an integer from 1 (very negative)
to 5 (very positive) and the explanation is one or two short sentences.
Return JSON only, no prose.`

// BuildTaggingPrompt produces the deterministic instruction/input pair for
// a tagging pass.
func BuildTaggingPrompt(body string, recentTags, currentTags []string) (instructions, input string) {
	var b strings.Builder

	if len(recentTags) > 0 {
		if len(recentTags) > MaxRecentTagHints {
			recentTags = recentTags[:MaxRecentTagHints]
		}
		fmt.Fprintf(&b, "Existing tags: %s\n", strings.Join(recentTags, ", "))
	}
	if len(currentTags) > 0 {
		fmt.Fprintf(&b, "Tags currently on this entry: %s\n", strings.Join(currentTags, ", "))
	}
	fmt.Fprintf(&b, "\nJournal entry:\n%s", body)

	return taggingInstructions, b.String()
}

// BuildMoodPrompt produces the instruction/input pair for a mood pass. Only
// the entry body is offered; tag context is deliberately omitted.
func BuildMoodPrompt(body string) (instructions, input string) {
	return moodInstructions, fmt.Sprintf("Journal entry:\n%s", body)
}
