package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Mood score bounds, inclusive.
const (
	MoodScoreMin = 1
	MoodScoreMax = 5
)

// MoodResult is the validated output of a mood analysis pass.
type MoodResult struct {
	Score       int    `json:"mood_score"`
	Explanation string `json:"explanation"`
}

// ParseMoodOutput deserializes and validates the model's mood payload.
// The score must be a finite integral number inside [1, 5] and the
// explanation a non-empty string after trimming. Anything else is a
// validation error, never a silent default.
func ParseMoodOutput(text string) (*MoodResult, error) {
	var raw struct {
		MoodScore   interface{} `json:"mood_score"`
		Explanation interface{} `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("mood output is not valid JSON: %w", err)
	}

	score, err := validateMoodScore(raw.MoodScore)
	if err != nil {
		return nil, err
	}

	explanation, ok := raw.Explanation.(string)
	if !ok {
		return nil, fmt.Errorf("mood explanation must be a string, got %T", raw.Explanation)
	}
	explanation = strings.TrimSpace(explanation)
	if explanation == "" {
		return nil, fmt.Errorf("mood explanation is empty")
	}

	return &MoodResult{Score: score, Explanation: explanation}, nil
}

func validateMoodScore(v interface{}) (int, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("mood_score must be a number, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("mood_score is not finite")
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("mood_score must be an integer, got %v", f)
	}
	score := int(f)
	if score < MoodScoreMin || score > MoodScoreMax {
		return 0, fmt.Errorf("mood_score %d outside range %d..%d", score, MoodScoreMin, MoodScoreMax)
	}
	return score, nil
}

// ParseTagOutput deserializes the model's tagging payload and normalizes
// the proposed tag list.
func ParseTagOutput(text string) (TagSet, error) {
	var raw struct {
		Tags []interface{} `json:"tags"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return TagSet{}, fmt.Errorf("tag output is not valid JSON: %w", err)
	}
	return NormalizeTags(raw.Tags), nil
}
