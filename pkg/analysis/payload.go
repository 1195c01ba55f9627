package analysis

import "encoding/json"

// Skip markers recorded on jobs that finish without doing work. A skip is
// marked done, explicitly distinct from failure.
const (
	SkipThoughtDeleted = "thought_deleted"
	SkipUnknownStep    = "unknown_step"
)

// TaggingResult is persisted as the job result of a successful tagging pass.
type TaggingResult struct {
	Model   string   `json:"model"`
	Tags    []string `json:"tags"`
	Invalid []string `json:"invalid,omitempty"`
}

// MoodJobResult is persisted as the job result of a successful mood pass,
// mirroring the stored mood row.
type MoodJobResult struct {
	Model       string `json:"model"`
	MoodScore   int    `json:"mood_score"`
	Explanation string `json:"explanation"`
}

// SkippedResult marks a job that completed as a no-op.
type SkippedResult struct {
	Skipped string `json:"skipped"`
}

// MarshalResult serializes a result payload for the job row; it falls back
// to an empty object rather than failing job completion on a marshal error.
func MarshalResult(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte(`{}`)
	}
	return data
}
