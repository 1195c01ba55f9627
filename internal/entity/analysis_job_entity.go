package entity

import (
	"encoding/json"
	"time"
)

// Job steps. A job's step never changes after creation; new steps can be
// added without touching existing rows.
const (
	StepTagging = "tagging"
	StepMood    = "mood"
)

// Job statuses. "done" is terminal: a fresh edit creates a new job row
// instead of reopening a finished one.
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusDone       = "done"
	JobStatusError      = "error"
)

// AnalysisSteps are the steps enqueued for every thought write.
var AnalysisSteps = []string{StepTagging, StepMood}

type AnalysisJob struct {
	Id           int64
	ThoughtId    int64
	Uid          string
	Step         string
	Status       string
	Attempts     int
	Error        string
	ErrorStack   string
	ErrorDetails json.RawMessage
	Result       json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// JobFailure carries the diagnostics persisted by markError.
type JobFailure struct {
	Message string
	Stack   string
	Details map[string]interface{}
}

// JobStatusSummary is the per-thought fold of all job rows, grouped by
// status. Total <= 0 means the thought has no jobs at all.
type JobStatusSummary struct {
	Total         int        `json:"total"`
	Queued        int        `json:"queued"`
	Processing    int        `json:"processing"`
	Done          int        `json:"done"`
	Error         int        `json:"error"`
	LastUpdatedAt *time.Time `json:"last_updated_at"`
}
