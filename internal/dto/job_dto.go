package dto

// AnalyzeThoughtMessage is the wire payload handed to the delivery
// substrate: just the job id. Anything else arriving on the topic is
// malformed and dropped without retry.
type AnalyzeThoughtMessage struct {
	JobId int64 `json:"jobId"`
}
