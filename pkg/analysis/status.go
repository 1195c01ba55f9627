package analysis

// JobCounts is the per-thought grouping of job rows by status.
type JobCounts struct {
	Total      int
	Queued     int
	Processing int
	Done       int
	Error      int
}

// Summarize collapses the counts into one user-facing label, or "" when the
// thought has no jobs at all. Precedence is strict: a single erroring step
// surfaces as "error" for the whole thought even while sibling steps are
// still queued or processing.
func Summarize(c JobCounts) string {
	if c.Total <= 0 {
		return ""
	}
	switch {
	case c.Error > 0:
		return "error"
	case c.Processing > 0:
		return "processing"
	case c.Queued > 0:
		return "queued"
	default:
		return "done"
	}
}
