package contract

import (
	"context"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/repository/specification"
)

type AnalysisJobRepository interface {
	Create(ctx context.Context, job *entity.AnalysisJob) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisJob, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisJob, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// ClaimProcessing conditionally moves the job to "processing". The update
	// only touches rows whose status is not "done"; the returned bool is the
	// affected-row count collapsed to a claim signal. "done" is terminal.
	ClaimProcessing(ctx context.Context, id int64) (bool, error)
	// IncrementAttempts bumps attempts by one, unconditionally. Attempts only
	// ever grow; they are never reset.
	IncrementAttempts(ctx context.Context, id int64) error
	// MarkDone sets status=done, clears the error fields and stores result.
	MarkDone(ctx context.Context, id int64, result []byte) error
	// MarkError sets status=error with diagnostics, bumping attempts by
	// attemptsDelta (pass 0 when the attempt was already counted).
	MarkError(ctx context.Context, id int64, failure entity.JobFailure, attemptsDelta int) error
	// SummarizeByThought folds all job rows for one thought into per-status
	// counts. A thought with no jobs yields a zero summary.
	SummarizeByThought(ctx context.Context, uid string, thoughtId int64) (*entity.JobStatusSummary, error)
}
