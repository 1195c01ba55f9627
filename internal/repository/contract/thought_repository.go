package contract

import (
	"context"
	"time"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/repository/specification"
)

type ThoughtRepository interface {
	Create(ctx context.Context, thought *entity.Thought) error
	Update(ctx context.Context, thought *entity.Thought) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thought, error)
	// FindOneAnyState looks up a thought ignoring the soft-delete scope so
	// in-flight jobs can detect deletion and short-circuit.
	FindOneAnyState(ctx context.Context, specs ...specification.Specification) (*entity.Thought, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thought, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountByLocalDay groups thoughts in [start, end) by their local calendar
	// day (UTC shifted by offsetSec) with the mean mood score per day.
	CountByLocalDay(ctx context.Context, uid string, start, end time.Time, offsetSec int, tagNames []string) ([]entity.DayCount, error)
}
