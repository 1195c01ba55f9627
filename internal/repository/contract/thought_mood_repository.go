package contract

import (
	"context"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/repository/specification"
)

type ThoughtMoodRepository interface {
	// Upsert creates the mood row on first success and overwrites it on
	// every later one; a thought never has more than one mood row.
	Upsert(ctx context.Context, mood *entity.ThoughtMood) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ThoughtMood, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
