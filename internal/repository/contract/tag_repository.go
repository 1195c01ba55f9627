package contract

import (
	"context"
	"time"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/repository/specification"
)

type TagRepository interface {
	// GetOrCreate returns the tag named name for uid, creating it lazily on
	// first use. Tags are never deleted afterwards.
	GetOrCreate(ctx context.Context, uid, name string) (*entity.Tag, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MostRecentlyUsedNames returns up to limit tag names for uid ordered by
	// last_used_at descending (never-used tags last).
	MostRecentlyUsedNames(ctx context.Context, uid string, limit int) ([]string, error)
	// TouchLastUsed bumps last_used_at for every given tag id.
	TouchLastUsed(ctx context.Context, ids []int64, at time.Time) error
}
