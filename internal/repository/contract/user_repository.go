package contract

import (
	"context"

	"ai-journal-be/internal/entity"
)

type UserRepository interface {
	// Upsert inserts the user or refreshes its profile fields and last-seen
	// timestamp; called on every authenticated request.
	Upsert(ctx context.Context, user *entity.User) error
	FindByUid(ctx context.Context, uid string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
