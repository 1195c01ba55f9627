package unitofwork

import (
	"context"

	"ai-journal-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ThoughtRepository() contract.ThoughtRepository
	TagRepository() contract.TagRepository
	ThoughtTagRepository() contract.ThoughtTagRepository
	AnalysisJobRepository() contract.AnalysisJobRepository
	ThoughtMoodRepository() contract.ThoughtMoodRepository
}
