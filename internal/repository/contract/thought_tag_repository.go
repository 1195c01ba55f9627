package contract

import "context"

type ThoughtTagRepository interface {
	// NamesForThought returns the names of the tags currently associated
	// with the thought.
	NamesForThought(ctx context.Context, thoughtId int64) ([]string, error)
	InsertPairs(ctx context.Context, thoughtId int64, tagIds []int64) error
	DeletePairs(ctx context.Context, thoughtId int64, tagIds []int64) error
}
