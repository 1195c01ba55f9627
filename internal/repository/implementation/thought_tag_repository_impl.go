package implementation

import (
	"context"

	"ai-journal-be/internal/model"
	"ai-journal-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThoughtTagRepositoryImpl struct {
	db *gorm.DB
}

func NewThoughtTagRepository(db *gorm.DB) contract.ThoughtTagRepository {
	return &ThoughtTagRepositoryImpl{db: db}
}

func (r *ThoughtTagRepositoryImpl) NamesForThought(ctx context.Context, thoughtId int64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("thought_tags").
		Joins("JOIN tags ON tags.id = thought_tags.tag_id").
		Where("thought_tags.thought_id = ?", thoughtId).
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *ThoughtTagRepositoryImpl) InsertPairs(ctx context.Context, thoughtId int64, tagIds []int64) error {
	if len(tagIds) == 0 {
		return nil
	}
	pairs := make([]model.ThoughtTag, len(tagIds))
	for i, tagId := range tagIds {
		pairs[i] = model.ThoughtTag{ThoughtId: thoughtId, TagId: tagId}
	}
	// Redelivered jobs may re-insert pairs that already exist.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&pairs).Error
}

func (r *ThoughtTagRepositoryImpl) DeletePairs(ctx context.Context, thoughtId int64, tagIds []int64) error {
	if len(tagIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("thought_id = ? AND tag_id IN ?", thoughtId, tagIds).
		Delete(&model.ThoughtTag{}).Error
}
