package implementation

import (
	"context"
	"errors"
	"time"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/mapper"
	"ai-journal-be/internal/model"
	"ai-journal-be/internal/repository/contract"
	"ai-journal-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThoughtMoodRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ThoughtMoodMapper
}

func NewThoughtMoodRepository(db *gorm.DB) contract.ThoughtMoodRepository {
	return &ThoughtMoodRepositoryImpl{
		db:     db,
		mapper: mapper.NewThoughtMoodMapper(),
	}
}

func (r *ThoughtMoodRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ThoughtMoodRepositoryImpl) Upsert(ctx context.Context, mood *entity.ThoughtMood) error {
	m := r.mapper.ToModel(mood)
	m.UpdatedAt = time.Now().UTC()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "thought_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"mood_score", "explanation", "model", "updated_at",
			}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*mood = *r.mapper.ToEntity(m)
	return nil
}

func (r *ThoughtMoodRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ThoughtMood, error) {
	var m model.ThoughtMood
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ThoughtMoodRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ThoughtMood{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
