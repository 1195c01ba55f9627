package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/mapper"
	"ai-journal-be/internal/model"
	"ai-journal-be/internal/repository/contract"
	"ai-journal-be/internal/repository/scope"
	"ai-journal-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ThoughtRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ThoughtMapper
}

func NewThoughtRepository(db *gorm.DB) contract.ThoughtRepository {
	return &ThoughtRepositoryImpl{
		db:     db,
		mapper: mapper.NewThoughtMapper(),
	}
}

func (r *ThoughtRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ThoughtRepositoryImpl) Create(ctx context.Context, thought *entity.Thought) error {
	m := r.mapper.ToModel(thought)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*thought = *r.mapper.ToEntity(m)
	return nil
}

func (r *ThoughtRepositoryImpl) Update(ctx context.Context, thought *entity.Thought) error {
	m := r.mapper.ToModel(thought)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*thought = *r.mapper.ToEntity(m)
	return nil
}

func (r *ThoughtRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Thought{}, id).Error
}

func (r *ThoughtRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thought, error) {
	var m model.Thought
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ThoughtRepositoryImpl) FindOneAnyState(ctx context.Context, specs ...specification.Specification) (*entity.Thought, error) {
	var m model.Thought
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.WithSoftDelete), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ThoughtRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thought, error) {
	var models []*model.Thought
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ThoughtRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Thought{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ThoughtRepositoryImpl) CountByLocalDay(ctx context.Context, uid string, start, end time.Time, offsetSec int, tagNames []string) ([]entity.DayCount, error) {
	// The local day is recomputed inside the query with the same offset the
	// range was derived from: local = UTC - offset.
	shift := fmt.Sprintf("%d seconds", offsetSec)

	query := r.db.WithContext(ctx).
		Table("thoughts").
		Select("to_char(thoughts.created_at - ?::interval, 'YYYY-MM-DD') AS day, COUNT(DISTINCT thoughts.id) AS count, AVG(moods.mood_score) AS avg_mood", shift).
		Joins("LEFT JOIN thought_moods moods ON moods.thought_id = thoughts.id").
		Where("thoughts.uid = ? AND thoughts.deleted_at IS NULL", uid).
		Where("thoughts.created_at >= ? AND thoughts.created_at < ?", start, end)

	if len(tagNames) > 0 {
		query = specification.HasAllTags{Uid: uid, Names: tagNames}.Apply(query)
	}

	var rows []entity.DayCount
	if err := query.Group("day").Order("day").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
