package mapper

import (
	"time"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/model"

	"gorm.io/gorm"
)

type ThoughtMapper struct{}

func NewThoughtMapper() *ThoughtMapper {
	return &ThoughtMapper{}
}

func (m *ThoughtMapper) ToEntity(t *model.Thought) *entity.Thought {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		d := t.DeletedAt.Time
		deletedAt = &d
	}

	return &entity.Thought{
		Id:        t.Id,
		Uid:       t.Uid,
		Body:      t.Body,
		Status:    t.Status,
		Error:     t.Error,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: deletedAt,
		IsDeleted: t.DeletedAt.Valid,
	}
}

func (m *ThoughtMapper) ToModel(t *entity.Thought) *model.Thought {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.Thought{
		Id:        t.Id,
		Uid:       t.Uid,
		Body:      t.Body,
		Status:    t.Status,
		Error:     t.Error,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *ThoughtMapper) ToEntities(thoughts []*model.Thought) []*entity.Thought {
	entities := make([]*entity.Thought, len(thoughts))
	for i, t := range thoughts {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
