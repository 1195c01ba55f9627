package mapper

import (
	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/model"
)

type ThoughtMoodMapper struct{}

func NewThoughtMoodMapper() *ThoughtMoodMapper {
	return &ThoughtMoodMapper{}
}

func (m *ThoughtMoodMapper) ToEntity(t *model.ThoughtMood) *entity.ThoughtMood {
	if t == nil {
		return nil
	}
	return &entity.ThoughtMood{
		Id:          t.Id,
		ThoughtId:   t.ThoughtId,
		Uid:         t.Uid,
		MoodScore:   t.MoodScore,
		Explanation: t.Explanation,
		Model:       t.Model,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *ThoughtMoodMapper) ToModel(t *entity.ThoughtMood) *model.ThoughtMood {
	if t == nil {
		return nil
	}
	return &model.ThoughtMood{
		Id:          t.Id,
		ThoughtId:   t.ThoughtId,
		Uid:         t.Uid,
		MoodScore:   t.MoodScore,
		Explanation: t.Explanation,
		Model:       t.Model,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
