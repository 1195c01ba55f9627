package mapper

import (
	"encoding/json"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/model"

	"gorm.io/datatypes"
)

type AnalysisJobMapper struct{}

func NewAnalysisJobMapper() *AnalysisJobMapper {
	return &AnalysisJobMapper{}
}

func (m *AnalysisJobMapper) ToEntity(j *model.AnalysisJob) *entity.AnalysisJob {
	if j == nil {
		return nil
	}
	return &entity.AnalysisJob{
		Id:           j.Id,
		ThoughtId:    j.ThoughtId,
		Uid:          j.Uid,
		Step:         j.Step,
		Status:       j.Status,
		Attempts:     j.Attempts,
		Error:        j.Error,
		ErrorStack:   j.ErrorStack,
		ErrorDetails: json.RawMessage(j.ErrorDetails),
		Result:       json.RawMessage(j.Result),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func (m *AnalysisJobMapper) ToModel(j *entity.AnalysisJob) *model.AnalysisJob {
	if j == nil {
		return nil
	}
	return &model.AnalysisJob{
		Id:           j.Id,
		ThoughtId:    j.ThoughtId,
		Uid:          j.Uid,
		Step:         j.Step,
		Status:       j.Status,
		Attempts:     j.Attempts,
		Error:        j.Error,
		ErrorStack:   j.ErrorStack,
		ErrorDetails: datatypes.JSON(j.ErrorDetails),
		Result:       datatypes.JSON(j.Result),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func (m *AnalysisJobMapper) ToEntities(jobs []*model.AnalysisJob) []*entity.AnalysisJob {
	entities := make([]*entity.AnalysisJob, len(jobs))
	for i, j := range jobs {
		entities[i] = m.ToEntity(j)
	}
	return entities
}
