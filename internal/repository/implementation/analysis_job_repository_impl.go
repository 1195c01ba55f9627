package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/mapper"
	"ai-journal-be/internal/model"
	"ai-journal-be/internal/repository/contract"
	"ai-journal-be/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnalysisJobRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalysisJobMapper
}

func NewAnalysisJobRepository(db *gorm.DB) contract.AnalysisJobRepository {
	return &AnalysisJobRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalysisJobMapper(),
	}
}

func (r *AnalysisJobRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AnalysisJobRepositoryImpl) Create(ctx context.Context, job *entity.AnalysisJob) error {
	m := r.mapper.ToModel(job)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*job = *r.mapper.ToEntity(m)
	return nil
}

func (r *AnalysisJobRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisJob, error) {
	var m model.AnalysisJob
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AnalysisJobRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisJob, error) {
	var models []*model.AnalysisJob
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AnalysisJobRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AnalysisJob{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AnalysisJobRepositoryImpl) ClaimProcessing(ctx context.Context, id int64) (bool, error) {
	// Single conditional UPDATE; the row count is the claim signal. A job in
	// "done" is never touched, which is what stops a lagging duplicate
	// delivery from reprocessing a finished job.
	res := r.db.WithContext(ctx).
		Model(&model.AnalysisJob{}).
		Where("id = ? AND status <> ?", id, entity.JobStatusDone).
		Updates(map[string]interface{}{
			"status":     entity.JobStatusProcessing,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AnalysisJobRepositoryImpl) IncrementAttempts(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.AnalysisJob{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *AnalysisJobRepositoryImpl) MarkDone(ctx context.Context, id int64, result []byte) error {
	return r.db.WithContext(ctx).
		Model(&model.AnalysisJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        entity.JobStatusDone,
			"result":        datatypes.JSON(result),
			"error":         "",
			"error_stack":   "",
			"error_details": nil,
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (r *AnalysisJobRepositoryImpl) MarkError(ctx context.Context, id int64, failure entity.JobFailure, attemptsDelta int) error {
	details, err := json.Marshal(failure.Details)
	if err != nil {
		details = []byte(`{}`)
	}
	return r.db.WithContext(ctx).
		Model(&model.AnalysisJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        entity.JobStatusError,
			"error":         failure.Message,
			"error_stack":   failure.Stack,
			"error_details": datatypes.JSON(details),
			"attempts":      gorm.Expr("attempts + ?", attemptsDelta),
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (r *AnalysisJobRepositoryImpl) SummarizeByThought(ctx context.Context, uid string, thoughtId int64) (*entity.JobStatusSummary, error) {
	var row struct {
		Total         int
		Queued        int
		Processing    int
		Done          int
		Error         int
		LastUpdatedAt *time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&model.AnalysisJob{}).
		Select(
			"COUNT(*) AS total, "+
				"COUNT(*) FILTER (WHERE status = 'queued') AS queued, "+
				"COUNT(*) FILTER (WHERE status = 'processing') AS processing, "+
				"COUNT(*) FILTER (WHERE status = 'done') AS done, "+
				"COUNT(*) FILTER (WHERE status = 'error') AS error, "+
				"MAX(updated_at) AS last_updated_at").
		Where("uid = ? AND thought_id = ?", uid, thoughtId).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &entity.JobStatusSummary{
		Total:         row.Total,
		Queued:        row.Queued,
		Processing:    row.Processing,
		Done:          row.Done,
		Error:         row.Error,
		LastUpdatedAt: row.LastUpdatedAt,
	}, nil
}
