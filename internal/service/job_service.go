package service

import (
	"context"
	"time"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/repository/specification"
	"ai-journal-be/internal/repository/unitofwork"
)

// IJobService is the job lifecycle manager. The state machine is
// queued -> processing -> {done | error}; "done" is terminal for a row and
// retry happens by the substrate redelivering the same job id, never by
// this service reopening a row.
type IJobService interface {
	CreateJob(ctx context.Context, uid string, thoughtId int64, step string) (*entity.AnalysisJob, error)
	LoadJob(ctx context.Context, id int64) (*entity.AnalysisJob, error)
	ClaimProcessing(ctx context.Context, id int64) (bool, error)
	IncrementAttempts(ctx context.Context, id int64) error
	MarkDone(ctx context.Context, id int64, result []byte) error
	MarkError(ctx context.Context, id int64, failure entity.JobFailure, attemptsDelta int) error
}

type jobService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewJobService(uowFactory unitofwork.RepositoryFactory) IJobService {
	return &jobService{
		uowFactory: uowFactory,
	}
}

func (s *jobService) CreateJob(ctx context.Context, uid string, thoughtId int64, step string) (*entity.AnalysisJob, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	job := entity.AnalysisJob{
		ThoughtId: thoughtId,
		Uid:       uid,
		Step:      step,
		Status:    entity.JobStatusQueued,
		Attempts:  0,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := uow.AnalysisJobRepository().Create(ctx, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *jobService) LoadJob(ctx context.Context, id int64) (*entity.AnalysisJob, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	job, err := uow.AnalysisJobRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (s *jobService) ClaimProcessing(ctx context.Context, id int64) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AnalysisJobRepository().ClaimProcessing(ctx, id)
}

func (s *jobService) IncrementAttempts(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AnalysisJobRepository().IncrementAttempts(ctx, id)
}

func (s *jobService) MarkDone(ctx context.Context, id int64, result []byte) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AnalysisJobRepository().MarkDone(ctx, id, result)
}

func (s *jobService) MarkError(ctx context.Context, id int64, failure entity.JobFailure, attemptsDelta int) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AnalysisJobRepository().MarkError(ctx, id, failure, attemptsDelta)
}
