package service

import (
	"context"
	"errors"
	"log"
	"runtime/debug"
	"time"

	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/repository/specification"
	"ai-journal-be/internal/repository/unitofwork"
	"ai-journal-be/pkg/ai"
	"ai-journal-be/pkg/analysis"
)

// IAnalyzerService runs one enrichment job end to end. A nil return means
// the message carrying the job can be acknowledged; a non-nil return means
// the job was marked errored and should be redelivered.
type IAnalyzerService interface {
	ProcessJob(ctx context.Context, jobId int64) error
}

type analyzerService struct {
	uowFactory     unitofwork.RepositoryFactory
	jobService     IJobService
	aiClient       *ai.Client
	taggingModel   string
	moodModel      string
	recentTagLimit int
}

func NewAnalyzerService(
	uowFactory unitofwork.RepositoryFactory,
	jobService IJobService,
	aiClient *ai.Client,
	taggingModel string,
	moodModel string,
	recentTagLimit int,
) IAnalyzerService {
	if recentTagLimit <= 0 || recentTagLimit > analysis.MaxRecentTagHints {
		recentTagLimit = analysis.MaxRecentTagHints
	}
	return &analyzerService{
		uowFactory:     uowFactory,
		jobService:     jobService,
		aiClient:       aiClient,
		taggingModel:   taggingModel,
		moodModel:      moodModel,
		recentTagLimit: recentTagLimit,
	}
}

func (as *analyzerService) ProcessJob(ctx context.Context, jobId int64) error {
	job, err := as.jobService.LoadJob(ctx, jobId)
	if err != nil {
		return err
	}

	claimed, err := as.jobService.ClaimProcessing(ctx, job.Id)
	if err != nil {
		return err
	}
	if !claimed {
		// Already done; a redelivered message for a finished job is a no-op.
		log.Printf("[INFO] Job %d already completed, skipping", job.Id)
		return nil
	}

	if err := as.jobService.IncrementAttempts(ctx, job.Id); err != nil {
		return err
	}

	uow := as.uowFactory.NewUnitOfWork(ctx)
	thought, err := uow.ThoughtRepository().FindOneAnyState(ctx,
		specification.ByID{ID: job.ThoughtId},
		specification.OwnedBy{Uid: job.Uid},
	)
	if err != nil {
		return as.failJob(ctx, job, err)
	}
	if thought == nil || thought.IsDeleted {
		// The thought disappeared between enqueue and pickup. Not a failure.
		log.Printf("[INFO] Thought %d gone, skipping job %d", job.ThoughtId, job.Id)
		return as.jobService.MarkDone(ctx, job.Id,
			analysis.MarshalResult(analysis.SkippedResult{Skipped: analysis.SkipThoughtDeleted}))
	}

	switch job.Step {
	case entity.StepTagging:
		err = as.processTagging(ctx, uow, job, thought)
	case entity.StepMood:
		err = as.processMood(ctx, uow, job, thought)
	default:
		log.Printf("[WARN] Job %d has unknown step %q, skipping", job.Id, job.Step)
		return as.jobService.MarkDone(ctx, job.Id,
			analysis.MarshalResult(analysis.SkippedResult{Skipped: analysis.SkipUnknownStep}))
	}
	if err != nil {
		return as.failJob(ctx, job, err)
	}
	return nil
}

func (as *analyzerService) processTagging(ctx context.Context, uow unitofwork.UnitOfWork, job *entity.AnalysisJob, thought *entity.Thought) error {
	recent, err := uow.TagRepository().MostRecentlyUsedNames(ctx, job.Uid, as.recentTagLimit)
	if err != nil {
		return err
	}
	current, err := uow.ThoughtTagRepository().NamesForThought(ctx, thought.Id)
	if err != nil {
		return err
	}

	instructions, input := analysis.BuildTaggingPrompt(thought.Body, recent, current)
	resp, err := as.aiClient.Run(ctx, as.taggingModel, instructions, input)
	if err != nil {
		return err
	}
	text, err := ai.ExtractText(resp)
	if err != nil {
		return err
	}
	tagSet, err := analysis.ParseTagOutput(text)
	if err != nil {
		return err
	}

	if err := as.applyTagSet(ctx, uow, job.Uid, thought.Id, current, tagSet.Valid); err != nil {
		return err
	}

	return as.jobService.MarkDone(ctx, job.Id, analysis.MarshalResult(analysis.TaggingResult{
		Model:   as.taggingModel,
		Tags:    tagSet.Valid,
		Invalid: tagSet.Invalid,
	}))
}

// applyTagSet reconciles the thought's associations toward desired. The
// reconciliation is idempotent: re-running a tagging job with the same
// output leaves the associations unchanged.
func (as *analyzerService) applyTagSet(ctx context.Context, uow unitofwork.UnitOfWork, uid string, thoughtId int64, current, desired []string) error {
	toAdd, toRemove := analysis.DiffTagNames(current, desired)

	now := time.Now().UTC()
	var desiredIds []int64
	for _, name := range desired {
		tag, err := uow.TagRepository().GetOrCreate(ctx, uid, name)
		if err != nil {
			return err
		}
		desiredIds = append(desiredIds, tag.Id)
	}

	if len(toAdd) > 0 {
		addTags, err := uow.TagRepository().FindAll(ctx,
			specification.OwnedBy{Uid: uid},
			specification.ByNames{Names: toAdd},
		)
		if err != nil {
			return err
		}
		addIds := make([]int64, 0, len(addTags))
		for _, tag := range addTags {
			addIds = append(addIds, tag.Id)
		}
		if err := uow.ThoughtTagRepository().InsertPairs(ctx, thoughtId, addIds); err != nil {
			return err
		}
	}

	if len(toRemove) > 0 {
		removeTags, err := uow.TagRepository().FindAll(ctx,
			specification.OwnedBy{Uid: uid},
			specification.ByNames{Names: toRemove},
		)
		if err != nil {
			return err
		}
		removeIds := make([]int64, 0, len(removeTags))
		for _, tag := range removeTags {
			removeIds = append(removeIds, tag.Id)
		}
		if err := uow.ThoughtTagRepository().DeletePairs(ctx, thoughtId, removeIds); err != nil {
			return err
		}
	}

	// Tag rows themselves are never deleted; only last_used_at moves.
	if len(desiredIds) > 0 {
		if err := uow.TagRepository().TouchLastUsed(ctx, desiredIds, now); err != nil {
			return err
		}
	}
	return nil
}

func (as *analyzerService) processMood(ctx context.Context, uow unitofwork.UnitOfWork, job *entity.AnalysisJob, thought *entity.Thought) error {
	instructions, input := analysis.BuildMoodPrompt(thought.Body)
	resp, err := as.aiClient.Run(ctx, as.moodModel, instructions, input)
	if err != nil {
		return err
	}
	text, err := ai.ExtractText(resp)
	if err != nil {
		return err
	}
	result, err := analysis.ParseMoodOutput(text)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	mood := entity.ThoughtMood{
		ThoughtId:   thought.Id,
		Uid:         job.Uid,
		MoodScore:   result.Score,
		Explanation: result.Explanation,
		Model:       as.moodModel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uow.ThoughtMoodRepository().Upsert(ctx, &mood); err != nil {
		return err
	}

	return as.jobService.MarkDone(ctx, job.Id, analysis.MarshalResult(analysis.MoodJobResult{
		Model:       as.moodModel,
		MoodScore:   result.Score,
		Explanation: result.Explanation,
	}))
}

// failJob records the failure diagnostics on the job row and propagates the
// original error so the caller schedules a redelivery. Attempts were already
// counted at claim time, so the delta here is zero.
func (as *analyzerService) failJob(ctx context.Context, job *entity.AnalysisJob, cause error) error {
	failure := entity.JobFailure{
		Message: cause.Error(),
		Stack:   string(debug.Stack()),
	}
	var aiErr *ai.Error
	if errors.As(cause, &aiErr) {
		failure.Details = aiErr.Details()
	}
	if err := as.jobService.MarkError(ctx, job.Id, failure, 0); err != nil {
		log.Printf("[ERROR] Failed to record error on job %d: %v", job.Id, err)
	}
	return cause
}
