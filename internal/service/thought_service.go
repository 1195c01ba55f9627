package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-journal-be/internal/dto"
	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/repository/specification"
	"ai-journal-be/internal/repository/unitofwork"
	"ai-journal-be/pkg/analysis"
	"ai-journal-be/pkg/calendar"
	"ai-journal-be/pkg/events"
	pktNats "ai-journal-be/pkg/nats"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// statusCacheTTL bounds staleness of the status aggregate; polling
	// clients hammer this endpoint so even a short TTL absorbs most reads.
	statusCacheTTL = 2 * time.Second
)

type IThoughtService interface {
	Create(ctx context.Context, uid string, req *dto.CreateThoughtRequest) (*dto.CreateThoughtResponse, error)
	Show(ctx context.Context, uid string, id int64) (*dto.ThoughtResponse, error)
	List(ctx context.Context, uid string, query *dto.ListThoughtsQuery) (*dto.ListThoughtsResponse, error)
	Update(ctx context.Context, uid string, req *dto.UpdateThoughtRequest) (*dto.UpdateThoughtResponse, error)
	Delete(ctx context.Context, uid string, id int64) error
	Status(ctx context.Context, uid string, id int64) (*dto.ThoughtStatusResponse, error)
	DailyCounts(ctx context.Context, uid string, query *dto.DailyCountsQuery) ([]entity.DayCount, error)
}

type thoughtService struct {
	uowFactory       unitofwork.RepositoryFactory
	jobService       IJobService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	redisClient      *redis.Client
}

func NewThoughtService(
	uowFactory unitofwork.RepositoryFactory,
	jobService IJobService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	redisClient *redis.Client,
) IThoughtService {
	return &thoughtService{
		uowFactory:       uowFactory,
		jobService:       jobService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		redisClient:      redisClient,
	}
}

func (c *thoughtService) Create(ctx context.Context, uid string, req *dto.CreateThoughtRequest) (*dto.CreateThoughtResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	thought := entity.Thought{
		Uid:       uid,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}

	if err := uow.ThoughtRepository().Create(ctx, &thought); err != nil {
		return nil, err
	}

	if err := c.enqueueAnalysis(ctx, uid, thought.Id); err != nil {
		return nil, err
	}

	c.publishEvent(ctx, events.ThoughtCreated, uid, thought.Id)

	return &dto.CreateThoughtResponse{Id: thought.Id}, nil
}

func (c *thoughtService) Show(ctx context.Context, uid string, id int64) (*dto.ThoughtResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	thought, err := uow.ThoughtRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{Uid: uid},
	)
	if err != nil {
		return nil, err
	}
	if thought == nil {
		return nil, ErrThoughtNotFound
	}

	tags, err := uow.ThoughtTagRepository().NamesForThought(ctx, thought.Id)
	if err != nil {
		return nil, err
	}

	return toThoughtResponse(thought, tags), nil
}

func (c *thoughtService) List(ctx context.Context, uid string, query *dto.ListThoughtsQuery) (*dto.ListThoughtsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	specs := []specification.Specification{
		specification.OwnedBy{Uid: uid},
	}

	if query.Cursor != "" {
		cursor, err := dto.DecodeCursor(query.Cursor)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.KeysetBefore{CreatedAt: cursor.At, ID: cursor.ID})
	}

	if len(query.Tags) > 0 {
		names, err := cleanTagFilter(query.Tags)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.HasAllTags{Uid: uid, Names: names})
	}

	rangeSpec, err := calendarFilter(query.Day, query.Month, query.OffsetMin)
	if err != nil {
		return nil, err
	}
	if rangeSpec != nil {
		specs = append(specs, rangeSpec)
	}

	// Fetch one extra row to learn whether a next page exists.
	specs = append(specs,
		specification.OrderByCreatedKeyset{},
		specification.Limit{N: limit + 1},
	)

	thoughts, err := uow.ThoughtRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	hasMore := len(thoughts) > limit
	if hasMore {
		thoughts = thoughts[:limit]
	}

	items := make([]*dto.ThoughtResponse, 0, len(thoughts))
	for _, thought := range thoughts {
		tags, err := uow.ThoughtTagRepository().NamesForThought(ctx, thought.Id)
		if err != nil {
			return nil, err
		}
		items = append(items, toThoughtResponse(thought, tags))
	}

	res := dto.ListThoughtsResponse{Items: items}
	if hasMore {
		last := thoughts[len(thoughts)-1]
		res.NextCursor = dto.Cursor{At: last.CreatedAt, ID: last.Id}.Encode()
	}
	return &res, nil
}

func (c *thoughtService) Update(ctx context.Context, uid string, req *dto.UpdateThoughtRequest) (*dto.UpdateThoughtResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	thought, err := uow.ThoughtRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{Uid: uid},
	)
	if err != nil {
		return nil, err
	}
	if thought == nil {
		return nil, ErrThoughtNotFound
	}

	now := time.Now().UTC()
	thought.Body = req.Body
	thought.UpdatedAt = &now

	if err := uow.ThoughtRepository().Update(ctx, thought); err != nil {
		return nil, err
	}

	// An edit re-runs the whole pipeline with fresh job rows; finished jobs
	// from the previous body stay closed.
	if err := c.enqueueAnalysis(ctx, uid, thought.Id); err != nil {
		return nil, err
	}

	c.invalidateStatusCache(ctx, uid, thought.Id)
	c.publishEvent(ctx, events.ThoughtUpdated, uid, thought.Id)

	return &dto.UpdateThoughtResponse{Id: thought.Id}, nil
}

func (c *thoughtService) Delete(ctx context.Context, uid string, id int64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	thought, err := uow.ThoughtRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{Uid: uid},
	)
	if err != nil {
		return err
	}
	if thought == nil {
		return ErrThoughtNotFound
	}

	if err := uow.ThoughtRepository().Delete(ctx, id); err != nil {
		return err
	}

	c.invalidateStatusCache(ctx, uid, id)
	c.publishEvent(ctx, events.ThoughtDeleted, uid, id)
	return nil
}

// Status folds the thought's job rows into one aggregate. The response is
// nil (not an error) for a thought that exists but has no jobs.
func (c *thoughtService) Status(ctx context.Context, uid string, id int64) (*dto.ThoughtStatusResponse, error) {
	if cached, ok := c.readStatusCache(ctx, uid, id); ok {
		return cached, nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	thought, err := uow.ThoughtRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{Uid: uid},
	)
	if err != nil {
		return nil, err
	}
	if thought == nil {
		return nil, ErrThoughtNotFound
	}

	summary, err := uow.AnalysisJobRepository().SummarizeByThought(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	status := analysis.Summarize(analysis.JobCounts{
		Total:      summary.Total,
		Queued:     summary.Queued,
		Processing: summary.Processing,
		Done:       summary.Done,
		Error:      summary.Error,
	})
	if status == "" {
		c.writeStatusCache(ctx, uid, id, nil)
		return nil, nil
	}

	res := dto.ThoughtStatusResponse{
		Status:        status,
		Total:         summary.Total,
		Queued:        summary.Queued,
		Processing:    summary.Processing,
		Done:          summary.Done,
		Error:         summary.Error,
		LastUpdatedAt: summary.LastUpdatedAt,
	}
	c.writeStatusCache(ctx, uid, id, &res)
	return &res, nil
}

func (c *thoughtService) DailyCounts(ctx context.Context, uid string, query *dto.DailyCountsQuery) ([]entity.DayCount, error) {
	year, month, err := calendar.ParseCivilMonth(query.Month)
	if err != nil {
		return nil, err
	}
	offsetMin := calendar.ClampOffsetMinutes(query.OffsetMin)
	start, end := calendar.MonthRange(year, month, offsetMin)

	var names []string
	if len(query.Tags) > 0 {
		names, err = cleanTagFilter(query.Tags)
		if err != nil {
			return nil, err
		}
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.ThoughtRepository().CountByLocalDay(ctx, uid, start, end, offsetMin*60, names)
}

// enqueueAnalysis creates one job per analysis step and hands each job id
// to the delivery substrate.
func (c *thoughtService) enqueueAnalysis(ctx context.Context, uid string, thoughtId int64) error {
	for _, step := range entity.AnalysisSteps {
		job, err := c.jobService.CreateJob(ctx, uid, thoughtId, step)
		if err != nil {
			return err
		}

		msgJson, err := json.Marshal(dto.AnalyzeThoughtMessage{JobId: job.Id})
		if err != nil {
			return err
		}
		if err := c.publisherService.Publish(ctx, msgJson); err != nil {
			return err
		}
	}
	return nil
}

func (c *thoughtService) publishEvent(ctx context.Context, eventType, uid string, thoughtId int64) {
	if c.eventPublisher == nil {
		return
	}
	evt := events.NewThoughtEvent(eventType, uid, thoughtId)
	// Events are auxiliary; the request never fails on a publish error.
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}

func statusCacheKey(uid string, thoughtId int64) string {
	return fmt.Sprintf("thought_status:%s:%d", uid, thoughtId)
}

func (c *thoughtService) readStatusCache(ctx context.Context, uid string, thoughtId int64) (*dto.ThoughtStatusResponse, bool) {
	if c.redisClient == nil {
		return nil, false
	}
	raw, err := c.redisClient.Get(ctx, statusCacheKey(uid, thoughtId)).Bytes()
	if err != nil {
		return nil, false
	}
	if string(raw) == "null" {
		return nil, true
	}
	var res dto.ThoughtStatusResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false
	}
	return &res, true
}

func (c *thoughtService) writeStatusCache(ctx context.Context, uid string, thoughtId int64, res *dto.ThoughtStatusResponse) {
	if c.redisClient == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	// Best effort; a cache miss just costs a query.
	if err := c.redisClient.Set(ctx, statusCacheKey(uid, thoughtId), raw, statusCacheTTL).Err(); err != nil {
		log.Printf("[WARN] Failed to cache status for thought %d: %v", thoughtId, err)
	}
}

func (c *thoughtService) invalidateStatusCache(ctx context.Context, uid string, thoughtId int64) {
	if c.redisClient == nil {
		return
	}
	if err := c.redisClient.Del(ctx, statusCacheKey(uid, thoughtId)).Err(); err != nil {
		log.Printf("[WARN] Failed to invalidate status cache for thought %d: %v", thoughtId, err)
	}
}

// cleanTagFilter validates a tag filter list against the tag grammar so a
// malformed name fails loudly instead of silently matching nothing.
func cleanTagFilter(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !analysis.ValidTagName(name) {
			return nil, fmt.Errorf("invalid tag filter %q", name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

// calendarFilter resolves the optional day/month listing filters into a
// UTC range specification; day wins when both are supplied.
func calendarFilter(day, month string, offsetRaw float64) (specification.Specification, error) {
	offsetMin := calendar.ClampOffsetMinutes(offsetRaw)
	switch {
	case day != "":
		y, m, d, err := calendar.ParseCivilDate(day)
		if err != nil {
			return nil, err
		}
		start, end := calendar.DayRange(y, m, d, offsetMin)
		return specification.CreatedWithin{Start: start, End: end}, nil
	case month != "":
		y, m, err := calendar.ParseCivilMonth(month)
		if err != nil {
			return nil, err
		}
		start, end := calendar.MonthRange(y, m, offsetMin)
		return specification.CreatedWithin{Start: start, End: end}, nil
	default:
		return nil, nil
	}
}

func toThoughtResponse(thought *entity.Thought, tags []string) *dto.ThoughtResponse {
	if tags == nil {
		tags = []string{}
	}
	return &dto.ThoughtResponse{
		Id:        thought.Id,
		Body:      thought.Body,
		Tags:      tags,
		CreatedAt: thought.CreatedAt,
		UpdatedAt: thought.UpdatedAt,
	}
}
