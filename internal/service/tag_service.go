package service

import (
	"context"
	"time"

	"ai-journal-be/internal/dto"
	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/repository/specification"
	"ai-journal-be/internal/repository/unitofwork"
)

type ITagService interface {
	List(ctx context.Context, uid string, cursor string, limit int) (*dto.ListTagsResponse, error)
}

type tagService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTagService(uowFactory unitofwork.RepositoryFactory) ITagService {
	return &tagService{
		uowFactory: uowFactory,
	}
}

// List pages the user's tags by recency of use. Never-used tags sort as if
// last used at the epoch, so they trail every used tag deterministically.
func (c *tagService) List(ctx context.Context, uid string, cursor string, limit int) (*dto.ListTagsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	specs := []specification.Specification{
		specification.OwnedBy{Uid: uid},
	}
	if cursor != "" {
		decoded, err := dto.DecodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.TagKeysetBefore{LastUsedAt: decoded.At, ID: decoded.ID})
	}
	specs = append(specs,
		specification.OrderByLastUsedKeyset{},
		specification.Limit{N: limit + 1},
	)

	tags, err := uow.TagRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	hasMore := len(tags) > limit
	if hasMore {
		tags = tags[:limit]
	}

	items := make([]*dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		items = append(items, &dto.TagResponse{
			Id:         tag.Id,
			Name:       tag.Name,
			CreatedAt:  tag.CreatedAt,
			LastUsedAt: tag.LastUsedAt,
		})
	}

	res := dto.ListTagsResponse{Items: items}
	if hasMore {
		last := tags[len(tags)-1]
		res.NextCursor = dto.Cursor{At: tagSortKey(last), ID: last.Id}.Encode()
	}
	return &res, nil
}

// tagSortKey mirrors the storage-side COALESCE on last_used_at.
func tagSortKey(tag *entity.Tag) time.Time {
	if tag.LastUsedAt != nil {
		return *tag.LastUsedAt
	}
	return time.Unix(0, 0).UTC()
}
