package dto

import "time"

type CreateThoughtRequest struct {
	Body string `json:"body" validate:"required,max=10000"`
}

type CreateThoughtResponse struct {
	Id int64 `json:"id"`
}

type UpdateThoughtRequest struct {
	Id   int64  `json:"-"`
	Body string `json:"body" validate:"required,max=10000"`
}

type UpdateThoughtResponse struct {
	Id int64 `json:"id"`
}

type ThoughtResponse struct {
	Id        int64      `json:"id"`
	Body      string     `json:"body"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ListThoughtsQuery carries the listing filters; all optional.
type ListThoughtsQuery struct {
	Cursor    string
	Limit     int
	Tags      []string
	Day       string // YYYY-MM-DD
	Month     string // YYYY-MM
	OffsetMin float64
}

type ListThoughtsResponse struct {
	Items      []*ThoughtResponse `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

// ThoughtStatusResponse mirrors the aggregator surface; the whole payload
// is null for a thought with no jobs.
type ThoughtStatusResponse struct {
	Status        string     `json:"status"`
	Total         int        `json:"total"`
	Queued        int        `json:"queued"`
	Processing    int        `json:"processing"`
	Done          int        `json:"done"`
	Error         int        `json:"error"`
	LastUpdatedAt *time.Time `json:"last_updated_at"`
}

type DailyCountsQuery struct {
	Month     string // YYYY-MM, required
	OffsetMin float64
	Tags      []string
}
