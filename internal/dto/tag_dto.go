package dto

import "time"

type TagResponse struct {
	Id         int64      `json:"id"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

type ListTagsResponse struct {
	Items      []*TagResponse `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
