package entity

import "time"

// DayCount is one local-calendar-day bucket of the daily aggregation:
// how many thoughts fall on that day and the mean mood score of the ones
// that have a mood row (nil when none do).
type DayCount struct {
	Day     string   `json:"day"`
	Count   int64    `json:"count"`
	AvgMood *float64 `json:"avg_mood"`
}

type Thought struct {
	Id        int64
	Uid       string
	Body      string
	Status    string
	Error     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
