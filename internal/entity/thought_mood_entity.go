package entity

import "time"

type ThoughtMood struct {
	Id          int64
	ThoughtId   int64
	Uid         string
	MoodScore   int
	Explanation string
	Model       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
