package entity

import "time"

type Tag struct {
	Id         int64
	Uid        string
	Name       string
	CreatedAt  time.Time
	LastUsedAt *time.Time
}
