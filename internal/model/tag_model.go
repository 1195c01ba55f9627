package model

import "time"

type Tag struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	Uid        string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_tags_uid_name,priority:1"`
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_tags_uid_name,priority:2"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	LastUsedAt *time.Time
}

func (Tag) TableName() string {
	return "tags"
}
