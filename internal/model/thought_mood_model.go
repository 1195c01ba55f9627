package model

import "time"

type ThoughtMood struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	ThoughtId   int64     `gorm:"not null;uniqueIndex"`
	Uid         string    `gorm:"type:varchar(128);not null;index"`
	MoodScore   int       `gorm:"not null;check:mood_score >= 1 AND mood_score <= 5"`
	Explanation string    `gorm:"type:text;not null"`
	Model       string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Thought Thought `gorm:"foreignKey:ThoughtId;constraint:OnDelete:CASCADE"`
}

func (ThoughtMood) TableName() string {
	return "thought_moods"
}
