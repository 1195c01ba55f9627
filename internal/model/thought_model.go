package model

import (
	"time"

	"gorm.io/gorm"
)

type Thought struct {
	Id        int64          `gorm:"primaryKey;autoIncrement"`
	Uid       string         `gorm:"type:varchar(128);not null;index"`
	Body      string         `gorm:"type:text;not null"`
	Status    string         `gorm:"type:varchar(50)"`
	Error     string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_thoughts_keyset,priority:1"`
	UpdatedAt *time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Thought) TableName() string {
	return "thoughts"
}

type ThoughtTag struct {
	ThoughtId int64 `gorm:"primaryKey;autoIncrement:false"`
	TagId     int64 `gorm:"primaryKey;autoIncrement:false"`

	Thought Thought `gorm:"foreignKey:ThoughtId;constraint:OnDelete:CASCADE"`
	Tag     Tag     `gorm:"foreignKey:TagId;constraint:OnDelete:CASCADE"`
}

func (ThoughtTag) TableName() string {
	return "thought_tags"
}
