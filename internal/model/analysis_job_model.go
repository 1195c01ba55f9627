package model

import (
	"time"

	"gorm.io/datatypes"
)

type AnalysisJob struct {
	Id           int64          `gorm:"primaryKey;autoIncrement"`
	ThoughtId    int64          `gorm:"not null;index"`
	Uid          string         `gorm:"type:varchar(128);not null;index"`
	Step         string         `gorm:"type:varchar(50);not null"`
	Status       string         `gorm:"type:varchar(20);not null;default:queued;index"`
	Attempts     int            `gorm:"not null;default:0"`
	Error        string         `gorm:"type:text"`
	ErrorStack   string         `gorm:"type:text"`
	ErrorDetails datatypes.JSON `gorm:"type:jsonb"`
	Result       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`

	Thought Thought `gorm:"foreignKey:ThoughtId;constraint:OnDelete:CASCADE"`
}

func (AnalysisJob) TableName() string {
	return "analysis_jobs"
}
