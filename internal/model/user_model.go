package model

import "time"

type User struct {
	Uid        string    `gorm:"type:varchar(128);primaryKey"`
	Email      string    `gorm:"type:varchar(255)"`
	FullName   string    `gorm:"type:varchar(255)"`
	AvatarURL  *string   `gorm:"type:text"`
	LastSeenAt time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
