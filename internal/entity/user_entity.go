package entity

import "time"

type User struct {
	Uid        string
	Email      string
	FullName   string
	AvatarURL  *string
	LastSeenAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
