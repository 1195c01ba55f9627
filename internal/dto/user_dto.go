package dto

import "time"

type UserResponse struct {
	Uid        string    `json:"uid"`
	Email      string    `json:"email,omitempty"`
	FullName   string    `json:"full_name,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
