package models

import "time"

// Account is a publisher credential bound to one platform. At most one
// active account exists per (user, platform); connecting again supersedes
// the previous row. Token is stored AES-GCM encrypted.
type Account struct {
	ID              string    `json:"id,omitempty"`
	UserID          string    `json:"user_id,omitempty"`
	Platform        string    `json:"platform"`
	Token           string    `json:"token,omitempty"`
	ChannelID       string    `json:"channel_id,omitempty"`
	ChannelName     string    `json:"channel_name,omitempty"`
	ChannelUsername string    `json:"channel_username,omitempty"`
	IsActive        bool      `json:"is_active"`
	ConnectedAt     time.Time `json:"connected_at,omitempty"`
}
