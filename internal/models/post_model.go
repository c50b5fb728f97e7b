package models

import "time"

type Post struct {
	ID             string     `json:"id,omitempty"`
	UserID         string     `json:"user_id,omitempty"`
	Content        string     `json:"content"`
	Platform       string     `json:"platform"`
	Status         string     `json:"status"` // draft, scheduled, published, failed
	ScheduledAt    time.Time  `json:"scheduled_at"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	PlatformPostID string     `json:"platform_post_id,omitempty"`
	UTMTag         string     `json:"utm_tag,omitempty"`
	ChannelID      string     `json:"channel_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at,omitempty"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

const (
	PlatformTelegram = "telegram"
	PlatformLinkedin = "linkedin"
	PlatformVK       = "vk"
)

func KnownPlatform(platform string) bool {
	switch platform {
	case PlatformTelegram, PlatformLinkedin, PlatformVK:
		return true
	}
	return false
}
