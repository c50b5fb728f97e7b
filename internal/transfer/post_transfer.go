package transfer

import "time"

type PostCreation struct {
	Content     string    `json:"content"`
	Platform    string    `json:"platform"`
	ScheduledAt time.Time `json:"scheduled_at"`
	ChannelID   string    `json:"channel_id,omitempty"`
	Draft       bool      `json:"draft,omitempty"`
}

type PostUpdate struct {
	Content     *string    `json:"content,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Status      *string    `json:"status,omitempty"`
}
