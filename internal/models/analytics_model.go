package models

import (
	"encoding/json"
	"time"
)

// AnalyticsRecord is an append-only engagement snapshot for a published
// post. Multiple records per post are expected, one per collection.
type AnalyticsRecord struct {
	ID          string          `json:"id,omitempty"`
	PostID      string          `json:"post_id"`
	UserID      string          `json:"user_id,omitempty"`
	Platform    string          `json:"platform"`
	Views       int             `json:"views"`
	Clicks      int             `json:"clicks"`
	Likes       int             `json:"likes"`
	Comments    int             `json:"comments"`
	Shares      int             `json:"shares"`
	RawResponse json.RawMessage `json:"raw_response,omitempty"`
	CollectedAt time.Time       `json:"collected_at"`
}
