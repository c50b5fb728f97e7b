package transfer

import (
	"encoding/json"
	"time"
)

type AnalyticsRefresh struct {
	PostID   string `json:"post_id"`
	Platform string `json:"platform"`
}

// AnalyticsStats is one normalized metrics snapshot as returned by a
// platform fetch. RawResponse keeps the platform payload verbatim for
// operator diagnosis.
type AnalyticsStats struct {
	PostID      string          `json:"post_id"`
	Platform    string          `json:"platform"`
	Views       int             `json:"views"`
	Clicks      int             `json:"clicks"`
	Likes       int             `json:"likes"`
	Comments    int             `json:"comments"`
	Shares      int             `json:"shares"`
	CollectedAt time.Time       `json:"collected_at"`
	RawResponse json.RawMessage `json:"raw_response,omitempty"`
}

type PlatformSummary struct {
	Posts    int `json:"posts"`
	Views    int `json:"views"`
	Clicks   int `json:"clicks"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

type AnalyticsSummary struct {
	TotalPosts  int                        `json:"total_posts"`
	TotalViews  int                        `json:"total_views"`
	TotalClicks int                        `json:"total_clicks"`
	ByPlatform  map[string]PlatformSummary `json:"by_platform"`
}
