package queue

import (
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/service"
)

type Queue struct {
	analytics service.AnalyticsService
}

func NewQueue(analytics service.AnalyticsService) *Queue {
	return &Queue{analytics: analytics}
}

const TaskTypeCollectStats = "analytics:collect"

type CollectStatsPayload struct {
	PostID   string `json:"post_id"`
	UserID   string `json:"user_id"`
	Platform string `json:"platform"`
}
