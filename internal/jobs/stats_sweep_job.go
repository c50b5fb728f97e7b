package job

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/queue"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/repository"
)

const sweepBatchSize = 200

// StatsSweepJob periodically enqueues metrics collection for published
// posts so dashboards stay warm without anyone pressing refresh.
type StatsSweepJob struct {
	posts       repository.PostRepository
	asynqClient *asynq.Client
}

func NewStatsSweepJob(posts repository.PostRepository, asynqClient *asynq.Client) *StatsSweepJob {
	return &StatsSweepJob{posts: posts, asynqClient: asynqClient}
}

func (j *StatsSweepJob) CollectStats() {
	ctx := context.Background()

	posts, err := j.posts.ListByStatus(ctx, models.PostStatusPublished, sweepBatchSize)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, post := range posts {
		if post.PlatformPostID == "" {
			continue
		}
		err := queue.EnqueueCollectStats(j.asynqClient, queue.CollectStatsPayload{
			PostID:   post.ID,
			UserID:   post.UserID,
			Platform: post.Platform,
		})
		if err != nil {
			slog.Info("enqueue stats collection for post " + post.ID + ": " + err.Error())
		}
	}
}
