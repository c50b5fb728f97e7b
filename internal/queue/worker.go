package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/hibiken/asynq"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/service"
)

func (q *Queue) HandleCollectStatsTask(ctx context.Context, task *asynq.Task) error {
	var payload CollectStatsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	_, err := q.analytics.Refresh(ctx, payload.UserID, payload.PostID, payload.Platform)
	if err != nil {
		// Domain rejections won't change on retry; only connectivity
		// failures are worth handing back to the queue.
		if isDomainError(err) {
			log.Printf("Skipping stats collection for post %s: %v", payload.PostID, err)
			return nil
		}
		log.Printf("Error collecting stats for post %s: %v", payload.PostID, err)
		return err
	}
	return nil
}

func isDomainError(err error) bool {
	return errors.Is(err, service.ErrPostNotFound) ||
		errors.Is(err, service.ErrNotPublished) ||
		errors.Is(err, service.ErrPlatformNotConnected) ||
		errors.Is(err, service.ErrMissingPlatformPostID) ||
		errors.Is(err, service.ErrUnknownPlatform)
}
