package queue

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

func EnqueueCollectStats(asynqClient *asynq.Client, payload CollectStatsPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeCollectStats, taskPayload)

	_, err = asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(time.Minute))
	if err != nil {
		return err
	}

	log.Printf("Stats collection scheduled: %+v", payload)
	return nil
}
