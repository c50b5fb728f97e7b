package service

import (
	"context"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
)

// Publisher translates a publish intent into exactly one platform call per
// attempt. Retry policy lives with the caller, never here.
type Publisher interface {
	Platform() string
	Publish(ctx context.Context, account *models.Account, text string) transfer.PublishResult
}
