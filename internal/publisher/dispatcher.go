// Package publisher runs the scheduling core: a periodic tick that drains
// due posts from the store and pushes each one to its platform.
//
// All state lives in the store, so a restart loses nothing. The known gap:
// two dispatcher instances polling the same store can both observe a post
// as due and double-publish it — deployment keeps a single active instance.
package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/repository"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/service"
	"github.com/Retyreg/VYUD-AI-Scheduler/pkg/utils"
)

type Dispatcher struct {
	posts      repository.PostRepository
	accounts   repository.AccountRepository
	publishers map[string]service.Publisher
}

func NewDispatcher(
	posts repository.PostRepository,
	accounts repository.AccountRepository,
	publishers ...service.Publisher) *Dispatcher {
	byPlatform := make(map[string]service.Publisher, len(publishers))
	for _, p := range publishers {
		byPlatform[p.Platform()] = p
	}
	return &Dispatcher{
		posts:      posts,
		accounts:   accounts,
		publishers: byPlatform,
	}
}

// CheckAndPublish is one tick. Every due post leaves in published or
// failed; a failure on one post never aborts the rest of the batch, and a
// tick-level error just waits for the next tick.
func (d *Dispatcher) CheckAndPublish() {
	ctx := context.Background()
	now := time.Now().UTC()

	due, err := d.posts.ListDue(ctx, now)
	if err != nil {
		slog.Info("publisher tick: " + err.Error())
		return
	}

	for _, post := range due {
		d.publishOne(ctx, post, now)
	}
}

func (d *Dispatcher) publishOne(ctx context.Context, post *models.Post, now time.Time) {
	account, err := d.accounts.ActiveByPlatform(ctx, post.Platform)
	if err != nil {
		slog.Info("resolving account for post " + post.ID + ": " + err.Error())
		d.fail(ctx, post, err.Error())
		return
	}
	if account == nil {
		d.fail(ctx, post, post.Platform+" not connected")
		return
	}

	pub, ok := d.publishers[post.Platform]
	if !ok {
		d.fail(ctx, post, "no publisher for platform "+post.Platform)
		return
	}

	text := utils.WithTrackingSuffix(post.Platform, post.Content, post.UTMTag)

	result := pub.Publish(ctx, account, text)
	if !result.OK {
		d.fail(ctx, post, result.ErrorMessage)
		return
	}

	if err := d.posts.MarkPublished(ctx, post.ID, now, result.PlatformPostID); err != nil {
		slog.Info("marking post " + post.ID + " published: " + err.Error())
		return
	}
	slog.Info("published post " + post.ID + " to " + post.Platform)
}

func (d *Dispatcher) fail(ctx context.Context, post *models.Post, reason string) {
	slog.Info("post " + post.ID + " failed: " + reason)
	if err := d.posts.MarkFailed(ctx, post.ID); err != nil {
		slog.Info("marking post " + post.ID + " failed: " + err.Error())
	}
}
