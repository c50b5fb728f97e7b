package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/supabase"
)

const postsTable = "posts"

type PostRepository interface {
	ListDue(ctx context.Context, now time.Time) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByIDForUser(ctx context.Context, id, userID string) (*models.Post, error)
	ListByUser(ctx context.Context, userID, status string, limit int) ([]*models.Post, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	Update(ctx context.Context, id, userID string, patch map[string]interface{}) (*models.Post, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time, platformPostID string) error
	MarkFailed(ctx context.Context, id string) error
	Remove(ctx context.Context, id, userID string) error
}

type postRepository struct {
	store *supabase.Client
}

func NewPostRepository(store *supabase.Client) PostRepository {
	return &postRepository{store: store}
}

// ListDue returns scheduled posts whose time has come, oldest first so a
// backlog drains in original schedule order.
func (r *postRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	q := supabase.NewQuery().
		Eq("status", models.PostStatusScheduled).
		LteTime("scheduled_at", now).
		OrderAsc("scheduled_at")

	var posts []*models.Post
	if err := r.store.Select(ctx, postsTable, q, &posts); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	q := supabase.NewQuery().Eq("id", id).Limit(1)

	var posts []*models.Post
	if err := r.store.Select(ctx, postsTable, q, &posts); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return posts[0], nil
}

func (r *postRepository) GetByIDForUser(ctx context.Context, id, userID string) (*models.Post, error) {
	q := supabase.NewQuery().Eq("id", id).Eq("user_id", userID).Limit(1)

	var posts []*models.Post
	if err := r.store.Select(ctx, postsTable, q, &posts); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return posts[0], nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID, status string, limit int) ([]*models.Post, error) {
	q := supabase.NewQuery().Eq("user_id", userID).OrderAsc("scheduled_at").Limit(limit)
	if status != "" {
		q.Eq("status", status)
	}

	var posts []*models.Post
	if err := r.store.Select(ctx, postsTable, q, &posts); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByStatus(ctx context.Context, status string, limit int) ([]*models.Post, error) {
	q := supabase.NewQuery().Eq("status", status).OrderDesc("scheduled_at").Limit(limit)

	var posts []*models.Post
	if err := r.store.Select(ctx, postsTable, q, &posts); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	record := map[string]interface{}{
		"user_id":      post.UserID,
		"content":      post.Content,
		"platform":     post.Platform,
		"status":       post.Status,
		"scheduled_at": post.ScheduledAt.UTC().Format(time.RFC3339),
		"utm_tag":      post.UTMTag,
	}
	if post.ChannelID != "" {
		record["channel_id"] = post.ChannelID
	}

	var created []*models.Post
	if err := r.store.Insert(ctx, postsTable, record, &created); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if len(created) == 0 {
		return nil, errNoRepresentation(postsTable)
	}
	return created[0], nil
}

func (r *postRepository) Update(ctx context.Context, id, userID string, patch map[string]interface{}) (*models.Post, error) {
	q := supabase.NewQuery().Eq("id", id).Eq("user_id", userID)

	var updated []*models.Post
	if err := r.store.Update(ctx, postsTable, q, patch, &updated); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if len(updated) == 0 {
		return nil, nil
	}
	return updated[0], nil
}

func (r *postRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time, platformPostID string) error {
	patch := map[string]interface{}{
		"status":       models.PostStatusPublished,
		"published_at": publishedAt.UTC().Format(time.RFC3339),
	}
	if platformPostID != "" {
		patch["platform_post_id"] = platformPostID
	}
	return r.patchByID(ctx, id, patch)
}

func (r *postRepository) MarkFailed(ctx context.Context, id string) error {
	return r.patchByID(ctx, id, map[string]interface{}{"status": models.PostStatusFailed})
}

func (r *postRepository) patchByID(ctx context.Context, id string, patch map[string]interface{}) error {
	q := supabase.NewQuery().Eq("id", id)
	if err := r.store.Update(ctx, postsTable, q, patch, nil); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id, userID string) error {
	q := supabase.NewQuery().Eq("id", id).Eq("user_id", userID)
	if err := r.store.Delete(ctx, postsTable, q); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
