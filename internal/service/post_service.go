package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/repository"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
	"github.com/Retyreg/VYUD-AI-Scheduler/pkg/utils"
)

type PostService interface {
	Create(ctx context.Context, userID string, creation *transfer.PostCreation) (*models.Post, error)
	List(ctx context.Context, userID, status string, limit int) ([]*models.Post, error)
	Info(ctx context.Context, userID, postID string) (*models.Post, error)
	Update(ctx context.Context, userID, postID string, update *transfer.PostUpdate) (*models.Post, error)
	Remove(ctx context.Context, userID, postID string) error
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, userID string, creation *transfer.PostCreation) (*models.Post, error) {
	if creation.Content == "" {
		return nil, errors.New("content is empty")
	}
	if !models.KnownPlatform(creation.Platform) {
		return nil, ErrUnknownPlatform
	}

	status := models.PostStatusScheduled
	if creation.Draft {
		status = models.PostStatusDraft
	}

	post := &models.Post{
		UserID:      userID,
		Content:     creation.Content,
		Platform:    creation.Platform,
		Status:      status,
		ScheduledAt: creation.ScheduledAt,
		ChannelID:   creation.ChannelID,
		UTMTag:      utils.GenerateUTM(creation.Platform, time.Now()),
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return created, nil
}

func (s *postService) List(ctx context.Context, userID, status string, limit int) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.posts.ListByUser(ctx, userID, status, limit)
}

func (s *postService) Info(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := s.posts.GetByIDForUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, userID, postID string, update *transfer.PostUpdate) (*models.Post, error) {
	post, err := s.posts.GetByIDForUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if post.Status == models.PostStatusPublished && update.ScheduledAt != nil {
		return nil, ErrScheduleLocked
	}

	patch := map[string]interface{}{}
	if update.Content != nil {
		patch["content"] = *update.Content
	}
	if update.ScheduledAt != nil {
		patch["scheduled_at"] = update.ScheduledAt.UTC().Format(time.RFC3339)
	}
	if update.Status != nil {
		patch["status"] = *update.Status
	}
	if len(patch) == 0 {
		return post, nil
	}

	updated, err := s.posts.Update(ctx, postID, userID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}
	return updated, nil
}

func (s *postService) Remove(ctx context.Context, userID, postID string) error {
	return s.posts.Remove(ctx, postID, userID)
}
