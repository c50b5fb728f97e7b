package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/supabase"
)

const analyticsTable = "post_analytics"

type AnalyticsRepository interface {
	Create(ctx context.Context, record *models.AnalyticsRecord) (*models.AnalyticsRecord, error)
	LatestByPost(ctx context.Context, postID string) (*models.AnalyticsRecord, error)
	ListByPost(ctx context.Context, postID string, limit int) ([]*models.AnalyticsRecord, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.AnalyticsRecord, error)
}

type analyticsRepository struct {
	store *supabase.Client
}

func NewAnalyticsRepository(store *supabase.Client) AnalyticsRepository {
	return &analyticsRepository{store: store}
}

// Create appends a snapshot. Earlier records for the same post are never
// touched; "current" stats are simply the most recent row.
func (r *analyticsRepository) Create(ctx context.Context, record *models.AnalyticsRecord) (*models.AnalyticsRecord, error) {
	row := map[string]interface{}{
		"post_id":      record.PostID,
		"user_id":      record.UserID,
		"platform":     record.Platform,
		"views":        record.Views,
		"clicks":       record.Clicks,
		"likes":        record.Likes,
		"comments":     record.Comments,
		"shares":       record.Shares,
		"collected_at": record.CollectedAt.UTC().Format(time.RFC3339),
	}
	if len(record.RawResponse) > 0 {
		row["raw_response"] = record.RawResponse
	}

	var created []*models.AnalyticsRecord
	if err := r.store.Insert(ctx, analyticsTable, row, &created); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if len(created) == 0 {
		return nil, errNoRepresentation(analyticsTable)
	}
	return created[0], nil
}

func (r *analyticsRepository) LatestByPost(ctx context.Context, postID string) (*models.AnalyticsRecord, error) {
	records, err := r.ListByPost(ctx, postID, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (r *analyticsRepository) ListByPost(ctx context.Context, postID string, limit int) ([]*models.AnalyticsRecord, error) {
	q := supabase.NewQuery().Eq("post_id", postID).OrderDesc("collected_at").Limit(limit)

	var records []*models.AnalyticsRecord
	if err := r.store.Select(ctx, analyticsTable, q, &records); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return records, nil
}

func (r *analyticsRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.AnalyticsRecord, error) {
	q := supabase.NewQuery().Eq("user_id", userID).OrderDesc("collected_at").Limit(limit)

	var records []*models.AnalyticsRecord
	if err := r.store.Select(ctx, analyticsTable, q, &records); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return records, nil
}
