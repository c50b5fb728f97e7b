package repository

import (
	"context"
	"log/slog"

	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/supabase"
)

const accountsTable = "publisher_accounts"

type AccountRepository interface {
	ActiveByPlatform(ctx context.Context, platform string) (*models.Account, error)
	ActiveByUserAndPlatform(ctx context.Context, userID, platform string) (*models.Account, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Account, error)
	Upsert(ctx context.Context, account *models.Account) (*models.Account, error)
	Deactivate(ctx context.Context, id, userID string) error
}

type accountRepository struct {
	store *supabase.Client
}

func NewAccountRepository(store *supabase.Client) AccountRepository {
	return &accountRepository{store: store}
}

// ActiveByPlatform resolves the publishing credential for a platform in the
// system-wide polling context. A nil account with nil error means nothing is
// connected, which callers treat as an expected condition.
func (r *accountRepository) ActiveByPlatform(ctx context.Context, platform string) (*models.Account, error) {
	q := supabase.NewQuery().
		Eq("platform", platform).
		Eq("is_active", "true").
		Limit(1)
	return r.selectOne(ctx, q)
}

func (r *accountRepository) ActiveByUserAndPlatform(ctx context.Context, userID, platform string) (*models.Account, error) {
	q := supabase.NewQuery().
		Eq("user_id", userID).
		Eq("platform", platform).
		Eq("is_active", "true").
		Limit(1)
	return r.selectOne(ctx, q)
}

func (r *accountRepository) selectOne(ctx context.Context, q *supabase.Query) (*models.Account, error) {
	var accounts []*models.Account
	if err := r.store.Select(ctx, accountsTable, q, &accounts); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return accounts[0], nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID string) ([]*models.Account, error) {
	q := supabase.NewQuery().Eq("user_id", userID).OrderDesc("connected_at")

	var accounts []*models.Account
	if err := r.store.Select(ctx, accountsTable, q, &accounts); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return accounts, nil
}

// Upsert supersedes the existing row for (user, platform) instead of
// duplicating it; only one connection per platform exists per user.
func (r *accountRepository) Upsert(ctx context.Context, account *models.Account) (*models.Account, error) {
	existing, err := r.selectOne(ctx, supabase.NewQuery().
		Eq("user_id", account.UserID).
		Eq("platform", account.Platform).
		Limit(1))
	if err != nil {
		return nil, err
	}

	record := map[string]interface{}{
		"token":            account.Token,
		"channel_id":       account.ChannelID,
		"channel_name":     account.ChannelName,
		"channel_username": account.ChannelUsername,
		"is_active":        true,
	}

	var saved []*models.Account
	if existing != nil {
		q := supabase.NewQuery().Eq("id", existing.ID)
		err = r.store.Update(ctx, accountsTable, q, record, &saved)
	} else {
		record["user_id"] = account.UserID
		record["platform"] = account.Platform
		err = r.store.Insert(ctx, accountsTable, record, &saved)
	}
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if len(saved) == 0 {
		return nil, errNoRepresentation(accountsTable)
	}
	return saved[0], nil
}

// Deactivate keeps the row so reconnecting later restores history, it only
// flips is_active off.
func (r *accountRepository) Deactivate(ctx context.Context, id, userID string) error {
	q := supabase.NewQuery().Eq("id", id).Eq("user_id", userID)
	patch := map[string]interface{}{"is_active": false}
	if err := r.store.Update(ctx, accountsTable, q, patch, nil); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
