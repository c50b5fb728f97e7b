package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
)

type stubPostRepo struct {
	post *models.Post
}

func (r *stubPostRepo) GetByIDForUser(ctx context.Context, id, userID string) (*models.Post, error) {
	return r.post, nil
}

func (r *stubPostRepo) ListDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return r.post, nil
}

func (r *stubPostRepo) ListByUser(ctx context.Context, userID, status string, limit int) ([]*models.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) ListByStatus(ctx context.Context, status string, limit int) ([]*models.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	return post, nil
}

func (r *stubPostRepo) Update(ctx context.Context, id, userID string, patch map[string]interface{}) (*models.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) MarkPublished(ctx context.Context, id string, publishedAt time.Time, platformPostID string) error {
	return nil
}

func (r *stubPostRepo) MarkFailed(ctx context.Context, id string) error {
	return nil
}

func (r *stubPostRepo) Remove(ctx context.Context, id, userID string) error {
	return nil
}

type stubAccountRepo struct {
	account *models.Account
}

func (r *stubAccountRepo) ActiveByPlatform(ctx context.Context, platform string) (*models.Account, error) {
	return r.account, nil
}

func (r *stubAccountRepo) ActiveByUserAndPlatform(ctx context.Context, userID, platform string) (*models.Account, error) {
	return r.account, nil
}

func (r *stubAccountRepo) ListByUser(ctx context.Context, userID string) ([]*models.Account, error) {
	return nil, nil
}

func (r *stubAccountRepo) Upsert(ctx context.Context, account *models.Account) (*models.Account, error) {
	return account, nil
}

func (r *stubAccountRepo) Deactivate(ctx context.Context, id, userID string) error {
	return nil
}

type stubAnalyticsRepo struct {
	created []*models.AnalyticsRecord
	records []*models.AnalyticsRecord
}

func (r *stubAnalyticsRepo) Create(ctx context.Context, record *models.AnalyticsRecord) (*models.AnalyticsRecord, error) {
	r.created = append(r.created, record)
	return record, nil
}

func (r *stubAnalyticsRepo) LatestByPost(ctx context.Context, postID string) (*models.AnalyticsRecord, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) ListByPost(ctx context.Context, postID string, limit int) ([]*models.AnalyticsRecord, error) {
	return r.records, nil
}

func (r *stubAnalyticsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*models.AnalyticsRecord, error) {
	return r.records, nil
}

func newTestAnalyticsService(posts *stubPostRepo, accounts *stubAccountRepo, records *stubAnalyticsRepo) *analyticsService {
	return &analyticsService{
		cfg:      config.Config{SecretKey: testSecretKey},
		posts:    posts,
		accounts: accounts,
		records:  records,
		http:     &http.Client{Timeout: platformCallTimeout},
	}
}

func TestRefreshRejectsUnpublishedPost(t *testing.T) {
	records := &stubAnalyticsRepo{}
	s := newTestAnalyticsService(
		&stubPostRepo{post: &models.Post{ID: "p1", Status: models.PostStatusScheduled}},
		&stubAccountRepo{},
		records,
	)

	_, err := s.Refresh(context.Background(), "u1", "p1", models.PlatformTelegram)
	require.ErrorIs(t, err, ErrNotPublished)
	assert.Empty(t, records.created, "no snapshot may be written for an unpublished post")
}

func TestRefreshRejectsUnknownPost(t *testing.T) {
	s := newTestAnalyticsService(&stubPostRepo{}, &stubAccountRepo{}, &stubAnalyticsRepo{})

	_, err := s.Refresh(context.Background(), "u1", "missing", models.PlatformTelegram)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestRefreshRejectsDisconnectedPlatform(t *testing.T) {
	s := newTestAnalyticsService(
		&stubPostRepo{post: &models.Post{ID: "p1", Status: models.PostStatusPublished, PlatformPostID: "42"}},
		&stubAccountRepo{},
		&stubAnalyticsRepo{},
	)

	_, err := s.Refresh(context.Background(), "u1", "p1", models.PlatformTelegram)
	require.ErrorIs(t, err, ErrPlatformNotConnected)
}

func TestRefreshVKSplitsCompositeID(t *testing.T) {
	var gotPosts string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPosts = r.URL.Query().Get("posts")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":{"items":[{"views":{"count":120},"likes":{"count":7},"comments":{"count":2},"reposts":{"count":1}}]}}`))
	}))
	defer server.Close()

	records := &stubAnalyticsRepo{}
	s := newTestAnalyticsService(
		&stubPostRepo{post: &models.Post{ID: "p1", Status: models.PostStatusPublished, PlatformPostID: "-123_456"}},
		&stubAccountRepo{account: &models.Account{
			Platform:  models.PlatformVK,
			ChannelID: "-123",
			Token:     encryptedToken(t, "vk-token"),
		}},
		records,
	)
	s.vkURL = server.URL

	stats, err := s.Refresh(context.Background(), "u1", "p1", models.PlatformVK)
	require.NoError(t, err)

	assert.Equal(t, "-123_456", gotPosts)
	assert.Equal(t, 120, stats.Views)
	assert.Equal(t, 7, stats.Likes)
	assert.Equal(t, 1, stats.Shares)

	require.Len(t, records.created, 1)
	assert.Equal(t, "p1", records.created[0].PostID)
	assert.Equal(t, models.PlatformVK, records.created[0].Platform)
	assert.NotEmpty(t, records.created[0].RawResponse)
}

func TestSplitVKPostID(t *testing.T) {
	owner, post, err := SplitVKPostID("-123_456")
	require.NoError(t, err)
	assert.Equal(t, int64(-123), owner)
	assert.Equal(t, int64(456), post)

	_, _, err = SplitVKPostID("123456")
	assert.Error(t, err, "composite id without separator must be rejected")

	_, _, err = SplitVKPostID("abc_456")
	assert.Error(t, err)
}

func TestSummaryFoldsRecordsPerPlatform(t *testing.T) {
	records := &stubAnalyticsRepo{records: []*models.AnalyticsRecord{
		{PostID: "p1", Platform: models.PlatformTelegram, Views: 100, Clicks: 5},
		{PostID: "p1", Platform: models.PlatformTelegram, Views: 120, Clicks: 7},
		{PostID: "p2", Platform: models.PlatformVK, Views: 30, Likes: 4},
	}}
	s := newTestAnalyticsService(&stubPostRepo{}, &stubAccountRepo{}, records)

	summary, err := s.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalPosts, "two snapshots of one post count once")
	assert.Equal(t, 250, summary.TotalViews)
	assert.Equal(t, 12, summary.TotalClicks)

	tg := summary.ByPlatform[models.PlatformTelegram]
	assert.Equal(t, 1, tg.Posts)
	assert.Equal(t, 220, tg.Views)

	vk := summary.ByPlatform[models.PlatformVK]
	assert.Equal(t, 1, vk.Posts)
	assert.Equal(t, 4, vk.Likes)
}
