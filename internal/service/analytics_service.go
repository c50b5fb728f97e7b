package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/repository"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
)

const (
	tgstatAPIURL = "https://api.tgstat.ru"
)

type AnalyticsService interface {
	Refresh(ctx context.Context, userID, postID, platform string) (*transfer.AnalyticsStats, error)
	ForPost(ctx context.Context, userID, postID string, limit int) ([]*models.AnalyticsRecord, error)
	ListAll(ctx context.Context, userID string, limit int) ([]*models.AnalyticsRecord, error)
	Summary(ctx context.Context, userID string) (*transfer.AnalyticsSummary, error)
}

type analyticsService struct {
	cfg      config.Config
	posts    repository.PostRepository
	accounts repository.AccountRepository
	records  repository.AnalyticsRepository

	http        *http.Client
	tgstatURL   string
	linkedinURL string
	vkURL       string
}

func NewAnalyticsService(
	cfg config.Config,
	posts repository.PostRepository,
	accounts repository.AccountRepository,
	records repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{
		cfg:         cfg,
		posts:       posts,
		accounts:    accounts,
		records:     records,
		http:        &http.Client{Timeout: platformCallTimeout},
		tgstatURL:   tgstatAPIURL,
		linkedinURL: linkedinAPIURL,
		vkURL:       vkAPIURL,
	}
}

// Refresh pulls current engagement numbers for one published post and
// appends a snapshot record. It never runs on the publishing path.
func (s *analyticsService) Refresh(ctx context.Context, userID, postID, platform string) (*transfer.AnalyticsStats, error) {
	post, err := s.posts.GetByIDForUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Status != models.PostStatusPublished {
		return nil, ErrNotPublished
	}
	if post.PlatformPostID == "" {
		return nil, ErrMissingPlatformPostID
	}

	account, err := s.accounts.ActiveByUserAndPlatform(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrPlatformNotConnected
	}

	var stats *transfer.AnalyticsStats
	switch platform {
	case models.PlatformTelegram:
		stats, err = s.fetchTelegramStats(ctx, account, post.PlatformPostID)
	case models.PlatformLinkedin:
		stats, err = s.fetchLinkedinStats(ctx, account, post.PlatformPostID)
	case models.PlatformVK:
		stats, err = s.fetchVKStats(ctx, account, post.PlatformPostID)
	default:
		return nil, ErrUnknownPlatform
	}
	if err != nil {
		return nil, err
	}

	stats.PostID = post.ID
	stats.Platform = platform
	stats.CollectedAt = time.Now().UTC()

	record := &models.AnalyticsRecord{
		PostID:      post.ID,
		UserID:      userID,
		Platform:    platform,
		Views:       stats.Views,
		Clicks:      stats.Clicks,
		Likes:       stats.Likes,
		Comments:    stats.Comments,
		Shares:      stats.Shares,
		RawResponse: stats.RawResponse,
		CollectedAt: stats.CollectedAt,
	}
	if _, err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save analytics: %w", err)
	}
	return stats, nil
}

func (s *analyticsService) fetchTelegramStats(ctx context.Context, account *models.Account, platformPostID string) (*transfer.AnalyticsStats, error) {
	if s.cfg.TgstatToken == "" {
		return nil, fmt.Errorf("tgstat token is not configured")
	}

	channel := strings.TrimPrefix(account.ChannelUsername, "@")
	if channel == "" {
		channel = strings.TrimPrefix(account.ChannelID, "@")
	}

	params := url.Values{
		"token":  {s.cfg.TgstatToken},
		"postId": {channel + "/" + platformPostID},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tgstatURL+"/posts/get?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("tgstat request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Status   string          `json:"status"`
		Error    string          `json:"error"`
		Response json.RawMessage `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error parsing tgstat response: %w", err)
	}
	if result.Status != "ok" {
		return nil, fmt.Errorf("tgstat: %s", result.Error)
	}

	var postData struct {
		Views    int `json:"views"`
		Forwards int `json:"forwards"`
	}
	if err := json.Unmarshal(result.Response, &postData); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error parsing tgstat response: %w", err)
	}

	return &transfer.AnalyticsStats{
		Views:       postData.Views,
		Shares:      postData.Forwards,
		RawResponse: result.Response,
	}, nil
}

func (s *analyticsService) fetchLinkedinStats(ctx context.Context, account *models.Account, shareURN string) (*transfer.AnalyticsStats, error) {
	accessToken, err := accountToken(s.cfg, account)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.linkedinURL+"/v2/socialActions/"+url.PathEscape(shareURN), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("linkedin request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("linkedin token expired")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from linkedin: %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error parsing linkedin response: %w", err)
	}

	var data struct {
		LikesSummary struct {
			TotalLikes int `json:"totalLikes"`
		} `json:"likesSummary"`
		CommentsSummary struct {
			TotalFirstLevelComments int `json:"totalFirstLevelComments"`
		} `json:"commentsSummary"`
		SharesSummary struct {
			TotalShares int `json:"totalShares"`
		} `json:"sharesSummary"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error parsing linkedin response: %w", err)
	}

	return &transfer.AnalyticsStats{
		Likes:       data.LikesSummary.TotalLikes,
		Comments:    data.CommentsSummary.TotalFirstLevelComments,
		Shares:      data.SharesSummary.TotalShares,
		RawResponse: raw,
	}, nil
}

func (s *analyticsService) fetchVKStats(ctx context.Context, account *models.Account, platformPostID string) (*transfer.AnalyticsStats, error) {
	ownerID, postID, err := SplitVKPostID(platformPostID)
	if err != nil {
		return nil, err
	}

	accessToken, err := accountToken(s.cfg, account)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"posts":        {fmt.Sprintf("%d_%d", ownerID, postID)},
		"extended":     {"1"},
		"access_token": {accessToken},
		"v":            {vkAPIVersion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.vkURL+"/wall.getById?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("vk request failed: %w", err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error parsing vk response: %w", err)
	}

	var result struct {
		Error    *transfer.VKError `json:"error"`
		Response struct {
			Items []struct {
				Views    struct{ Count int } `json:"views"`
				Likes    struct{ Count int } `json:"likes"`
				Comments struct{ Count int } `json:"comments"`
				Reposts  struct{ Count int } `json:"reposts"`
			} `json:"items"`
		} `json:"response"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error parsing vk response: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("vk: %s", result.Error.ErrorMsg)
	}
	if len(result.Response.Items) == 0 {
		return nil, fmt.Errorf("vk post not found")
	}

	item := result.Response.Items[0]
	return &transfer.AnalyticsStats{
		Views:       item.Views.Count,
		Likes:       item.Likes.Count,
		Comments:    item.Comments.Count,
		Shares:      item.Reposts.Count,
		RawResponse: raw,
	}, nil
}

// SplitVKPostID breaks the composite "{owner_id}_{post_id}" back into the
// two integers VK expects. The owner id keeps its sign.
func SplitVKPostID(compositeID string) (int64, int64, error) {
	ownerPart, postPart, found := strings.Cut(compositeID, "_")
	if !found {
		return 0, 0, fmt.Errorf("invalid vk post id format: %q", compositeID)
	}
	ownerID, err := strconv.ParseInt(ownerPart, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid vk owner id: %q", ownerPart)
	}
	postID, err := strconv.ParseInt(postPart, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid vk post id: %q", postPart)
	}
	return ownerID, postID, nil
}

func (s *analyticsService) ForPost(ctx context.Context, userID, postID string, limit int) ([]*models.AnalyticsRecord, error) {
	post, err := s.posts.GetByIDForUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.records.ListByPost(ctx, postID, limit)
}

func (s *analyticsService) ListAll(ctx context.Context, userID string, limit int) ([]*models.AnalyticsRecord, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	return s.records.ListByUser(ctx, userID, limit)
}

// Summary folds all of a user's records into per-platform totals. Pure
// aggregation; each post counts once per platform no matter how many
// snapshots exist.
func (s *analyticsService) Summary(ctx context.Context, userID string) (*transfer.AnalyticsSummary, error) {
	records, err := s.records.ListByUser(ctx, userID, 1000)
	if err != nil {
		return nil, err
	}

	summary := &transfer.AnalyticsSummary{
		ByPlatform: make(map[string]transfer.PlatformSummary),
	}
	seenPosts := make(map[string]bool)

	for _, record := range records {
		platform := summary.ByPlatform[record.Platform]
		if !seenPosts[record.Platform+"/"+record.PostID] {
			seenPosts[record.Platform+"/"+record.PostID] = true
			platform.Posts++
			summary.TotalPosts++
		}
		platform.Views += record.Views
		platform.Clicks += record.Clicks
		platform.Likes += record.Likes
		platform.Comments += record.Comments
		platform.Shares += record.Shares
		summary.ByPlatform[record.Platform] = platform

		summary.TotalViews += record.Views
		summary.TotalClicks += record.Clicks
	}
	return summary, nil
}
