package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
)

const linkedinAPIURL = "https://api.linkedin.com"

type LinkedinService interface {
	Publisher
	UserInfo(ctx context.Context, accessToken string) (*transfer.LinkedinUserInfo, error)
}

type linkedinService struct {
	cfg     config.Config
	baseURL string
	http    *http.Client
}

func NewLinkedinService(cfg config.Config) LinkedinService {
	return &linkedinService{
		cfg:     cfg,
		baseURL: linkedinAPIURL,
		http:    &http.Client{Timeout: platformCallTimeout},
	}
}

func (s *linkedinService) Platform() string {
	return models.PlatformLinkedin
}

// Publish posts under the authenticated member. LinkedIn needs two round
// trips: an identity lookup for the author URN, then the UGC post itself.
// Both must succeed.
func (s *linkedinService) Publish(ctx context.Context, account *models.Account, text string) transfer.PublishResult {
	accessToken, err := accountToken(s.cfg, account)
	if err != nil {
		return transfer.PublishFailure("linkedin credential cannot be read: " + err.Error())
	}

	userInfo, err := s.UserInfo(ctx, accessToken)
	if err != nil {
		return transfer.PublishFailure("linkedin identity lookup failed: " + err.Error())
	}

	payload := map[string]interface{}{
		"author":         fmt.Sprintf("urn:li:person:%s", userInfo.Sub),
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary":    map[string]string{"text": text},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return transfer.PublishFailure("error marshalling payload: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v2/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return transfer.PublishFailure("error creating request: " + err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	req.Header.Set("LinkedIn-Version", "202401")

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure("linkedin request failed: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		// The platform's error payload is preserved verbatim.
		respBody, _ := io.ReadAll(resp.Body)
		return transfer.PublishFailureCode(string(respBody), resp.StatusCode)
	}
	return transfer.PublishSuccess(resp.Header.Get("x-restli-id"))
}

func (s *linkedinService) UserInfo(ctx context.Context, accessToken string) (*transfer.LinkedinUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("linkedin request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from linkedin: %d", resp.StatusCode)
	}

	var userInfo transfer.LinkedinUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error parsing linkedin response: %w", err)
	}
	if userInfo.Sub == "" {
		return nil, fmt.Errorf("linkedin returned no member id")
	}
	return &userInfo, nil
}
