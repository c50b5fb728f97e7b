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

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
)

const (
	vkAPIURL     = "https://api.vk.com/method"
	vkAPIVersion = "5.199"
)

type VKService interface {
	Publisher
	GroupInfo(ctx context.Context, token, groupID string) (*transfer.VKGroup, error)
}

type vkService struct {
	cfg     config.Config
	baseURL string
	http    *http.Client
}

func NewVKService(cfg config.Config) VKService {
	return &vkService{
		cfg:     cfg,
		baseURL: vkAPIURL,
		http:    &http.Client{Timeout: platformCallTimeout},
	}
}

func (s *vkService) Platform() string {
	return models.PlatformVK
}

// Publish posts to the community wall. The account's channel id is the
// negative community owner id; VK returns a numeric post id and the two are
// combined into the composite "{owner_id}_{post_id}" that analytics later
// splits back apart.
func (s *vkService) Publish(ctx context.Context, account *models.Account, text string) transfer.PublishResult {
	token, err := accountToken(s.cfg, account)
	if err != nil {
		return transfer.PublishFailure("vk credential cannot be read: " + err.Error())
	}
	if account.ChannelID == "" {
		return transfer.PublishFailure("vk community owner id is missing")
	}

	form := url.Values{
		"owner_id":     {account.ChannelID},
		"from_group":   {"1"},
		"message":      {text},
		"access_token": {token},
		"v":            {vkAPIVersion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/wall.post", strings.NewReader(form.Encode()))
	if err != nil {
		return transfer.PublishFailure("error creating request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure("vk request failed: " + err.Error())
	}
	defer resp.Body.Close()

	var result struct {
		Response *struct {
			PostID int `json:"post_id"`
		} `json:"response"`
		Error *transfer.VKError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure("error parsing vk response: " + err.Error())
	}

	if result.Response == nil {
		if result.Error != nil {
			return transfer.PublishFailureCode(result.Error.ErrorMsg, result.Error.ErrorCode)
		}
		return transfer.PublishFailure("unknown vk error")
	}
	return transfer.PublishSuccess(account.ChannelID + "_" + strconv.Itoa(result.Response.PostID))
}

// GroupInfo checks a community token before the account is connected.
func (s *vkService) GroupInfo(ctx context.Context, token, groupID string) (*transfer.VKGroup, error) {
	params := url.Values{
		"group_id":     {strings.TrimPrefix(groupID, "-")},
		"access_token": {token},
		"v":            {vkAPIVersion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/groups.getById?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("vk request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Response *struct {
			Groups []transfer.VKGroup `json:"groups"`
		} `json:"response"`
		Error *transfer.VKError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error parsing vk response: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("vk: %s", result.Error.ErrorMsg)
	}
	if result.Response == nil || len(result.Response.Groups) == 0 {
		return nil, fmt.Errorf("vk community not found")
	}
	return &result.Response.Groups[0], nil
}
