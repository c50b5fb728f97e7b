package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
)

const telegramAPIURL = "https://api.telegram.org"

type TelegramService interface {
	Publisher
	GetChat(ctx context.Context, token, chatID string) (*transfer.TelegramChat, error)
}

type telegramService struct {
	cfg     config.Config
	baseURL string
	http    *http.Client
}

func NewTelegramService(cfg config.Config) TelegramService {
	return &telegramService{
		cfg:     cfg,
		baseURL: telegramAPIURL,
		http:    &http.Client{Timeout: platformCallTimeout},
	}
}

func (s *telegramService) Platform() string {
	return models.PlatformTelegram
}

// Publish sends the text to the account's channel via the Bot API. Accounts
// connected without their own bot token fall back to the process-level one.
func (s *telegramService) Publish(ctx context.Context, account *models.Account, text string) transfer.PublishResult {
	token := s.cfg.TelegramBotToken
	if account.Token != "" {
		decrypted, err := accountToken(s.cfg, account)
		if err != nil {
			return transfer.PublishFailure("telegram credential cannot be read: " + err.Error())
		}
		token = decrypted
	}
	if token == "" {
		return transfer.PublishFailure("telegram bot token is not configured")
	}
	if account.ChannelID == "" {
		return transfer.PublishFailure("telegram chat id is missing")
	}

	payload := map[string]string{
		"chat_id":    account.ChannelID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return transfer.PublishFailure("error marshalling payload: " + err.Error())
	}

	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return transfer.PublishFailure("error creating request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure("telegram request failed: " + err.Error())
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		ErrorCode   int    `json:"error_code"`
		Description string `json:"description"`
		Result      struct {
			MessageID int `json:"message_id"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure("error parsing telegram response: " + err.Error())
	}

	if !result.OK {
		message := result.Description
		if message == "" {
			message = "unknown telegram error"
		}
		return transfer.PublishFailureCode(message, result.ErrorCode)
	}
	return transfer.PublishSuccess(strconv.Itoa(result.Result.MessageID))
}

// GetChat verifies a chat is reachable with the given bot token before an
// account is connected.
func (s *telegramService) GetChat(ctx context.Context, token, chatID string) (*transfer.TelegramChat, error) {
	reqURL := fmt.Sprintf("%s/bot%s/getChat?%s", s.baseURL, token, url.Values{"chat_id": {chatID}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool                  `json:"ok"`
		Description string                `json:"description"`
		Result      transfer.TelegramChat `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error parsing telegram response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram: %s", result.Description)
	}
	return &result.Result, nil
}
