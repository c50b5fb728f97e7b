package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/transfer"
)

// Text generation is a black box to the rest of the system; the publisher
// and adapters never call it.
type AIService interface {
	Generate(ctx context.Context, prompt, modelID, system string) (string, error)
	Models() []transfer.AIModel
}

type aiModelConfig struct {
	provider string
	model    string
}

var aiModels = map[string]aiModelConfig{
	"gpt-4o":            {provider: "openai", model: "gpt-4o"},
	"gpt-4o-mini":       {provider: "openai", model: "gpt-4o-mini"},
	"claude-3.5-sonnet": {provider: "anthropic", model: "claude-3-5-sonnet-20241022"},
	"claude-3-haiku":    {provider: "anthropic", model: "claude-3-haiku-20240307"},
	"llama-3.1-70b":     {provider: "groq", model: "llama-3.1-70b-versatile"},
	"llama-3.1-8b":      {provider: "groq", model: "llama-3.1-8b-instant"},
}

const aiMaxTokens = 2000

type aiService struct {
	cfg  config.Config
	http *http.Client
}

func NewAIService(cfg config.Config) AIService {
	return &aiService{
		cfg:  cfg,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *aiService) Models() []transfer.AIModel {
	models := make([]transfer.AIModel, 0, len(aiModels))
	for id, mc := range aiModels {
		models = append(models, transfer.AIModel{ID: id, Provider: mc.provider, Model: mc.model})
	}
	return models
}

func (s *aiService) Generate(ctx context.Context, prompt, modelID, system string) (string, error) {
	mc, ok := aiModels[modelID]
	if !ok {
		return "", fmt.Errorf("unknown model: %s", modelID)
	}

	switch mc.provider {
	case "openai":
		return s.chatCompletion(ctx, "https://api.openai.com/v1/chat/completions", s.cfg.OpenAIKey, mc.model, prompt, system)
	case "groq":
		return s.chatCompletion(ctx, "https://api.groq.com/openai/v1/chat/completions", s.cfg.GroqKey, mc.model, prompt, system)
	case "anthropic":
		return s.anthropicMessage(ctx, mc.model, prompt, system)
	default:
		return "", fmt.Errorf("unknown provider: %s", mc.provider)
	}
}

func (s *aiService) chatCompletion(ctx context.Context, endpoint, apiKey, model, prompt, system string) (string, error) {
	messages := []map[string]string{}
	if system != "" {
		messages = append(messages, map[string]string{"role": "system", "content": system})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	body, err := json.Marshal(map[string]interface{}{
		"model":      model,
		"messages":   messages,
		"max_tokens": aiMaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("error parsing generation response: %w", err)
	}
	if len(result.Choices) == 0 {
		if result.Error != nil {
			return "", fmt.Errorf("generation failed: %s", result.Error.Message)
		}
		return "", fmt.Errorf("generation returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

func (s *aiService) anthropicMessage(ctx context.Context, model, prompt, system string) (string, error) {
	payload := map[string]interface{}{
		"model":      model,
		"max_tokens": aiMaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	if system != "" {
		payload["system"] = system
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", s.cfg.AnthropicKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("error parsing generation response: %w", err)
	}
	if len(result.Content) == 0 {
		if result.Error != nil {
			return "", fmt.Errorf("generation failed: %s", result.Error.Message)
		}
		return "", fmt.Errorf("generation returned no content")
	}
	return result.Content[0].Text, nil
}
