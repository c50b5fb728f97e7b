package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client talks to the record store's REST interface. Reads take a Query,
// writes are partial by design: a PATCH carries only the fields to change
// and applying the same patch twice yields the same stored state.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Select(ctx context.Context, table string, q *Query, dest interface{}) error {
	return c.do(ctx, http.MethodGet, c.tableURL(table, q), nil, dest)
}

func (c *Client) Insert(ctx context.Context, table string, record, dest interface{}) error {
	body, err := json.Marshal(record)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return c.do(ctx, http.MethodPost, c.tableURL(table, nil), body, dest)
}

func (c *Client) Update(ctx context.Context, table string, q *Query, patch, dest interface{}) error {
	body, err := json.Marshal(patch)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return c.do(ctx, http.MethodPatch, c.tableURL(table, q), body, dest)
}

func (c *Client) Delete(ctx context.Context, table string, q *Query) error {
	return c.do(ctx, http.MethodDelete, c.tableURL(table, q), nil, nil)
}

func (c *Client) tableURL(table string, q *Query) string {
	u := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if q != nil {
		if encoded := q.Encode(); encoded != "" {
			u += "?" + encoded
		}
	}
	return u
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("store request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("error reading store response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("store returned %d: %s", resp.StatusCode, string(respBody))
	}

	if dest == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, dest); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("error parsing store response: %w", err)
	}
	return nil
}
