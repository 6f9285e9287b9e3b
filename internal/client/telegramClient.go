package client

import (
	"bytes"
	"context"
	"crypto-storefront/internal/config"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var ErrTelegramNotConfigured = errors.New("telegram config missing")

type TelegramClient interface {
	SendMessage(ctx context.Context, botToken, chatID, text string) error
}

type telegramClientImpl struct {
	httpClient *http.Client
	baseApiURL string
}

type telegramResult struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func NewTelegramClient(cfg *config.Telegram) TelegramClient {
	return &telegramClientImpl{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseApiURL: strings.TrimRight(cfg.APIBaseURL, "/"),
	}
}

func (c *telegramClientImpl) SendMessage(ctx context.Context, botToken, chatID, text string) error {
	if botToken == "" || chatID == "" {
		return ErrTelegramNotConfigured
	}

	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal req payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseApiURL, botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// the request URL embeds the bot token
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = strings.ReplaceAll(urlErr.URL, botToken, "<redacted>")
		}
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var result telegramResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("telegram error %d: %s", resp.StatusCode, string(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !result.OK {
		desc := result.Description
		if desc == "" {
			desc = "Telegram API Error"
		}
		return fmt.Errorf("telegram error %d: %s", resp.StatusCode, desc)
	}

	return nil
}
