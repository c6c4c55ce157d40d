package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"HomeworkWatcher/internal/config"
	"HomeworkWatcher/internal/domain"
	"HomeworkWatcher/internal/ports"
)

const maxResponseBodySize = 64 << 10

// Notifier sends messages to a Telegram chat via bot API.
type Notifier struct {
	apiURL   string
	botToken string
	chatID   string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(cfg config.TelegramConfig, client *http.Client) *Notifier {
	if client == nil {
		client = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return &Notifier{
		apiURL:   strings.TrimRight(cfg.APIURL, "/"),
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		client:   client,
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts a plain-text message to the configured chat.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("%w: telegram notifier misconfigured", domain.ErrDelivery)
	}

	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: new request: %s", domain.ErrDelivery, n.redact(err.Error()))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = n.redact(urlErr.URL)
		}
		return fmt.Errorf("%w: %w", domain.ErrDelivery, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", domain.ErrDelivery, err)
	}

	var parsed apiResponse
	_ = json.Unmarshal(body, &parsed)

	if resp.StatusCode != http.StatusOK || !parsed.OK {
		if parsed.Description != "" {
			return fmt.Errorf("%w: telegram error %s: %s", domain.ErrDelivery, resp.Status, parsed.Description)
		}
		return fmt.Errorf("%w: telegram error: %s", domain.ErrDelivery, resp.Status)
	}

	return nil
}

func (n *Notifier) endpoint() string {
	return fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.botToken)
}

func (n *Notifier) redact(s string) string {
	if n.botToken == "" {
		return s
	}
	return strings.ReplaceAll(s, n.botToken, "<redacted>")
}
