package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"HomeworkWatcher/internal/config"
	"HomeworkWatcher/internal/domain"
	"HomeworkWatcher/internal/ports"
)

const (
	maxResponseBodySize = 1 << 20 // 1MB
	authScheme          = "OAuth"
	cursorParam         = "from_date"
)

// Client implements ports.StatusSource against the Practicum homework API.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	now      func() time.Time
}

var _ ports.StatusSource = (*Client)(nil)

// NewClient builds a client from configuration. A zero request timeout keeps the transport default.
func NewClient(cfg config.UpstreamConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		http:     httpClient,
		now:      time.Now,
	}
}

// Fetch asks for homework updates since cursor; a zero cursor means "now".
func (c *Client) Fetch(ctx context.Context, cursor int64) (domain.RawResponse, error) {
	if cursor == 0 {
		cursor = c.now().Unix()
	}

	reqURL, err := buildStatusURL(c.endpoint, cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %w", domain.ErrTransport, err)
	}
	req.Header.Set("Authorization", authScheme+" "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", domain.ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{
			URL:        c.endpoint,
			StatusCode: resp.StatusCode,
			AuthScheme: authScheme + " <redacted>",
			Detail:     summarizeBody(resp.Header.Get("Content-Type"), body),
		}
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}

	return raw, nil
}

func buildStatusURL(endpoint string, cursor int64) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %s: %w", endpoint, err)
	}

	query := parsed.Query()
	query.Set(cursorParam, strconv.FormatInt(cursor, 10))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
