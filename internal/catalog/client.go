package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/idilsaglam/foodie/internal/model"
)

// Client talks to the catalog REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// ClientOption tunes a Client.
type ClientOption func(*Client)

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ Service = (*Client)(nil)

func (c *Client) GetItem(ctx context.Context, id int) (model.MenuItem, error) {
	var item model.MenuItem
	body, err := c.do(ctx, http.MethodGet, "/foods/"+strconv.Itoa(id), nil)
	if err != nil {
		return item, fmt.Errorf("get item %d: %w", id, err)
	}
	if err := json.Unmarshal(body, &item); err != nil {
		return item, fmt.Errorf("get item %d: decode: %w", id, err)
	}
	return item, nil
}

func (c *Client) AddFavorite(ctx context.Context, item model.MenuItem) (Ack, error) {
	if _, err := c.do(ctx, http.MethodPost, "/favorites", item); err != nil {
		return Ack{}, fmt.Errorf("add favorite %d: %w", item.ID, err)
	}
	return Ack{}, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, id int) (Ack, error) {
	_, err := c.do(ctx, http.MethodDelete, "/favorites/"+strconv.Itoa(id), nil)
	// already gone is still gone
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Ack{}, fmt.Errorf("remove favorite %d: %w", id, err)
	}
	return Ack{}, nil
}

func (c *Client) SubmitOrder(ctx context.Context, item model.MenuItem, quantity int) (Ack, error) {
	body, err := c.do(ctx, http.MethodPost, "/orders", model.NewOrder(item, quantity))
	if err != nil {
		return Ack{}, fmt.Errorf("submit order for %d: %w", item.ID, err)
	}
	var ack Ack
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &ack); err != nil {
			return Ack{}, fmt.Errorf("submit order for %d: decode: %w", item.ID, err)
		}
	}
	return ack, nil
}

// do performs one round trip and maps transport and status failures onto
// the package sentinels.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("catalog request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, classifyTransport(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Warn("catalog: close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err)
	}
	c.log.Debug("catalog request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, classifyStatus(resp.StatusCode, body)
}

func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func classifyStatus(code int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:197] + "..."
	}
	switch {
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", ErrNotFound, code)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", ErrTimeout, code)
	case code >= 400 && code < 500:
		return fmt.Errorf("%w: status %d: %s", ErrRejected, code, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrNetwork, code, msg)
	}
}
