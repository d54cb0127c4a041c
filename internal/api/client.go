// Package api is the REST client for the tracker server. It owns the
// transport concerns only: auth header attachment, timeouts, bounded
// retry for idempotent reads, and mapping HTTP failures onto the
// package's sentinel errors. All policy about what to do with the data
// (layout, transitions) lives elsewhere.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mgersten/taskline/internal/domain"
)

const projectCacheSize = 64

// Config holds the client's transport settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration // per-request; zero means 10s
	MaxRetries int           // extra attempts for idempotent GETs
}

// Client talks to the tracker's REST API.
type Client struct {
	cfg    Config
	http   *http.Client
	tokens TokenSource
	logger *log.Logger

	// projects memoizes GetProject responses; project metadata changes
	// rarely and is re-requested on every view push.
	projects *lru.Cache[string, domain.Project]
}

// NewClient creates a tracker client. A nil logger disables logging.
func NewClient(cfg Config, tokens TokenSource, logger *log.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cache, _ := lru.New[string, domain.Project](projectCacheSize)
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		tokens:   tokens,
		logger:   logger,
		projects: cache,
	}
}

// get performs a GET with bounded retry and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		lastErr = c.do(ctx, http.MethodGet, path, nil, out)
		if lastErr == nil {
			return nil
		}
		// Client-side failures and cancellation don't get better on retry.
		if ctx.Err() != nil || errors.Is(lastErr, ErrUnauthorized) || errors.Is(lastErr, ErrNotFound) {
			break
		}
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("resolving session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		var netErr *net.OpError
		if errors.As(err, &netErr) {
			return ErrUnavailable
		}
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("tracker request",
		"method", method, "path", path,
		"status", resp.StatusCode, "ms", time.Since(start).Milliseconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("tracker returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
