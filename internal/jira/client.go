package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/releasekit/jira-release-sync/internal/constants"
	"github.com/releasekit/jira-release-sync/internal/httpx"
)

// retryLogger implements the retryablehttp.LeveledLogger interface over the
// global zerolog logger. Only warnings and errors are surfaced.
type retryLogger struct{}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Error().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	log.Warn().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {}

// Client is an authenticated handle to one Jira Cloud tenant.
type Client struct {
	httpClient *nethttp.Client
	baseURL    string
	email      string
	apiToken   string
}

// NewClient builds a client for https://{subdomain}.atlassian.net using
// HTTP basic auth (account email + API token). Construction performs no
// network call; bad credentials surface on first use.
func NewClient(email, apiToken, subdomain string) (*Client, error) {
	if subdomain == "" {
		return nil, fmt.Errorf("subdomain is empty")
	}

	httpClient, err := httpx.NewClient(httpx.OptionsFromEnv())
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}

	// Transport-level retries for transient failures only; callers never
	// re-issue a failed logical operation.
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.RetryMax = constants.HTTPRetryMax
	retryClient.RetryWaitMin = constants.HTTPRetryWaitMin
	retryClient.RetryWaitMax = constants.HTTPRetryWaitMax
	retryClient.Logger = &retryLogger{}

	return &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    fmt.Sprintf("https://%s.%s", subdomain, constants.JiraCloudDomain),
		email:      email,
		apiToken:   apiToken,
	}, nil
}

// BaseURL returns the tenant base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request with authentication. path must start
// with "/" and is appended to the tenant base URL.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*nethttp.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	url := c.baseURL + path
	req, err := nethttp.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, redactQuery(path), err)
	}

	return resp, nil
}

// redactQuery strips query parameters from a path for error messages.
func redactQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
