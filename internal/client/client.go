// Package client provides the HTTP client for the talent profile API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/candyhouse/talent-profile/internal/types"
)

// API paths served by the talent profile server.
const (
	TalentProfilePath  = "/talent/profile"
	TalentLoginPath    = "/talent/login"
	TalentRegisterPath = "/talent/register"
)

// DefaultUserAgent is the user agent string for API requests.
const DefaultUserAgent = "profile-agent/1.0"

// Options configures the client.
type Options struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout   time.Duration
	Token     string
	UserAgent string
	// HTTPClient overrides the underlying client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the talent profile API. It implements profile.ResumeAPI.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts *Options) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: baseURL, Message: "invalid base URL", Cause: err}
	}
	if opts == nil {
		opts = &Options{}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     opts.Token,
		userAgent: userAgent,
		http:      httpClient,
	}, nil
}

// SetToken sets the bearer token sent with profile requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetResume fetches the caller's resume. Only keys present in the response body
// are marked present in the returned patch.
func (c *Client) GetResume(ctx context.Context) (types.ResumePatch, error) {
	var patch types.ResumePatch
	if err := c.do(ctx, http.MethodGet, TalentProfilePath, nil, &patch); err != nil {
		return types.ResumePatch{}, err
	}
	return patch, nil
}

// PutResume replaces the caller's resume.
func (c *Client) PutResume(ctx context.Context, resume types.Resume) error {
	return c.do(ctx, http.MethodPut, TalentProfilePath, resume, nil)
}

// Login exchanges credentials for a token. The token is also stored on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp types.LoginResponse
	req := types.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, TalentLoginPath, req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &Error{URL: c.baseURL + TalentLoginPath, Message: "empty token in login response"}
	}
	c.token = resp.Token
	return resp.Token, nil
}

// Register creates a talent account and returns the server's message.
func (c *Client) Register(ctx context.Context, req types.TalentRegister) (string, error) {
	var resp types.RegisterResponse
	if err := c.do(ctx, http.MethodPost, TalentRegisterPath, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	target := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{URL: target, Message: "failed to encode request body", Cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &Error{URL: target, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{URL: target, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{URL: target, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			URL:        target,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{URL: target, StatusCode: resp.StatusCode, Message: "failed to decode response body", Cause: err}
	}
	return nil
}

// errorMessage extracts the server's {"error": "..."} message, falling back to the
// raw body or the status text.
func errorMessage(status int, body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d %s", status, http.StatusText(status))
}
