// Package creatoriqsdk is a minimal CreatorIQ HTTP API client, including
// the reference polling behavior for asynchronous idea generation.
package creatoriqsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a CreatorIQ API client.
type Client struct {
	BaseURL     string
	BearerToken string
	HTTPClient  *http.Client
	Timeout     time.Duration

	// Polling policy, not protocol: tune freely.
	PollAttempts int
	PollInterval time.Duration
}

// ErrPollTimeout is returned when the poll budget runs out while the record
// is still pending. The server-side record keeps progressing regardless.
var ErrPollTimeout = errors.New("idea still pending after poll budget")

const (
	defaultTimeout      = 10 * time.Second
	defaultPollAttempts = 10
	defaultPollInterval = 1500 * time.Millisecond
)

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:      baseURL,
		Timeout:      defaultTimeout,
		PollAttempts: defaultPollAttempts,
		PollInterval: defaultPollInterval,
	}
}

// IdeaContent is the generated content payload.
type IdeaContent struct {
	ReelIdea string   `json:"reelIdea"`
	Hook     string   `json:"hook"`
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

// Idea represents the API idea record.
type Idea struct {
	ID        string      `json:"id"`
	Topic     string      `json:"topic"`
	Niche     string      `json:"niche"`
	Status    string      `json:"status"`
	IsFetched bool        `json:"isFetched"`
	IsFailed  bool        `json:"isFailed"`
	Idea      IdeaContent `json:"idea"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Terminal reports whether polling can stop.
func (i Idea) Terminal() bool {
	return i.IsFetched || i.IsFailed
}

// AuthUser is the account summary returned by signup/login.
type AuthUser struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type ideaEnvelope struct {
	Data Idea `json:"data"`
}

type ideaListEnvelope struct {
	Data []Idea `json:"data"`
}

type apiError struct {
	Message string `json:"message"`
}

// Signup registers an account and stores the returned bearer token on the
// client.
func (c *Client) Signup(ctx context.Context, email, password, name string) (*AuthUser, error) {
	var out authResponse
	err := c.doJSON(ctx, http.MethodPost, "/user/signup", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.BearerToken = out.Token
	return &out.User, nil
}

// Login authenticates and stores the returned bearer token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthUser, error) {
	var out authResponse
	err := c.doJSON(ctx, http.MethodPost, "/user/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.BearerToken = out.Token
	return &out.User, nil
}

// GenerateIdea submits a generation request and returns the pending record.
func (c *Client) GenerateIdea(ctx context.Context, topic, niche string) (*Idea, error) {
	var out ideaEnvelope
	err := c.doJSON(ctx, http.MethodPost, "/idea/generate-idea", map[string]string{
		"topic": topic,
		"niche": niche,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// GetIdea fetches a single record by id.
func (c *Client) GetIdea(ctx context.Context, id string) (*Idea, error) {
	var out ideaEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/idea?id="+url.QueryEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ListIdeas fetches the caller's records, newest first.
func (c *Client) ListIdeas(ctx context.Context) ([]Idea, error) {
	var out ideaListEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/idea", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// PollIdea repeatedly fetches the record until it reaches a terminal state
// or the poll budget is exhausted, in which case ErrPollTimeout is returned
// along with the last observed record.
func (c *Client) PollIdea(ctx context.Context, id string) (*Idea, error) {
	attempts := c.PollAttempts
	if attempts <= 0 {
		attempts = defaultPollAttempts
	}
	interval := c.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	var last *Idea
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return last, ctx.Err()
			case <-time.After(interval):
			}
		}
		idea, err := c.GetIdea(ctx, id)
		if err != nil {
			return last, err
		}
		last = idea
		if idea.Terminal() {
			return idea, nil
		}
	}
	return last, ErrPollTimeout
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: c.Timeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("api %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("api %d: %s %s", resp.StatusCode, method, path)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
