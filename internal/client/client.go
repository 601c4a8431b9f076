// Package client implements the typed HTTP client the bot uses to talk to the
// API service, with short-TTL read-through caching of user and action reads.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eco-actions/internal/cache"
	"eco-actions/internal/model"
)

const actionsKey = "actions"

// StatusError captures non-2xx responses with the body for logging.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// ActionInput mirrors the POST /actions payload.
type ActionInput struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ProposerID  string `json:"proposer_id"`
}

// Statistics mirrors the GET /statistics payload.
type Statistics struct {
	TotalUsers   int `json:"total_users"`
	TotalActions int `json:"total_actions"`
}

// Client talks to the API service. List and user reads are served from TTL
// caches; creates invalidate the whole corresponding cache.
type Client struct {
	baseURL    string
	httpClient *http.Client

	actionsCache *cache.Cache[[]model.Action]
	// A nil entry means "no such user" and is cached as given until expiry.
	usersCache *cache.Cache[*model.User]
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func New(baseURL string, cacheTTL time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		actionsCache: cache.New[[]model.Action](cacheTTL),
		usersCache:   cache.New[*model.User](cacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListActions returns all actions, from cache when fresh.
func (c *Client) ListActions(ctx context.Context) ([]model.Action, error) {
	if actions, ok := c.actionsCache.Get(actionsKey); ok {
		return actions, nil
	}
	var actions []model.Action
	if err := c.do(ctx, http.MethodGet, "/actions", nil, &actions, http.StatusOK); err != nil {
		return nil, err
	}
	c.actionsCache.Put(actionsKey, actions)
	return actions, nil
}

// CreateAction submits a proposal and drops the actions cache.
func (c *Client) CreateAction(ctx context.Context, input ActionInput) (*model.Action, error) {
	c.actionsCache.Invalidate()
	var action model.Action
	if err := c.do(ctx, http.MethodPost, "/actions", input, &action, http.StatusCreated); err != nil {
		return nil, err
	}
	return &action, nil
}

type registerPayload struct {
	UserID string `json:"user_id"`
}

type messagePayload struct {
	Message string `json:"message"`
}

// Register signs the user up for an action and returns the server message
// (fresh registration and repeats get distinct texts).
func (c *Client) Register(ctx context.Context, actionID, userID string) (string, error) {
	var resp messagePayload
	path := fmt.Sprintf("/actions/%s/register", url.PathEscape(actionID))
	if err := c.do(ctx, http.MethodPost, path, registerPayload{UserID: userID}, &resp, http.StatusOK); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type ratePayload struct {
	UserID string `json:"user_id"`
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// Rate submits a rating with a review for an action.
func (c *Client) Rate(ctx context.Context, actionID, userID string, rating int, review string) error {
	path := fmt.Sprintf("/actions/%s/rate", url.PathEscape(actionID))
	return c.do(ctx, http.MethodPost, path, ratePayload{UserID: userID, Rating: rating, Review: review}, nil, http.StatusOK)
}

// GetUser returns the user or (nil, nil) when the server reports 404. Both
// outcomes are cached until the TTL expires.
func (c *Client) GetUser(ctx context.Context, userID string) (*model.User, error) {
	if user, ok := c.usersCache.Get(userID); ok {
		return user, nil
	}

	var user model.User
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &user, http.StatusOK)
	if err != nil {
		var sErr *StatusError
		if errors.As(err, &sErr) && sErr.StatusCode == http.StatusNotFound {
			c.usersCache.Put(userID, nil)
			return nil, nil
		}
		return nil, err
	}
	c.usersCache.Put(userID, &user)
	return &user, nil
}

// CreateUser registers a new user and drops the users cache.
func (c *Client) CreateUser(ctx context.Context, user model.User) error {
	c.usersCache.Invalidate()
	return c.do(ctx, http.MethodPost, "/users", user, nil, http.StatusCreated)
}

type availabilityPayload struct {
	Available bool `json:"available"`
}

// CheckUsername reports whether the username is still free.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	var resp availabilityPayload
	if err := c.do(ctx, http.MethodGet, "/users/check_username/"+url.PathEscape(username), nil, &resp, http.StatusOK); err != nil {
		return false, err
	}
	return resp.Available, nil
}

// Statistics fetches collection totals.
func (c *Client) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	if err := c.do(ctx, http.MethodGet, "/statistics", nil, &stats, http.StatusOK); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, wantStatus int) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			StatusCode: resp.StatusCode,
			URL:        c.baseURL + path,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}
