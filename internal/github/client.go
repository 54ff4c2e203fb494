package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/Mester2001/portfolio/pkg/logger"
)

const DefaultBaseURL = "https://api.github.com"

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(baseURL, token string) *Client {
	rl := NewRateLimiter()

	client := &http.Client{
		Timeout:   30 * time.Second,
		Transport: rl.Middleware(http.DefaultTransport),
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

func (c *Client) makeRequest(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	return resp, nil
}

// * get performs one GET and returns the body of a 2xx response; every other
// * outcome is an ApplicationError
func (c *Client) get(ctx context.Context, path, what string) ([]byte, error) {
	resp, err := c.makeRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, errors.New(
			errors.RefGitHubAPI,
			"Failed to reach GitHub",
			fmt.Sprintf("Could not retrieve %s from GitHub API", what),
			err,
			errors.LevelError,
		).WithStatus(http.StatusBadGateway)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NotFound(
			errors.RefGitHubNotFound,
			"Not found on GitHub",
			fmt.Sprintf("GitHub has no %s at %s", what, path),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(
			errors.RefGitHubAPI,
			"Unexpected response from GitHub API",
			fmt.Sprintf("GitHub API returned status %d when fetching %s", resp.StatusCode, what),
			nil,
			errors.LevelError,
		).WithStatus(http.StatusBadGateway)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(
			errors.RefGitHubAPI,
			"Failed to read GitHub API response",
			fmt.Sprintf("Could not read the %s response body", what),
			err,
			errors.LevelError,
		).WithStatus(http.StatusBadGateway)
	}

	return body, nil
}

func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	body, err := c.get(ctx, "/users/"+url.PathEscape(username), "profile")
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, errors.New(
			errors.RefGitHubAPI,
			"Failed to parse GitHub API response",
			"Could not understand the profile returned by GitHub API",
			err,
			errors.LevelError,
		).WithStatus(http.StatusBadGateway)
	}

	return &user, nil
}

func (c *Client) ListRepositories(ctx context.Context, username string) ([]Repository, error) {
	path := userPath(username, "repos", ReposPerPage)
	body, err := c.get(ctx, path, "repositories")
	if err != nil {
		return nil, err
	}
	return decodeList[Repository](body, "repositories")
}

func (c *Client) ListFollowers(ctx context.Context, username string) ([]Follower, error) {
	body, err := c.get(ctx, userPath(username, "followers", 0), "followers")
	if err != nil {
		return nil, err
	}
	return decodeList[Follower](body, "followers")
}

func (c *Client) ListEvents(ctx context.Context, username string) ([]Event, error) {
	body, err := c.get(ctx, userPath(username, "events", EventsPerPage), "events")
	if err != nil {
		return nil, err
	}
	return decodeList[Event](body, "events")
}

func userPath(username, resource string, perPage int) string {
	path := fmt.Sprintf("/users/%s/%s", url.PathEscape(username), resource)
	if perPage > 0 {
		path += "?per_page=" + strconv.Itoa(perPage)
	}
	return path
}

// * decodeList treats a body that is not a JSON array as an empty list; a
// * malformed array is still an error
func decodeList[T any](body []byte, what string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		logger.Warn("GitHub returned a non-list body for %s, treating it as empty", what)
		return []T{}, nil
	}

	items := []T{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, errors.New(
			errors.RefGitHubAPI,
			"Failed to parse GitHub API response",
			fmt.Sprintf("Could not understand the %s returned by GitHub API", what),
			err,
			errors.LevelError,
		).WithStatus(http.StatusBadGateway)
	}

	return items, nil
}
