// Package github is the repository source: repository listings, directory
// listings and raw file contents from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dpolishuk/repoprofile/backend/internal/apperr"
	"github.com/dpolishuk/repoprofile/backend/internal/models"
)

const (
	DefaultBaseURL = "https://api.github.com"

	acceptJSON = "application/vnd.github.v3+json"
	acceptRaw  = "application/vnd.github.v3.raw"

	reposPerPage = 100
)

type Options struct {
	BaseURL string
	// Token is optional; it only raises the upstream rate limit.
	Token     string
	Timeout   time.Duration
	CacheTTL  time.Duration
	CacheSize int
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	repos      *expirable.LRU[string, []models.RepositoryMetadata]
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
	if opts.CacheTTL > 0 {
		size := opts.CacheSize
		if size <= 0 {
			size = 256
		}
		c.repos = expirable.NewLRU[string, []models.RepositoryMetadata](size, nil, opts.CacheTTL)
	}
	return c
}

// ListRepositories returns up to 100 of the user's repositories, most
// recently updated first. Only the first page is ever requested.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]models.RepositoryMetadata, error) {
	key := strings.ToLower(username)
	if c.repos != nil {
		if cached, ok := c.repos.Get(key); ok {
			return cached, nil
		}
	}

	q := url.Values{}
	q.Set("per_page", fmt.Sprint(reposPerPage))
	q.Set("sort", "updated")
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	resp, err := c.get(ctx, endpoint, acceptJSON)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "Failed to fetch repositories: "+err.Error(), err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, apperr.New(apperr.NotFound, fmt.Sprintf("User %q not found", username))
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, apperr.New(apperr.RateLimited, "GitHub API rate limit exceeded. Please try again later.")
	default:
		err := statusError(resp)
		return nil, apperr.Wrap(apperr.Transport, "Failed to fetch repositories: "+err.Error(), err)
	}

	var repos []models.RepositoryMetadata
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, apperr.Wrap(apperr.Transport, "Failed to fetch repositories: failed to decode response", err)
	}
	if repos == nil {
		repos = []models.RepositoryMetadata{}
	}

	if c.repos != nil {
		c.repos.Add(key, repos)
	}
	return repos, nil
}

// ListDirectory lists one directory of a repository. An empty path is the root.
func (c *Client) ListDirectory(ctx context.Context, repo models.RepositoryRef, path string) ([]models.DirectoryEntry, error) {
	resp, err := c.get(ctx, c.contentsURL(repo, path), acceptJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var entries []models.DirectoryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return entries, nil
}

// FetchFileContent returns the raw text of one file.
func (c *Client) FetchFileContent(ctx context.Context, repo models.RepositoryRef, path string) (string, error) {
	resp, err := c.get(ctx, c.contentsURL(repo, path), acceptRaw)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(body), nil
}

func (c *Client) contentsURL(repo models.RepositoryRef, path string) string {
	var segments []string
	for _, s := range strings.Split(strings.Trim(path, "/"), "/") {
		if s != "" {
			segments = append(segments, url.PathEscape(s))
		}
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.baseURL, url.PathEscape(repo.Owner), url.PathEscape(repo.Name), strings.Join(segments, "/"))
}

func (c *Client) get(ctx context.Context, endpoint, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	return c.httpClient.Do(req)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("GitHub error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
