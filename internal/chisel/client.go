// SPDX-License-Identifier: MPL-2.0

package chisel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// maxJSONResponseBytes is the upper bound on JSON API response size (10 MB).
	// Prevents unbounded memory consumption from malformed responses.
	maxJSONResponseBytes = 10 << 20

	defaultOwner = "Tynoxs"
	defaultRepo  = "BuildersDelight"
	defaultPath  = "src/main/resources/data/buildersdelight/chisel"
	defaultRef   = "1.20.1"
)

type (
	// RateLimitError is returned when the GitHub API rate limit is exceeded.
	RateLimitError struct {
		Limit     int
		Remaining int
		ResetAt   time.Time
	}

	// ContentEntry is one file descriptor from the GitHub contents API.
	ContentEntry struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		DownloadURL string `json:"download_url"`
	}

	// Definition is one upstream chisel definition document.
	Definition struct {
		Variants []string `json:"variants"`
	}

	// Client queries the GitHub contents API for chisel definitions.
	Client struct {
		httpClient *http.Client
		owner      string // Repository owner (default: "Tynoxs")
		repo       string // Repository name (default: "BuildersDelight")
		path       string // In-repo path of the chisel directory
		ref        string // Branch or tag to read from (default: "1.20.1")
		baseURL    string // API base URL (default: "https://api.github.com", overridable for tests)
		token      string // Optional GITHUB_TOKEN for authenticated requests
		userAgent  string // User-Agent header value
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// Error formats the rate limit details as a human-readable message.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("GitHub API rate limit exceeded (%d remaining, resets at %s)",
		e.Remaining, e.ResetAt.UTC().Format("15:04 UTC"))
}

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(g *Client) {
		g.httpClient = c
	}
}

// WithBaseURL overrides the GitHub API base URL, primarily for test servers.
func WithBaseURL(base string) ClientOption {
	return func(g *Client) {
		g.baseURL = strings.TrimRight(base, "/")
	}
}

// WithToken sets a GitHub personal access token for authenticated requests.
// Authenticated requests have a higher rate limit (5000/hour vs 60/hour).
func WithToken(token string) ClientOption {
	return func(g *Client) {
		g.token = token
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(g *Client) {
		g.userAgent = ua
	}
}

// WithRepo overrides the default upstream repository owner and name.
func WithRepo(owner, repo string) ClientOption {
	return func(g *Client) {
		g.owner = owner
		g.repo = repo
	}
}

// WithPath overrides the in-repo path of the chisel definitions directory.
func WithPath(path string) ClientOption {
	return func(g *Client) {
		g.path = strings.Trim(path, "/")
	}
}

// WithRef sets the branch or tag to read definitions from.
func WithRef(ref string) ClientOption {
	return func(g *Client) {
		g.ref = ref
	}
}

// NewClient creates a Client with sensible defaults pointing at the
// Builder's Delight repository on its 1.20.1 branch.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		owner:      defaultOwner,
		repo:       defaultRepo,
		path:       defaultPath,
		ref:        defaultRef,
		baseURL:    "https://api.github.com",
		userAgent:  "rechiseled-buildersdelight/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListChiselFiles fetches the chisel directory listing and returns the JSON
// file entries in API order. Non-file entries and non-JSON names are
// filtered client-side.
func (c *Client) ListChiselFiles(ctx context.Context) ([]ContentEntry, error) {
	listURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.baseURL, c.owner, c.repo, c.path, url.QueryEscape(c.ref))

	resp, err := c.doRequest(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("listing chisel files: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if err := checkRateLimit(resp); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing chisel files: unexpected status %d", resp.StatusCode)
	}

	var entries []ContentEntry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("listing chisel files: decoding response: %w", err)
	}

	files := make([]ContentEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == "file" && strings.HasSuffix(e.Name, ".json") {
			files = append(files, e)
		}
	}
	return files, nil
}

// FetchDefinition downloads and parses one chisel definition document.
func (c *Client) FetchDefinition(ctx context.Context, downloadURL string) (*Definition, error) {
	resp, err := c.doRequest(ctx, downloadURL)
	if err != nil {
		return nil, fmt.Errorf("downloading definition %s: %w", redactURL(downloadURL), err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading definition %s: unexpected status %d", redactURL(downloadURL), resp.StatusCode)
	}

	var def Definition
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&def); err != nil {
		return nil, fmt.Errorf("parsing definition %s: %w", redactURL(downloadURL), err)
	}

	return &def, nil
}

// doRequest creates and executes a GET request with common GitHub API headers.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)

	// Only attach the auth token when the request targets a known GitHub host.
	// This prevents token leakage if a download URL points at a third-party CDN.
	if c.token != "" && isGitHubHost(req.URL, c.baseURL) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}

// checkRateLimit inspects the X-RateLimit-* response headers and returns a
// RateLimitError when the remaining quota is zero.
func checkRateLimit(resp *http.Response) error {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return nil
	}

	rem, err := strconv.Atoi(remaining)
	if err != nil {
		// Malformed header value; skip rate limit check.
		return nil
	}
	if rem > 0 {
		return nil
	}

	// Companion headers are best-effort; malformed values default to zero,
	// which is acceptable for a diagnostic error message.
	limit, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	resetUnix, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)

	return &RateLimitError{
		Limit:     limit,
		Remaining: 0,
		ResetAt:   time.Unix(resetUnix, 0),
	}
}

// isGitHubHost reports whether reqURL targets a known GitHub host, so the
// auth token can be safely attached. It matches the configured API base URL
// host and, when the base is api.github.com, also trusts the raw content host.
func isGitHubHost(reqURL *url.URL, baseURL string) bool {
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	if strings.EqualFold(reqURL.Host, base.Host) {
		return true
	}
	if strings.EqualFold(base.Host, "api.github.com") && strings.EqualFold(reqURL.Host, "raw.githubusercontent.com") {
		return true
	}
	return false
}

// redactURL strips query parameters and fragments from a URL for safe
// inclusion in error messages.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
