// Package github is a minimal client for the release API of the
// patch-bundle repository.
package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Release represents a GitHub release.
type Release struct {
	TagName string  `json:"tag_name"`
	Name    string  `json:"name"`
	Body    string  `json:"body"`
	ZipURL  string  `json:"zipball_url"`
	Assets  []Asset `json:"assets"`
}

// AssetURL returns the download URL of the named asset, or the
// release source zip when the asset is not present.
func (r *Release) AssetURL(name string) string {
	for _, asset := range r.Assets {
		if asset.Name == name {
			return asset.BrowserDownloadURL
		}
	}
	return r.ZipURL
}

const defaultBaseURL = "https://api.github.com"

// Client handles GitHub API requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	owner      string
	repo       string
}

// NewClient creates a new GitHub API client. A nil httpClient gets a
// default with a 30 second timeout.
func NewClient(owner, repo string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	return &Client{
		owner:      owner,
		repo:       repo,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
}

// SetHTTPClient sets the HTTP client (useful for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// SetBaseURL overrides the API endpoint (useful for testing).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// LatestRelease fetches the most recent release of the repository.
func (c *Client) LatestRelease() (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)
	return c.getRelease(url)
}

// ReleaseByTag fetches a specific release.
func (c *Client) ReleaseByTag(tag string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.baseURL, c.owner, c.repo, tag)
	return c.getRelease(url)
}

func (c *Client) getRelease(url string) (*Release, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "nightreign-launcher")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch release: HTTP %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to parse release: %w", err)
	}

	return &release, nil
}
