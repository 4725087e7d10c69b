package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"github.com/iosxx/github-project-analyzer/internal/models"
	"golang.org/x/oauth2"
)

const (
	// defaultTreeDepth limits file listing entries to this many path segments.
	defaultTreeDepth = 3

	// maxTreeEntries caps how many tree entries are considered, in API order.
	maxTreeEntries = 100
)

// RepositoriesService is the subset of the go-github repositories API the
// fetcher needs. Narrow so tests can substitute fakes.
type RepositoriesService interface {
	Get(ctx context.Context, owner, repo string) (*gh.Repository, *gh.Response, error)
	GetReadme(ctx context.Context, owner, repo string, opts *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, *gh.Response, error)
}

// GitService is the subset of the go-github git data API the fetcher needs.
type GitService interface {
	GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*gh.Tree, *gh.Response, error)
}

// APIDoer issues raw requests through the go-github client. Used for the
// languages endpoint, where JSON key order must be preserved.
type APIDoer interface {
	NewRequest(method, urlStr string, body interface{}, opts ...gh.RequestOption) (*http.Request, error)
	Do(ctx context.Context, req *http.Request, v interface{}) (*gh.Response, error)
}

// Client fetches repository metadata, README text, a shallow file listing,
// and language statistics. Pure request/response, no state between calls.
type Client struct {
	repos    RepositoriesService
	git      GitService
	api      APIDoer
	maxDepth int
}

func NewClient(ctx context.Context, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	c := gh.NewClient(httpClient)
	return &Client{
		repos:    c.Repositories,
		git:      c.Git,
		api:      c,
		maxDepth: defaultTreeDepth,
	}
}

// NewClientWithServices wires explicit service implementations, for tests.
func NewClientWithServices(repos RepositoriesService, git GitService, api APIDoer, maxDepth int) *Client {
	return &Client{repos: repos, git: git, api: api, maxDepth: maxDepth}
}

// ParseRepoURL extracts the owner and short name from a repository URL,
// stripping a trailing slash and a .git suffix.
func ParseRepoURL(rawURL string) (owner, repo string, err error) {
	trimmed := strings.TrimSuffix(strings.TrimRight(rawURL, "/"), ".git")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[len(parts)-1] == "" || parts[len(parts)-2] == "" {
		return "", "", fmt.Errorf("invalid repository URL %q", rawURL)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}

// FetchMetadata retrieves the repository attribute snapshot. This is the only
// fetch whose failure is surfaced; the caller switches to the fallback record.
func (c *Client) FetchMetadata(ctx context.Context, owner, repo string) (*models.RepoMetadata, error) {
	r, _, err := c.repos.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetching repository %s/%s: %w", owner, repo, err)
	}

	meta := &models.RepoMetadata{
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.Description,
		Language:    r.Language,
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Topics:      r.Topics,
		OpenIssues:  r.GetOpenIssuesCount(),
		Watchers:    r.GetWatchersCount(),
	}
	if r.License != nil {
		name := r.GetLicense().GetName()
		meta.License = &name
	}
	if r.CreatedAt != nil {
		t := r.CreatedAt.Time
		meta.CreatedAt = &t
	}
	if r.UpdatedAt != nil {
		t := r.UpdatedAt.Time
		meta.UpdatedAt = &t
	}
	return meta, nil
}

// FetchReadme returns the decoded README text. Any failure, including a
// malformed base64 payload, yields an empty string rather than an error.
func (c *Client) FetchReadme(ctx context.Context, owner, repo string) string {
	readme, _, err := c.repos.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		return ""
	}
	content, err := readme.GetContent()
	if err != nil {
		return ""
	}
	return content
}

// FetchFileTree returns the first 100 tree entries no deeper than the
// configured depth, in API order. Failure yields an empty listing.
func (c *Client) FetchFileTree(ctx context.Context, owner, repo string) []models.FileTreeEntry {
	tree, _, err := c.git.GetTree(ctx, owner, repo, "HEAD", true)
	if err != nil {
		return nil
	}

	entries := tree.Entries
	if len(entries) > maxTreeEntries {
		entries = entries[:maxTreeEntries]
	}

	var out []models.FileTreeEntry
	for _, e := range entries {
		path := e.GetPath()
		if strings.Count(path, "/") >= c.maxDepth {
			continue
		}
		out = append(out, models.FileTreeEntry{Path: path, Type: entryKind(e.GetType())})
	}
	return out
}

// FetchLanguages returns the byte counts per language. The endpoint is called
// through the raw request path so the response's key order survives into
// LanguageStats.Names. Failure yields empty stats.
func (c *Client) FetchLanguages(ctx context.Context, owner, repo string) models.LanguageStats {
	req, err := c.api.NewRequest(http.MethodGet, fmt.Sprintf("repos/%s/%s/languages", owner, repo), nil)
	if err != nil {
		return models.LanguageStats{}
	}

	var stats models.LanguageStats
	if _, err := c.api.Do(ctx, req, &stats); err != nil {
		return models.LanguageStats{}
	}
	return stats
}

func entryKind(treeType string) string {
	if treeType == "tree" {
		return "directory"
	}
	return "file"
}
