package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepos struct {
	repo      *gh.Repository
	repoErr   error
	readme    *gh.RepositoryContent
	readmeErr error
}

func (f *fakeRepos) Get(_ context.Context, _, _ string) (*gh.Repository, *gh.Response, error) {
	return f.repo, nil, f.repoErr
}

func (f *fakeRepos) GetReadme(_ context.Context, _, _ string, _ *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, *gh.Response, error) {
	return f.readme, nil, f.readmeErr
}

type fakeGit struct {
	tree *gh.Tree
	err  error
}

func (f *fakeGit) GetTree(_ context.Context, _, _, _ string, _ bool) (*gh.Tree, *gh.Response, error) {
	return f.tree, nil, f.err
}

type fakeAPI struct {
	body string
	err  error
}

func (f *fakeAPI) NewRequest(method, urlStr string, _ interface{}, _ ...gh.RequestOption) (*http.Request, error) {
	return http.NewRequest(method, "https://api.github.com/"+urlStr, nil)
}

func (f *fakeAPI) Do(_ context.Context, _ *http.Request, v interface{}) (*gh.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return nil, json.Unmarshal([]byte(f.body), v)
}

func TestParseRepoURL(t *testing.T) {
	t.Run("plain url", func(t *testing.T) {
		owner, repo, err := ParseRepoURL("https://github.com/acme/demo")
		require.NoError(t, err)
		assert.Equal(t, "acme", owner)
		assert.Equal(t, "demo", repo)
	})

	t.Run("trailing slash and git suffix", func(t *testing.T) {
		owner, repo, err := ParseRepoURL("https://github.com/acme/demo.git/")
		require.NoError(t, err)
		assert.Equal(t, "acme", owner)
		assert.Equal(t, "demo", repo)
	})

	t.Run("missing segments", func(t *testing.T) {
		_, _, err := ParseRepoURL("demo")
		assert.Error(t, err)
	})
}

func TestFetchMetadata(t *testing.T) {
	t.Run("maps repository fields", func(t *testing.T) {
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		repos := &fakeRepos{repo: &gh.Repository{
			Name:            gh.Ptr("demo"),
			FullName:        gh.Ptr("acme/demo"),
			Description:     gh.Ptr("一个演示项目"),
			Language:        gh.Ptr("Go"),
			StargazersCount: gh.Ptr(42),
			ForksCount:      gh.Ptr(7),
			Topics:          []string{"cli", "tooling"},
			License:         &gh.License{Name: gh.Ptr("MIT License")},
			CreatedAt:       &gh.Timestamp{Time: created},
			OpenIssuesCount: gh.Ptr(3),
			WatchersCount:   gh.Ptr(12),
		}}

		c := NewClientWithServices(repos, nil, nil, defaultTreeDepth)
		meta, err := c.FetchMetadata(context.Background(), "acme", "demo")
		require.NoError(t, err)

		assert.Equal(t, "demo", meta.Name)
		assert.Equal(t, "acme/demo", meta.FullName)
		assert.Equal(t, "一个演示项目", *meta.Description)
		assert.Equal(t, "Go", *meta.Language)
		assert.Equal(t, 42, meta.Stars)
		assert.Equal(t, 7, meta.Forks)
		assert.Equal(t, []string{"cli", "tooling"}, meta.Topics)
		assert.Equal(t, "MIT License", *meta.License)
		assert.Equal(t, created, *meta.CreatedAt)
		assert.Nil(t, meta.UpdatedAt)
		assert.Equal(t, 3, meta.OpenIssues)
		assert.Equal(t, 12, meta.Watchers)
	})

	t.Run("error is surfaced", func(t *testing.T) {
		repos := &fakeRepos{repoErr: fmt.Errorf("404 Not Found")}
		c := NewClientWithServices(repos, nil, nil, defaultTreeDepth)

		_, err := c.FetchMetadata(context.Background(), "acme", "gone")
		assert.ErrorContains(t, err, "acme/gone")
	})
}

func TestFetchReadme(t *testing.T) {
	t.Run("decodes base64 content", func(t *testing.T) {
		repos := &fakeRepos{readme: &gh.RepositoryContent{
			Encoding: gh.Ptr("base64"),
			Content:  gh.Ptr("IyBkZW1vCg=="),
		}}
		c := NewClientWithServices(repos, nil, nil, defaultTreeDepth)
		assert.Equal(t, "# demo\n", c.FetchReadme(context.Background(), "acme", "demo"))
	})

	t.Run("decode failure yields empty string", func(t *testing.T) {
		repos := &fakeRepos{readme: &gh.RepositoryContent{
			Encoding: gh.Ptr("base64"),
			Content:  gh.Ptr("!!!not-base64!!!"),
		}}
		c := NewClientWithServices(repos, nil, nil, defaultTreeDepth)
		assert.Equal(t, "", c.FetchReadme(context.Background(), "acme", "demo"))
	})

	t.Run("fetch failure yields empty string", func(t *testing.T) {
		repos := &fakeRepos{readmeErr: fmt.Errorf("404 Not Found")}
		c := NewClientWithServices(repos, nil, nil, defaultTreeDepth)
		assert.Equal(t, "", c.FetchReadme(context.Background(), "acme", "demo"))
	})
}

func TestFetchFileTree(t *testing.T) {
	entry := func(path, kind string) *gh.TreeEntry {
		return &gh.TreeEntry{Path: gh.Ptr(path), Type: gh.Ptr(kind)}
	}

	t.Run("maps kinds and filters depth", func(t *testing.T) {
		git := &fakeGit{tree: &gh.Tree{Entries: []*gh.TreeEntry{
			entry("README.md", "blob"),
			entry("internal", "tree"),
			entry("internal/app/deep/file.go", "blob"),
			entry("internal/app/file.go", "blob"),
		}}}
		c := NewClientWithServices(nil, git, nil, defaultTreeDepth)

		tree := c.FetchFileTree(context.Background(), "acme", "demo")
		require.Len(t, tree, 3)
		assert.Equal(t, "README.md", tree[0].Path)
		assert.Equal(t, "file", tree[0].Type)
		assert.Equal(t, "internal", tree[1].Path)
		assert.Equal(t, "directory", tree[1].Type)
		assert.Equal(t, "internal/app/file.go", tree[2].Path)
	})

	t.Run("caps at 100 entries before depth filtering", func(t *testing.T) {
		var entries []*gh.TreeEntry
		for i := 0; i < 150; i++ {
			entries = append(entries, entry(fmt.Sprintf("file_%03d.txt", i), "blob"))
		}
		git := &fakeGit{tree: &gh.Tree{Entries: entries}}
		c := NewClientWithServices(nil, git, nil, defaultTreeDepth)

		tree := c.FetchFileTree(context.Background(), "acme", "demo")
		assert.Len(t, tree, 100)
	})

	t.Run("fetch failure yields empty listing", func(t *testing.T) {
		git := &fakeGit{err: fmt.Errorf("409 Git Repository is empty")}
		c := NewClientWithServices(nil, git, nil, defaultTreeDepth)
		assert.Empty(t, c.FetchFileTree(context.Background(), "acme", "demo"))
	})
}

func TestFetchLanguages(t *testing.T) {
	t.Run("preserves response key order", func(t *testing.T) {
		api := &fakeAPI{body: `{"Go": 100, "Rust": 50, "Makefile": 10}`}
		c := NewClientWithServices(nil, nil, api, defaultTreeDepth)

		stats := c.FetchLanguages(context.Background(), "acme", "demo")
		assert.Equal(t, []string{"Go", "Rust", "Makefile"}, stats.Names)
		assert.Equal(t, 50, stats.Bytes["Rust"])
	})

	t.Run("fetch failure yields empty stats", func(t *testing.T) {
		api := &fakeAPI{err: fmt.Errorf("403 rate limited")}
		c := NewClientWithServices(nil, nil, api, defaultTreeDepth)

		stats := c.FetchLanguages(context.Background(), "acme", "demo")
		assert.Empty(t, stats.Names)
	})
}
