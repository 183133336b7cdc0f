package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpolishuk/repoprofile/backend/internal/apperr"
	"github.com/dpolishuk/repoprofile/backend/internal/models"
)

var octo = models.RepositoryRef{Owner: "octocat", Name: "hello-world"}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Options{})
	require.NotNil(t, client)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.Nil(t, client.repos)
}

func TestListRepositories_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, acceptJSON, r.Header.Get("Accept"))
		assert.Equal(t, "token ghp_secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "name": "hello-world", "full_name": "octocat/hello-world", "description": null,
			 "html_url": "https://github.com/octocat/hello-world", "language": "TypeScript",
			 "stargazers_count": 42, "forks_count": 7, "updated_at": "2026-01-02T03:04:05Z"}
		]`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Token: "ghp_secret"})
	repos, err := client.ListRepositories(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 1)

	assert.Equal(t, "octocat/hello-world", repos[0].FullName)
	assert.Nil(t, repos[0].Description)
	require.NotNil(t, repos[0].Language)
	assert.Equal(t, "TypeScript", *repos[0].Language)
	assert.Equal(t, 42, repos[0].StargazersCount)
}

func TestListRepositories_NoTokenNoAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	repos, err := NewClient(Options{BaseURL: server.URL}).ListRepositories(context.Background(), "octocat")
	require.NoError(t, err)
	assert.NotNil(t, repos)
	assert.Empty(t, repos)
}

func TestListRepositories_ErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		kind   apperr.Kind
		msg    string
	}{
		{http.StatusNotFound, apperr.NotFound, `User "ghost" not found`},
		{http.StatusForbidden, apperr.RateLimited, "GitHub API rate limit exceeded. Please try again later."},
		{http.StatusTooManyRequests, apperr.RateLimited, "GitHub API rate limit exceeded. Please try again later."},
		{http.StatusBadGateway, apperr.Transport, "Failed to fetch repositories: GitHub error (status 502): upstream down"},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte("upstream down"))
		}))

		_, err := NewClient(Options{BaseURL: server.URL}).ListRepositories(context.Background(), "ghost")
		server.Close()

		require.Error(t, err)
		assert.Equal(t, tt.kind, apperr.KindOf(err), "status %d", tt.status)
		assert.Equal(t, tt.msg, err.Error())
	}
}

func TestListRepositories_NetworkError(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://invalid-host-that-does-not-exist:9999"})
	_, err := client.ListRepositories(context.Background(), "octocat")

	require.Error(t, err)
	assert.Equal(t, apperr.Transport, apperr.KindOf(err))
}

func TestListRepositories_CachedPerUsername(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[{"id": 1, "name": "a"}]`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, CacheTTL: time.Minute, CacheSize: 4})
	ctx := context.Background()

	_, err := client.ListRepositories(ctx, "Octocat")
	require.NoError(t, err)
	_, err = client.ListRepositories(ctx, "octocat")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	_, err = client.ListRepositories(ctx, "hubot")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListRepositories_ErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, CacheTTL: time.Minute})
	_, err := client.ListRepositories(context.Background(), "octocat")
	require.Error(t, err)

	_, err = client.ListRepositories(context.Background(), "octocat")
	require.NoError(t, err)
}

func TestListDirectory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/contents/", r.URL.Path)
		assert.Equal(t, acceptJSON, r.Header.Get("Accept"))

		json.NewEncoder(w).Encode([]map[string]any{
			{"path": "README.md", "name": "README.md", "type": "file", "sha": "abc"},
			{"path": "src", "name": "src", "type": "dir"},
		})
	}))
	defer server.Close()

	entries, err := NewClient(Options{BaseURL: server.URL}).ListDirectory(context.Background(), octo, "")
	require.NoError(t, err)

	assert.Equal(t, []models.DirectoryEntry{
		{Path: "README.md", Name: "README.md", Type: models.EntryFile},
		{Path: "src", Name: "src", Type: models.EntryDir},
	}, entries)
}

func TestListDirectory_Subpath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/contents/src/lib", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewClient(Options{BaseURL: server.URL}).ListDirectory(context.Background(), octo, "/src/lib/")
	require.NoError(t, err)
}

func TestListDirectory_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	entries, err := NewClient(Options{BaseURL: server.URL}).ListDirectory(context.Background(), octo, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Empty(t, entries)
}

func TestFetchFileContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/contents/package.json", r.URL.Path)
		assert.Equal(t, acceptRaw, r.Header.Get("Accept"))
		w.Write([]byte(`{"name": "hello-world"}`))
	}))
	defer server.Close()

	content, err := NewClient(Options{BaseURL: server.URL}).FetchFileContent(context.Background(), octo, "package.json")
	require.NoError(t, err)
	assert.Equal(t, `{"name": "hello-world"}`, content)
}

func TestFetchFileContent_EmptyFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	content, err := NewClient(Options{BaseURL: server.URL}).FetchFileContent(context.Background(), octo, "empty.md")
	require.NoError(t, err)
	assert.Equal(t, "", content)
}

func TestFetchFileContent_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(Options{BaseURL: server.URL}).FetchFileContent(context.Background(), octo, "a.ts")
	assert.Error(t, err)
}

func TestFetchFileContent_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(Options{BaseURL: server.URL}).FetchFileContent(ctx, octo, "a.ts")
	assert.Error(t, err)
}
