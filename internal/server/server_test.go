package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpolishuk/repoprofile/backend/internal/config"
)

func testConfig(githubURL string) *config.Config {
	return &config.Config{
		GitHubAPIURL:    githubURL,
		GitHubTimeout:   5 * time.Second,
		GeminiModel:     "gemini-2.5-flash",
		FilesPerRepo:    10,
		PollInterval:    2 * time.Second,
		PollMaxAttempts: 15,
	}
}

func TestNewAppServesRepositories(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Hello-World","full_name":"octocat/Hello-World","html_url":"https://github.com/octocat/Hello-World"}]`))
	}))
	defer upstream.Close()

	svc := NewServices(context.Background(), testConfig(upstream.URL))
	defer svc.Close()
	app := NewApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/repositories?username=octocat", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
}

func TestNewAppHealth(t *testing.T) {
	svc := NewServices(context.Background(), testConfig("http://127.0.0.1:1"))
	defer svc.Close()

	resp, err := NewApp(svc).Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewServicesWithoutLedger(t *testing.T) {
	svc := NewServices(context.Background(), testConfig("http://127.0.0.1:1"))
	defer svc.Close()

	assert.Nil(t, svc.ledger)
}
