package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pathwise/compass/internal/connections"
	"github.com/pathwise/compass/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterSurface(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("SALARY_DATA_PATH", "../datasets/yr-earnings-occupation.yaml")
	t.Setenv("PERPLEXITY_API_KEY", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("CHAT_HISTORY_BACKEND", "memory")

	svc, err := services.InitializeServices()
	require.NoError(t, err)
	defer svc.Close()

	manager := connections.NewManager(connections.DefaultTimeouts)
	server := httptest.NewServer(setupRouter(svc, manager))
	defer server.Close()

	t.Run("health endpoint", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("chat rejects missing message before any remote call", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/v1/chat", "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("search reports unconfigured", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/v1/search", "application/json", strings.NewReader(`{"query":"q"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/v1/unknown")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
