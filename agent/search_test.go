package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ruslanmv/agenticai/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "test-cx", q.Get("cx"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"title": "First", "link": "https://a.example", "snippet": "alpha", "displayLink": "a.example"},
				{"title": "Second", "link": "https://b.example", "snippet": "beta", "displayLink": "b.example"}
			],
			"searchInformation": {"totalResults": "42", "searchTime": 0.31}
		}`))
	}))
}

func newSearchAgentForTest(t *testing.T, endpoint string) *GoogleSearchAgent {
	t.Helper()
	a, err := NewGoogleSearchAgent("", SearchConfig{
		APIKey:         "test-key",
		SearchEngineID: "test-cx",
		Endpoint:       endpoint,
	})
	require.NoError(t, err)
	return a
}

func TestNewGoogleSearchAgent_RequiresCredentials(t *testing.T) {
	_, err := NewGoogleSearchAgent("", SearchConfig{APIKey: "k"})
	assert.Error(t, err)

	_, err = NewGoogleSearchAgent("", SearchConfig{SearchEngineID: "cx"})
	assert.Error(t, err)
}

func TestGoogleSearchAgent_Execute(t *testing.T) {
	srv := newSearchServer(t)
	defer srv.Close()

	a := newSearchAgentForTest(t, srv.URL)
	require.NoError(t, a.Initialize(context.Background()))
	assert.Equal(t, core.StateReady, a.State())

	payload, err := a.Execute(context.Background(), "golang", map[string]any{"num_results": 2})
	require.NoError(t, err)

	search, ok := payload.(*SearchPayload)
	require.True(t, ok)
	assert.Equal(t, "golang", search.Query)
	require.Len(t, search.Results, 2)
	assert.Equal(t, "First", search.Results[0].Title)
	assert.Equal(t, "https://a.example", search.Results[0].Link)
	assert.EqualValues(t, 42, search.TotalResults)
	assert.InDelta(t, 0.31, search.SearchTime, 1e-9)
}

func TestGoogleSearchAgent_ExecuteBeforeInitialize(t *testing.T) {
	a := newSearchAgentForTest(t, "http://unused.invalid")

	_, err := a.Execute(context.Background(), "golang", nil)
	assert.ErrorIs(t, err, core.ErrUninitialized)
}

func TestGoogleSearchAgent_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	a := newSearchAgentForTest(t, srv.URL)
	require.NoError(t, a.Initialize(context.Background()))

	_, err := a.Execute(context.Background(), "golang", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")

	// A failed execution leaves the agent Ready for the next attempt.
	assert.Equal(t, core.StateReady, a.State())
}

func TestGoogleSearchAgent_CleanupWithoutInitialize(t *testing.T) {
	a := newSearchAgentForTest(t, "http://unused.invalid")

	assert.NoError(t, a.Cleanup(context.Background()))
	assert.Equal(t, core.StateDisposed, a.State())
}
