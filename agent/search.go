package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ruslanmv/agenticai/core"
)

// DefaultSearchEndpoint is the Google Custom Search JSON API endpoint.
const DefaultSearchEndpoint = "https://www.googleapis.com/customsearch/v1"

// googleMaxResultsPerRequest is the API's per-request cap.
const googleMaxResultsPerRequest = 10

// SearchConfig carries the explicit connection parameters for the search
// agent. APIKey and SearchEngineID are required.
type SearchConfig struct {
	// APIKey is the Google API key.
	APIKey string
	// SearchEngineID is the Custom Search Engine identifier.
	SearchEngineID string
	// Endpoint overrides the API endpoint (tests, proxies, gateways).
	// Defaults to DefaultSearchEndpoint.
	Endpoint string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
	// HTTPClient overrides the client used for requests; a client with
	// Timeout applied is created when nil.
	HTTPClient *http.Client
	// NumResults is the default result count when the task context does not
	// specify one. Defaults to 10.
	NumResults int
}

// SearchResult is one ranked search hit.
type SearchResult struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"display_link"`
}

// SearchPayload is the structured result of a search execution.
type SearchPayload struct {
	Query        string         `json:"query"`
	Results      []SearchResult `json:"results"`
	TotalResults int64          `json:"total_results"`
	SearchTime   float64        `json:"search_time"`
}

// GoogleSearchAgent performs web searches using the Google Custom Search
// API. The task string is the query; the task context may carry
// "num_results" (int) to bound the result count.
type GoogleSearchAgent struct {
	BaseAgent
	cfg    SearchConfig
	client *http.Client
}

// NewGoogleSearchAgent constructs a search agent. It fails when the required
// credentials are missing, before any lifecycle transition happens.
func NewGoogleSearchAgent(name string, cfg SearchConfig) (*GoogleSearchAgent, error) {
	if name == "" {
		name = "google-search-agent"
	}
	if cfg.APIKey == "" || cfg.SearchEngineID == "" {
		return nil, fmt.Errorf("agent %s: api key and search engine id are required", name)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultSearchEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.NumResults <= 0 {
		cfg.NumResults = googleMaxResultsPerRequest
	}

	return &GoogleSearchAgent{
		BaseAgent: NewBaseAgent(name, "Performs web searches using Google Custom Search API"),
		cfg:       cfg,
	}, nil
}

// Initialize prepares the HTTP client.
func (a *GoogleSearchAgent) Initialize(_ context.Context) error {
	a.client = a.cfg.HTTPClient
	if a.client == nil {
		a.client = &http.Client{Timeout: a.cfg.Timeout}
	}
	return a.MarkReady()
}

// Execute performs one search. It returns a *SearchPayload.
func (a *GoogleSearchAgent) Execute(ctx context.Context, task string, taskCtx map[string]any) (any, error) {
	if err := a.BeginExecute(); err != nil {
		return nil, err
	}
	defer a.EndExecute()

	numResults := a.cfg.NumResults
	if n, ok := intFromContext(taskCtx, "num_results"); ok && n > 0 {
		numResults = n
	}
	if numResults > googleMaxResultsPerRequest {
		numResults = googleMaxResultsPerRequest
	}

	params := url.Values{}
	params.Set("key", a.cfg.APIKey)
	params.Set("cx", a.cfg.SearchEngineID)
	params.Set("q", task)
	params.Set("num", strconv.Itoa(numResults))

	var data struct {
		Items []struct {
			Title       string `json:"title"`
			Link        string `json:"link"`
			Snippet     string `json:"snippet"`
			DisplayLink string `json:"displayLink"`
		} `json:"items"`
		SearchInformation struct {
			TotalResults string  `json:"totalResults"`
			SearchTime   float64 `json:"searchTime"`
		} `json:"searchInformation"`
	}

	if err := getJSON(ctx, a.client, a.cfg.Endpoint, params, &data); err != nil {
		return nil, fmt.Errorf("google search failed for %q: %w", task, err)
	}

	payload := &SearchPayload{
		Query:      task,
		Results:    make([]SearchResult, 0, len(data.Items)),
		SearchTime: data.SearchInformation.SearchTime,
	}
	for _, item := range data.Items {
		payload.Results = append(payload.Results, SearchResult{
			Title:       item.Title,
			Link:        item.Link,
			Snippet:     item.Snippet,
			DisplayLink: item.DisplayLink,
		})
	}
	if total, err := strconv.ParseInt(data.SearchInformation.TotalResults, 10, 64); err == nil {
		payload.TotalResults = total
	}

	return payload, nil
}

// Cleanup releases the HTTP client. Safe even when Initialize never ran.
func (a *GoogleSearchAgent) Cleanup(_ context.Context) error {
	if a.client != nil {
		a.client.CloseIdleConnections()
		a.client = nil
	}
	a.MarkDisposed()
	return nil
}

// getJSON issues a GET with query parameters and decodes the JSON body.
func getJSON(ctx context.Context, client *http.Client, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// intFromContext reads an integer task-context parameter tolerating the
// numeric types a JSON round trip may produce.
func intFromContext(taskCtx map[string]any, key string) (int, bool) {
	if taskCtx == nil {
		return 0, false
	}
	switch v := taskCtx[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

var _ core.Agent = (*GoogleSearchAgent)(nil)
