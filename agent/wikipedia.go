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

// WikiConfig carries the explicit connection parameters for the Wikipedia
// agent. All fields are optional.
type WikiConfig struct {
	// Language selects the Wikipedia edition. Defaults to "en".
	Language string
	// Endpoint overrides the MediaWiki API endpoint (tests, mirrors).
	// Defaults to https://<language>.wikipedia.org/w/api.php.
	Endpoint string
	// UserAgent identifies the client, as the MediaWiki etiquette requires.
	UserAgent string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
	// HTTPClient overrides the client used for requests.
	HTTPClient *http.Client
	// Sentences is the default extract length when the task context does not
	// specify one. Defaults to 5.
	Sentences int
}

// WikiPayload is the structured result of an encyclopedic lookup.
type WikiPayload struct {
	Query   string `json:"query"`
	Found   bool   `json:"found"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
	URL     string `json:"url"`
	PageID  int64  `json:"page_id"`
}

// WikipediaAgent retrieves encyclopedic knowledge through the MediaWiki API.
// The task string is the topic; the task context may carry "sentences" (int)
// to bound the extract length.
//
// Execution is a two phase exchange: a search request resolving the topic to
// the best matching article, then an extract request for that article.
type WikipediaAgent struct {
	BaseAgent
	cfg    WikiConfig
	client *http.Client
}

// NewWikipediaAgent constructs a Wikipedia agent.
func NewWikipediaAgent(name string, cfg WikiConfig) *WikipediaAgent {
	if name == "" {
		name = "wikipedia-agent"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", cfg.Language)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "agenticai/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Sentences <= 0 {
		cfg.Sentences = 5
	}

	return &WikipediaAgent{
		BaseAgent: NewBaseAgent(name, "Retrieves encyclopedic knowledge from Wikipedia"),
		cfg:       cfg,
	}
}

// Initialize prepares the HTTP client.
func (a *WikipediaAgent) Initialize(_ context.Context) error {
	a.client = a.cfg.HTTPClient
	if a.client == nil {
		a.client = &http.Client{Timeout: a.cfg.Timeout}
	}
	return a.MarkReady()
}

// Execute looks up the topic and returns a *WikiPayload. A topic with no
// matching article yields a payload with Found=false, not an error.
func (a *WikipediaAgent) Execute(ctx context.Context, task string, taskCtx map[string]any) (any, error) {
	if err := a.BeginExecute(); err != nil {
		return nil, err
	}
	defer a.EndExecute()

	sentences := a.cfg.Sentences
	if n, ok := intFromContext(taskCtx, "sentences"); ok && n > 0 {
		sentences = n
	}

	title, pageID, err := a.searchArticle(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("wikipedia search failed for %q: %w", task, err)
	}
	if title == "" {
		return &WikiPayload{Query: task}, nil
	}

	payload, err := a.fetchExtract(ctx, task, title, pageID, sentences)
	if err != nil {
		return nil, fmt.Errorf("wikipedia extract failed for %q: %w", title, err)
	}

	return payload, nil
}

// searchArticle resolves a topic to the best matching article title and page
// ID. An empty title means no match.
func (a *WikipediaAgent) searchArticle(ctx context.Context, topic string) (string, int64, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("list", "search")
	params.Set("srsearch", topic)
	params.Set("srlimit", "1")

	var data struct {
		Query struct {
			Search []struct {
				Title  string `json:"title"`
				PageID int64  `json:"pageid"`
			} `json:"search"`
		} `json:"query"`
	}

	if err := a.get(ctx, params, &data); err != nil {
		return "", 0, err
	}
	if len(data.Query.Search) == 0 {
		return "", 0, nil
	}

	return data.Query.Search[0].Title, data.Query.Search[0].PageID, nil
}

// fetchExtract retrieves the bounded plain-text extract for an article.
func (a *WikipediaAgent) fetchExtract(ctx context.Context, topic, title string, pageID int64, sentences int) (*WikiPayload, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts|info")
	params.Set("exsentences", strconv.Itoa(sentences))
	params.Set("explaintext", "1")
	params.Set("inprop", "url")
	params.Set("titles", title)

	var data struct {
		Query struct {
			Pages map[string]struct {
				Title   string `json:"title"`
				Extract string `json:"extract"`
				FullURL string `json:"fullurl"`
			} `json:"pages"`
		} `json:"query"`
	}

	if err := a.get(ctx, params, &data); err != nil {
		return nil, err
	}

	payload := &WikiPayload{Query: topic, Found: true, Title: title, PageID: pageID}
	if page, ok := data.Query.Pages[strconv.FormatInt(pageID, 10)]; ok {
		payload.Title = page.Title
		payload.Extract = page.Extract
		payload.URL = page.FullURL
	}

	return payload, nil
}

func (a *WikipediaAgent) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Cleanup releases the HTTP client. Safe even when Initialize never ran.
func (a *WikipediaAgent) Cleanup(_ context.Context) error {
	if a.client != nil {
		a.client.CloseIdleConnections()
		a.client = nil
	}
	a.MarkDisposed()
	return nil
}

var _ core.Agent = (*WikipediaAgent)(nil)
