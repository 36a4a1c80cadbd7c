// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tavily is a client for the Tavily web search API. Besides the raw
// search endpoint it offers the two composite lookups the researcher uses:
// company information across several topics, and a token-bounded search
// context for a person.
package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/lead-research/internal/httputil"
	"github.com/pdiddy/lead-research/pkg/types"
)

// DefaultBaseURL is the Tavily API root.
const DefaultBaseURL = "https://api.tavily.com"

// DefaultContextTokens bounds the size of a SearchContext payload.
const DefaultContextTokens = 4000

// charsPerToken is the estimate used to convert payload length to tokens.
const charsPerToken = 4

// companyTopics are searched by CompanyInfo, in this order.
var companyTopics = []string{"news", "general", "finance"}

// SearchRequest is the body of a /search call.
type SearchRequest struct {
	Query         string            `json:"query"`
	SearchDepth   types.SearchDepth `json:"search_depth,omitempty"`
	Topic         string            `json:"topic,omitempty"`
	MaxResults    int               `json:"max_results,omitempty"`
	IncludeAnswer bool              `json:"include_answer"`
}

// Result is a single search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// SearchResponse is the decoded /search response.
type SearchResponse struct {
	Query        string   `json:"query"`
	Answer       string   `json:"answer,omitempty"`
	Results      []Result `json:"results"`
	ResponseTime float64  `json:"response_time"`
}

// Client calls the Tavily API. It is safe for concurrent use.
type Client struct {
	http          *http.Client
	apiKey        string
	baseURL       string
	userAgent     string
	contextTokens int
}

// NewClient returns a Client for cfg. A nil httpClient gets one built from
// cfg.Timeout.
func NewClient(cfg types.SearchConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:          httpClient,
		apiKey:        cfg.APIKey,
		baseURL:       baseURL,
		userAgent:     cfg.UserAgent,
		contextTokens: DefaultContextTokens,
	}
}

// Search runs a single query.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("empty Tavily query")
	}
	if c.apiKey == "" {
		return nil, errors.New("tavily: API key is missing")
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
		"User-Agent":    c.userAgent,
	}

	var resp SearchResponse
	if err := httputil.PostJSON(ctx, c.http, "Tavily", c.baseURL+"/search", headers, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompanyInfo searches the news, general, and finance topics concurrently,
// merges the hits, and returns the maxResults highest-scoring ones as JSON.
// It fails only when every topic search fails.
func (c *Client) CompanyInfo(ctx context.Context, query string, depth types.SearchDepth, maxResults int) (string, error) {
	type topicResult struct {
		idx     int
		results []Result
		err     error
	}

	ch := make(chan topicResult, len(companyTopics))
	var wg sync.WaitGroup

	for i, topic := range companyTopics {
		wg.Add(1)
		go func(i int, topic string) {
			defer wg.Done()
			resp, err := c.Search(ctx, SearchRequest{
				Query:       query,
				SearchDepth: depth,
				Topic:       topic,
				MaxResults:  maxResults,
			})
			if err != nil {
				ch <- topicResult{idx: i, err: fmt.Errorf("topic %s: %w", topic, err)}
				return
			}
			ch <- topicResult{idx: i, results: resp.Results}
		}(i, topic)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	byTopic := make([][]Result, len(companyTopics))
	var errs []error
	for tr := range ch {
		if tr.err != nil {
			errs = append(errs, tr.err)
			continue
		}
		byTopic[tr.idx] = tr.results
	}
	// A failed topic only narrows the merge; the lookup is an error when no
	// topic answered.
	if len(errs) == len(companyTopics) {
		return "", errors.Join(errs...)
	}

	all := []Result{}
	for _, rs := range byTopic {
		all = append(all, rs...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})
	if maxResults > 0 && len(all) > maxResults {
		all = all[:maxResults]
	}

	return marshal(all)
}

// contextItem is the per-source shape of a SearchContext payload.
type contextItem struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchContext runs one search and returns the url/content pairs of its
// hits as JSON, dropping trailing hits once the token budget is spent.
func (c *Client) SearchContext(ctx context.Context, query string, depth types.SearchDepth, maxResults int) (string, error) {
	resp, err := c.Search(ctx, SearchRequest{
		Query:       query,
		SearchDepth: depth,
		Topic:       "general",
		MaxResults:  maxResults,
	})
	if err != nil {
		return "", err
	}

	items := make([]contextItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		items = append(items, contextItem{URL: r.URL, Content: r.Content})
	}
	return marshal(limitTokens(items, c.contextTokens))
}

// limitTokens keeps the leading items whose combined estimated token count
// stays within maxTokens.
func limitTokens(items []contextItem, maxTokens int) []contextItem {
	total := 0
	for i, item := range items {
		data, _ := json.Marshal(item)
		total += estimateTokens(string(data))
		if total > maxTokens {
			return items[:i]
		}
	}
	return items
}

func estimateTokens(s string) int {
	return (len(s) + charsPerToken - 1) / charsPerToken
}

func marshal(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding search context: %w", err)
	}
	return string(data), nil
}
