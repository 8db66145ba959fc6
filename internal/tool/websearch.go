package tool

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	duckDuckGoURL    = "https://html.duckduckgo.com/html/"
	defaultResults   = 5
	maxSearchResults = 10
)

// WebSearch queries DuckDuckGo's HTML endpoint and scrapes the result list.
type WebSearch struct {
	baseURL string
	http    *http.Client
}

func NewWebSearch() *WebSearch {
	return &WebSearch{
		baseURL: duckDuckGoURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewWebSearchWithClient exists for tests and alternate endpoints.
func NewWebSearchWithClient(baseURL string, client *http.Client) *WebSearch {
	return &WebSearch{baseURL: baseURL, http: client}
}

func (w *WebSearch) Name() string { return "web_search" }

func (w *WebSearch) Description() string {
	return "Searches the web using DuckDuckGo and returns relevant results. " +
		"Returns titles, snippets, and URLs for the top search results. " +
		"Useful for finding current information, facts, or resources online."
}

func (w *WebSearch) Parameters() []Parameter {
	return []Parameter{
		{
			Name:        "query",
			Type:        "string",
			Description: "The search query",
			Required:    true,
		},
		{
			Name:        "max_results",
			Type:        "integer",
			Description: "Maximum number of results to return (default: 5, max: 10)",
			Required:    false,
		},
	}
}

func (w *WebSearch) Execute(ctx context.Context, args map[string]any) (Result, error) {
	raw, ok := args["query"]
	if !ok {
		return Result{Success: false, Error: "missing required parameter: query"}, nil
	}
	query, ok := raw.(string)
	if !ok || query == "" {
		return Result{Success: false, Error: "query must be a non-empty string"}, nil
	}

	maxResults := defaultResults
	if v, ok := args["max_results"].(float64); ok { // JSON numbers decode as float64
		maxResults = int(v)
	}
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}

	results, err := w.search(ctx, query, maxResults)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("search failed: %v", err)}, nil
	}

	if len(results) == 0 {
		return Result{Success: true, Output: "No results found for the query."}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for: %s\n\n", query)
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.title)
		fmt.Fprintf(&b, "   %s\n", r.snippet)
		if r.url != "" {
			fmt.Fprintf(&b, "   URL: %s\n", r.url)
		}
		b.WriteString("\n")
	}

	return Result{Success: true, Output: strings.TrimRight(b.String(), "\n")}, nil
}

type searchResult struct {
	title   string
	snippet string
	url     string
}

func (w *WebSearch) search(ctx context.Context, query string, maxResults int) ([]searchResult, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, "POST", w.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "helios/1.0")

	resp, err := w.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("search returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	var results []searchResult
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())
		if snippet == "" {
			snippet = "No description"
		}
		results = append(results, searchResult{
			title:   title,
			snippet: snippet,
			url:     resolveRedirect(href),
		})
		return len(results) < maxResults
	})

	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<encoded> redirect links.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
