package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const unsplashSearchURL = "https://api.unsplash.com/search/photos"

// ImageSearcher finds photo URLs for a freshly generated trip.
type ImageSearcher interface {
	// Search returns up to limit image URLs matching the query.
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// UnsplashSearcher implements ImageSearcher against the Unsplash search API.
type UnsplashSearcher struct {
	accessKey string
	client    *http.Client
}

// NewUnsplashSearcher constructs an UnsplashSearcher. httpClient may be nil,
// in which case http.DefaultClient is used.
func NewUnsplashSearcher(accessKey string, httpClient *http.Client) *UnsplashSearcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &UnsplashSearcher{accessKey: accessKey, client: httpClient}
}

// Search queries Unsplash and returns the regular-size URLs of the results.
func (u *UnsplashSearcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit < 1 {
		limit = 1
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(limit))
	q.Set("client_id", u.accessKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, unsplashSearchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("generator.UnsplashSearcher.Search: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generator.UnsplashSearcher.Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator.UnsplashSearcher.Search: status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("generator.UnsplashSearcher.Search: decode: %w", err)
	}

	urls := make([]string, 0, len(body.Results))
	for _, r := range body.Results {
		if r.URLs.Regular != "" {
			urls = append(urls, r.URLs.Regular)
		}
	}
	return urls, nil
}
