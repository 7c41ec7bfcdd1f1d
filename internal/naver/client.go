// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package naver queries the Naver book search API for a single best match
// per title.
package naver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/booksync/internal/httputil"
	"github.com/pdiddy/booksync/pkg/types"
)

// DefaultBaseURL is the book search endpoint.
const DefaultBaseURL = "https://openapi.naver.com/v1/search/book.json"

// resultLimit is the display parameter; only the first item is ever used.
const resultLimit = 1

const service = "Naver"

// Client searches the book API with one application's credentials.
type Client struct {
	HTTP         *http.Client
	BaseURL      string
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// New builds a client from the naver section of cfg.
func New(cfg types.SyncConfig, client *http.Client) *Client {
	c := &Client{
		HTTP:         client,
		BaseURL:      cfg.Naver.BaseURL,
		ClientID:     cfg.Naver.ClientID,
		ClientSecret: cfg.Naver.ClientSecret,
		UserAgent:    cfg.HTTP.UserAgent,
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	return c
}

type searchResponse struct {
	LastBuildDate string               `json:"lastBuildDate"`
	Total         int                  `json:"total"`
	Start         int                  `json:"start"`
	Display       int                  `json:"display"`
	Items         []types.SearchResult `json:"items"`
}

// SearchByTitle returns the first search result for title, or nil when the
// API has no match. A nil result with a nil error means "not found".
func (c *Client) SearchByTitle(ctx context.Context, title string) (*types.SearchResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("empty search title")
	}

	params := url.Values{
		"query":   {title},
		"display": {fmt.Sprintf("%d", resultLimit)},
	}

	req, err := httputil.NewJSONRequest(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Naver-Client-Id", c.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.ClientSecret)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	var sr searchResponse
	if err := httputil.Do(c.HTTP, req, service, &sr); err != nil {
		return nil, fmt.Errorf("searching %q: %w", title, err)
	}

	if len(sr.Items) == 0 {
		return nil, nil
	}
	first := sr.Items[0]
	return &first, nil
}
