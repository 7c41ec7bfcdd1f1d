// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notion is a minimal client for the Notion REST API covering the
// two calls booksync makes: a filtered database query and a partial page
// update.
package notion

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/booksync/internal/httputil"
	"github.com/pdiddy/booksync/pkg/types"
)

const (
	// DefaultBaseURL is the public Notion API root.
	DefaultBaseURL = "https://api.notion.com/v1"

	// DefaultVersion is the API version the wire structures follow.
	DefaultVersion = "2022-06-28"

	service = "Notion"
)

// Client talks to one Notion database.
type Client struct {
	HTTP       *http.Client
	BaseURL    string
	Token      string
	Version    string
	DatabaseID string
	UserAgent  string
	Props      types.PropertyNames
}

// New builds a client from the notion and properties sections of cfg.
func New(cfg types.SyncConfig, client *http.Client) *Client {
	c := &Client{
		HTTP:       client,
		BaseURL:    cfg.Notion.BaseURL,
		Token:      cfg.Notion.Token,
		Version:    cfg.Notion.Version,
		DatabaseID: cfg.Notion.DatabaseID,
		UserAgent:  cfg.HTTP.UserAgent,
		Props:      cfg.Properties,
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	return c
}

// QueryResult is one page of query results.
type QueryResult struct {
	Entries []types.Entry

	// HasMore reports that the store holds further matches beyond this page.
	HasMore bool
}

type queryRequest struct {
	Filter propertyFilter `json:"filter"`
}

type propertyFilter struct {
	Property string               `json:"property"`
	RichText *textFilterCondition `json:"rich_text,omitempty"`
}

type textFilterCondition struct {
	IsEmpty bool `json:"is_empty,omitempty"`
}

type queryResponse struct {
	Object     string  `json:"object"`
	Results    []page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// QueryIncomplete returns the entries whose author property is empty. Only
// the first page the API returns is read.
func (c *Client) QueryIncomplete(ctx context.Context) (QueryResult, error) {
	if c.DatabaseID == "" {
		return QueryResult{}, fmt.Errorf("notion database id is not configured")
	}

	body := queryRequest{
		Filter: propertyFilter{
			Property: c.Props.Author,
			RichText: &textFilterCondition{IsEmpty: true},
		},
	}

	reqURL := c.endpoint("databases", c.DatabaseID, "query")
	req, err := httputil.NewJSONRequest(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return QueryResult{}, err
	}
	c.authorize(req)

	var qr queryResponse
	if err := httputil.Do(c.HTTP, req, service, &qr); err != nil {
		return QueryResult{}, fmt.Errorf("querying database %s: %w", c.DatabaseID, err)
	}

	result := QueryResult{HasMore: qr.HasMore}
	for _, p := range qr.Results {
		result.Entries = append(result.Entries, p.toEntry(c.Props))
	}
	return result, nil
}

type updateRequest struct {
	Properties Properties `json:"properties"`
}

// UpdateProperties patches the given properties of a page. Properties not
// named in props are left untouched by the API.
func (c *Client) UpdateProperties(ctx context.Context, pageID string, props Properties) error {
	if pageID == "" {
		return fmt.Errorf("empty page id")
	}

	req, err := httputil.NewJSONRequest(ctx, http.MethodPatch, c.endpoint("pages", pageID), updateRequest{Properties: props})
	if err != nil {
		return err
	}
	c.authorize(req)

	if err := httputil.Do(c.HTTP, req, service, nil); err != nil {
		return fmt.Errorf("updating page %s: %w", pageID, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Notion-Version", c.Version)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
}

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.Join(escaped, "/")
}
