// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/booksync/internal/httputil"
	"github.com/pdiddy/booksync/pkg/types"
)

func testClient(ts *httptest.Server) *Client {
	cfg := types.SyncConfig{
		Notion: types.NotionConfig{
			Token:      "secret_test",
			DatabaseID: "db-123",
			BaseURL:    ts.URL,
		},
		HTTP:       types.HTTPConfig{UserAgent: "test/0.1"},
		Properties: types.DefaultPropertyNames(),
	}
	return New(cfg, ts.Client())
}

const queryJSON = `{
  "object": "list",
  "results": [
    {
      "object": "page",
      "id": "p1",
      "properties": {
        "name": {"type": "title", "title": [{"type": "text", "text": {"content": "Dune"}, "plain_text": "Dune"}, {"plain_text": " Messiah"}]},
        "author": {"type": "rich_text", "rich_text": []},
        "publisher": {"type": "rich_text", "rich_text": []},
        "list price": {"type": "number", "number": null},
        "page": {"type": "number", "number": null},
        "cover": {"type": "files", "files": []}
      }
    },
    {
      "object": "page",
      "id": "p2",
      "properties": {
        "name": {"type": "title", "title": [{"plain_text": "Neuromancer"}]},
        "author": {"type": "rich_text", "rich_text": [{"plain_text": "William "}, {"plain_text": "Gibson"}]},
        "publisher": {"type": "rich_text", "rich_text": [{"plain_text": "Ace"}]},
        "list price": {"type": "number", "number": 9000},
        "page": {"type": "number", "number": 271},
        "cover": {"type": "files", "files": [{"name": "cover.jpg", "type": "external", "external": {"url": "http://x/n.jpg"}}]}
      }
    }
  ],
  "has_more": true,
  "next_cursor": "abc"
}`

func TestQueryIncompleteRequest(t *testing.T) {
	var gotReq *http.Request
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(data, &gotBody))
		fmt.Fprint(w, `{"object":"list","results":[],"has_more":false}`)
	}))
	defer ts.Close()

	_, err := testClient(ts).QueryIncomplete(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotReq.Method)
	assert.Equal(t, "/databases/db-123/query", gotReq.URL.Path)
	assert.Equal(t, "Bearer secret_test", gotReq.Header.Get("Authorization"))
	assert.Equal(t, DefaultVersion, gotReq.Header.Get("Notion-Version"))
	assert.Equal(t, "test/0.1", gotReq.Header.Get("User-Agent"))
	assert.Equal(t, map[string]any{
		"filter": map[string]any{
			"property":  "author",
			"rich_text": map[string]any{"is_empty": true},
		},
	}, gotBody)
}

func TestQueryIncompleteDecodesEntries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, queryJSON)
	}))
	defer ts.Close()

	res, err := testClient(ts).QueryIncomplete(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.True(t, res.HasMore)

	assert.Equal(t, types.Entry{ID: "p1", Title: "Dune"}, res.Entries[0])
	assert.Equal(t, types.Entry{
		ID:        "p2",
		Title:     "Neuromancer",
		Author:    "William Gibson",
		Publisher: "Ace",
		ListPrice: 9000,
		PageCount: 271,
		CoverURL:  "http://x/n.jpg",
	}, res.Entries[1])
}

func TestQueryIncompleteTitleFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results":[
			{"id":"p1","properties":{"Title":{"type":"title","title":[{"plain_text":"Solaris"}]}}},
			{"id":"p2","properties":{"name":{"type":"title","title":[]}}}
		]}`)
	}))
	defer ts.Close()

	res, err := testClient(ts).QueryIncomplete(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "Solaris", res.Entries[0].Title)
	assert.Equal(t, "", res.Entries[1].Title)
}

func TestQueryIncompleteErrors(t *testing.T) {
	t.Run("missing database id", func(t *testing.T) {
		c := &Client{HTTP: http.DefaultClient, BaseURL: DefaultBaseURL}
		_, err := c.QueryIncomplete(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database id")
	})

	t.Run("unauthorized", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`)
		}))
		defer ts.Close()

		_, err := testClient(ts).QueryIncomplete(context.Background())
		require.Error(t, err)
		assert.True(t, httputil.IsStatus(err, http.StatusUnauthorized))
		assert.Contains(t, err.Error(), "API token is invalid.")
	})
}

func TestUpdateProperties(t *testing.T) {
	var gotReq *http.Request
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(data, &gotBody))
		fmt.Fprint(w, `{"object":"page","id":"p1"}`)
	}))
	defer ts.Close()

	props := Properties{
		"author":     RichTextValue("Frank Herbert"),
		"list price": NumberValue(12000),
		"page":       NumberValue(0),
		"cover":      ExternalFileValue("cover.jpg", "http://x/y.jpg"),
	}
	require.NoError(t, testClient(ts).UpdateProperties(context.Background(), "p1", props))

	assert.Equal(t, http.MethodPatch, gotReq.Method)
	assert.Equal(t, "/pages/p1", gotReq.URL.Path)
	assert.Equal(t, "Bearer secret_test", gotReq.Header.Get("Authorization"))
	assert.Equal(t, map[string]any{
		"properties": map[string]any{
			"author": map[string]any{
				"rich_text": []any{map[string]any{"text": map[string]any{"content": "Frank Herbert"}}},
			},
			"list price": map[string]any{"number": float64(12000)},
			"page":       map[string]any{"number": float64(0)},
			"cover": map[string]any{
				"files": []any{map[string]any{
					"name":     "cover.jpg",
					"type":     "external",
					"external": map[string]any{"url": "http://x/y.jpg"},
				}},
			},
		},
	}, gotBody)
}

func TestUpdatePropertiesRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"object":"error","status":400,"code":"validation_error","message":"page is not a property that exists."}`)
	}))
	defer ts.Close()

	err := testClient(ts).UpdateProperties(context.Background(), "p1", Properties{"page": NumberValue(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "updating page p1")
	assert.Contains(t, err.Error(), "validation_error")
}

func TestUpdatePropertiesEmptyID(t *testing.T) {
	c := &Client{HTTP: http.DefaultClient, BaseURL: DefaultBaseURL}
	err := c.UpdateProperties(context.Background(), "", Properties{})
	require.Error(t, err)
}

func TestExternalFileValueEmptyURL(t *testing.T) {
	data, err := json.Marshal(ExternalFileValue("cover.jpg", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"files":[]}`, string(data))
}
