// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by booksync packages:
// the Notion-side Entry, the Naver-side SearchResult, and configuration.
package types

// Entry is one book page in the Notion database. The store owns the page;
// booksync only reads it and patches a fixed set of properties.
type Entry struct {
	// ID is the Notion page id used for updates.
	ID string `json:"id" yaml:"id"`

	// Title is the plain text of the first segment of the title property.
	Title string `json:"title" yaml:"title"`

	Author    string `json:"author" yaml:"author"`
	Publisher string `json:"publisher" yaml:"publisher"`
	ListPrice int    `json:"list_price" yaml:"list_price"`
	PageCount int    `json:"page_count" yaml:"page_count"`

	// CoverURL is the URL of the first external file in the cover property.
	CoverURL string `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
}

// SearchResult is one item of a Naver book search response. Numeric fields
// stay string-encoded the way the API returns them.
type SearchResult struct {
	Title       string `json:"title" yaml:"title"`
	Link        string `json:"link,omitempty" yaml:"link,omitempty"`
	ImageURL    string `json:"image" yaml:"image"`
	Author      string `json:"author" yaml:"author"`
	Price       string `json:"price,omitempty" yaml:"price,omitempty"`
	Discount    string `json:"discount,omitempty" yaml:"discount,omitempty"`
	Publisher   string `json:"publisher" yaml:"publisher"`
	PubDate     string `json:"pubdate,omitempty" yaml:"pubdate,omitempty"`
	ISBN        string `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	PageCount   string `json:"page,omitempty" yaml:"page,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
