// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package booksync

import (
	"context"
	"strconv"
	"strings"

	"github.com/pdiddy/booksync/internal/notion"
	"github.com/pdiddy/booksync/pkg/types"
)

// coverFileName names the external file written to the cover property.
const coverFileName = "cover.jpg"

// Updater writes a search result into an entry.
type Updater struct {
	Store EntryStore
	Props types.PropertyNames
}

// Properties maps r to the five properties an update touches:
//
//	Author    -> author      rich text
//	Publisher -> publisher   rich text
//	Price     -> list price  number (ParseCount)
//	PageCount -> page        number (ParseCount)
//	ImageURL  -> cover       one external file named cover.jpg
func (u *Updater) Properties(r types.SearchResult) notion.Properties {
	return notion.Properties{
		u.Props.Author:    notion.RichTextValue(r.Author),
		u.Props.Publisher: notion.RichTextValue(r.Publisher),
		u.Props.ListPrice: notion.NumberValue(ParseCount(r.Price)),
		u.Props.PageCount: notion.NumberValue(ParseCount(r.PageCount)),
		u.Props.Cover:     notion.ExternalFileValue(coverFileName, r.ImageURL),
	}
}

// Apply partially updates entry entryID with r. Other properties of the
// entry are left as they are.
func (u *Updater) Apply(ctx context.Context, entryID string, r types.SearchResult) error {
	return u.Store.UpdateProperties(ctx, entryID, u.Properties(r))
}

// ParseCount parses a string-encoded integer such as a price or page count.
// Non-numeric or absent input yields zero.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
