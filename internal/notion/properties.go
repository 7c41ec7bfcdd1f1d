// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"strings"

	"github.com/pdiddy/booksync/pkg/types"
)

// Property is one typed Notion property value. Only the members for the
// property types booksync reads or writes are modelled; the populated member
// selects the encoding.
type Property struct {
	Type     string     `json:"type,omitempty"`
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Number   *float64   `json:"number,omitempty"`
	Files    *[]File    `json:"files,omitempty"`
}

// RichText is a single rich text segment.
type RichText struct {
	Type      string `json:"type,omitempty"`
	Text      *Text  `json:"text,omitempty"`
	PlainText string `json:"plain_text,omitempty"`
}

// Text holds the content of a text segment.
type Text struct {
	Content string `json:"content"`
}

// File is an entry of a files property. Uploaded files carry File,
// links carry External.
type File struct {
	Name     string   `json:"name"`
	Type     string   `json:"type,omitempty"`
	External *FileURL `json:"external,omitempty"`
	File     *FileURL `json:"file,omitempty"`
}

// FileURL is the location of a file.
type FileURL struct {
	URL string `json:"url"`
}

// Properties maps property names to values, as in a page object or an
// update request.
type Properties map[string]Property

// RichTextValue encodes s as a rich text property with one text segment.
func RichTextValue(s string) Property {
	return Property{RichText: []RichText{{Text: &Text{Content: s}}}}
}

// NumberValue encodes n as a number property.
func NumberValue(n int) Property {
	f := float64(n)
	return Property{Number: &f}
}

// ExternalFileValue encodes a files property holding one external link.
// An empty url clears the property instead, since the API rejects empty
// links.
func ExternalFileValue(name, url string) Property {
	files := []File{}
	if url != "" {
		files = append(files, File{Name: name, Type: "external", External: &FileURL{URL: url}})
	}
	return Property{Files: &files}
}

// page is a page object as returned by a database query.
type page struct {
	Object     string     `json:"object"`
	ID         string     `json:"id"`
	Properties Properties `json:"properties"`
}

// toEntry decodes the configured properties of p. Missing or mistyped
// properties leave the zero value.
func (p page) toEntry(names types.PropertyNames) types.Entry {
	e := types.Entry{
		ID:        p.ID,
		Title:     firstSegment(p.titleProperty(names.Title).Title),
		Author:    plainText(p.Properties[names.Author].RichText),
		Publisher: plainText(p.Properties[names.Publisher].RichText),
		ListPrice: number(p.Properties[names.ListPrice]),
		PageCount: number(p.Properties[names.PageCount]),
	}
	if cover := p.Properties[names.Cover]; cover.Files != nil && len(*cover.Files) > 0 {
		f := (*cover.Files)[0]
		switch {
		case f.External != nil:
			e.CoverURL = f.External.URL
		case f.File != nil:
			e.CoverURL = f.File.URL
		}
	}
	return e
}

// titleProperty returns the named property, falling back to the database's
// title-typed property when the name does not match.
func (p page) titleProperty(name string) Property {
	if prop, ok := p.Properties[name]; ok {
		return prop
	}
	for _, prop := range p.Properties {
		if prop.Type == "title" {
			return prop
		}
	}
	return Property{}
}

// firstSegment returns the plain text of the first segment, or "" when
// there is none.
func firstSegment(segments []RichText) string {
	if len(segments) == 0 {
		return ""
	}
	return segmentText(segments[0])
}

func plainText(segments []RichText) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(segmentText(s))
	}
	return b.String()
}

func segmentText(s RichText) string {
	if s.PlainText == "" && s.Text != nil {
		return s.Text.Content
	}
	return s.PlainText
}

func number(p Property) int {
	if p.Number == nil {
		return 0
	}
	return int(*p.Number)
}
