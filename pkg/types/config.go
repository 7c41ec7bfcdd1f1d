package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// HTTPConfig holds shared HTTP settings used by both API clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "booksync/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// NotionConfig holds the document store settings.
type NotionConfig struct {
	// Token is the integration secret sent as a bearer token.
	Token string `json:"-" yaml:"-" mapstructure:"token"`

	// DatabaseID identifies the database holding the book entries.
	DatabaseID string `json:"database_id" yaml:"database_id" mapstructure:"database_id"`

	// BaseURL is the API root, e.g. "https://api.notion.com/v1".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Version is sent as the Notion-Version header.
	Version string `json:"version" yaml:"version" mapstructure:"version"`
}

// NaverConfig holds the book search API settings.
type NaverConfig struct {
	ClientID     string `json:"-" yaml:"-" mapstructure:"client_id"`
	ClientSecret string `json:"-" yaml:"-" mapstructure:"client_secret"`

	// BaseURL is the full book search endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
}

// PropertyNames maps entry fields to the property names used in the Notion
// database. Databases differ in naming, so every name is configurable.
type PropertyNames struct {
	Title     string `json:"title" yaml:"title" mapstructure:"title"`
	Author    string `json:"author" yaml:"author" mapstructure:"author"`
	Publisher string `json:"publisher" yaml:"publisher" mapstructure:"publisher"`
	ListPrice string `json:"list_price" yaml:"list_price" mapstructure:"list_price"`
	PageCount string `json:"page_count" yaml:"page_count" mapstructure:"page_count"`
	Cover     string `json:"cover" yaml:"cover" mapstructure:"cover"`
}

// DefaultPropertyNames returns the property names of the reference book
// database layout.
func DefaultPropertyNames() PropertyNames {
	return PropertyNames{
		Title:     "name",
		Author:    "author",
		Publisher: "publisher",
		ListPrice: "list price",
		PageCount: "page",
		Cover:     "cover",
	}
}

// UpdatedKeys returns the property names an update is allowed to touch.
func (p PropertyNames) UpdatedKeys() []string {
	return []string{p.Author, p.Publisher, p.ListPrice, p.PageCount, p.Cover}
}

// SyncConfig groups everything a sync run needs. It is built once at process
// start and passed to the clients and the syncer.
type SyncConfig struct {
	HTTP       HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Notion     NotionConfig  `json:"notion" yaml:"notion" mapstructure:"notion"`
	Naver      NaverConfig   `json:"naver" yaml:"naver" mapstructure:"naver"`
	Properties PropertyNames `json:"properties" yaml:"properties" mapstructure:"properties"`

	// DryRun looks up matches but skips the update.
	DryRun bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`

	// Limit caps the number of selected entries processed. Zero means all.
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`
}

// Validate reports every missing credential or identifier. Only presence is
// checked.
func (c SyncConfig) Validate() error {
	return validation.Errors{
		"notion.token":        validation.Validate(c.Notion.Token, validation.Required),
		"notion.database_id":  validation.Validate(c.Notion.DatabaseID, validation.Required),
		"naver.client_id":     validation.Validate(c.Naver.ClientID, validation.Required),
		"naver.client_secret": validation.Validate(c.Naver.ClientSecret, validation.Required),
	}.Filter()
}

// ValidateNotion checks only the document store settings.
func (c SyncConfig) ValidateNotion() error {
	return validation.Errors{
		"notion.token":       validation.Validate(c.Notion.Token, validation.Required),
		"notion.database_id": validation.Validate(c.Notion.DatabaseID, validation.Required),
	}.Filter()
}

// ValidateNaver checks only the search API settings.
func (c SyncConfig) ValidateNaver() error {
	return validation.Errors{
		"naver.client_id":     validation.Validate(c.Naver.ClientID, validation.Required),
		"naver.client_secret": validation.Validate(c.Naver.ClientSecret, validation.Required),
	}.Filter()
}
