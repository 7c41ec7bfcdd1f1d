// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/booksync/internal/naver"
	"github.com/pdiddy/booksync/internal/notion"
	"github.com/pdiddy/booksync/internal/secrets"
	"github.com/pdiddy/booksync/pkg/types"
)

const defaultTimeout = 30 * time.Second

// bindCredentialEnv maps the credential keys to their conventional,
// unprefixed variable names as well as the BOOKSYNC_ ones.
func bindCredentialEnv() {
	viper.BindEnv("notion.token", "NOTION_TOKEN", "BOOKSYNC_NOTION_TOKEN")
	viper.BindEnv("notion.database_id", "NOTION_DATABASE_ID", "BOOKSYNC_NOTION_DATABASE_ID")
	viper.BindEnv("naver.client_id", "NAVER_CLIENT_ID", "BOOKSYNC_NAVER_CLIENT_ID")
	viper.BindEnv("naver.client_secret", "NAVER_CLIENT_SECRET", "BOOKSYNC_NAVER_CLIENT_SECRET")
}

func setDefaults() {
	props := types.DefaultPropertyNames()
	viper.SetDefault("notion.base_url", notion.DefaultBaseURL)
	viper.SetDefault("notion.version", notion.DefaultVersion)
	viper.SetDefault("naver.base_url", naver.DefaultBaseURL)
	viper.SetDefault("properties.title", props.Title)
	viper.SetDefault("properties.author", props.Author)
	viper.SetDefault("properties.publisher", props.Publisher)
	viper.SetDefault("properties.list_price", props.ListPrice)
	viper.SetDefault("properties.page_count", props.PageCount)
	viper.SetDefault("properties.cover", props.Cover)
	viper.SetDefault("http.timeout", defaultTimeout)
	viper.SetDefault("http.user_agent", "booksync/"+version)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// loadConfig assembles the run configuration from viper, falling back to
// the secrets directory for credentials.
func loadConfig() types.SyncConfig {
	cfg := types.SyncConfig{
		HTTP: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		Notion: types.NotionConfig{
			Token:      loadedSecrets.Or(viper.GetString("notion.token"), secrets.NotionToken),
			DatabaseID: viper.GetString("notion.database_id"),
			BaseURL:    viper.GetString("notion.base_url"),
			Version:    viper.GetString("notion.version"),
		},
		Naver: types.NaverConfig{
			ClientID:     loadedSecrets.Or(viper.GetString("naver.client_id"), secrets.NaverClientID),
			ClientSecret: loadedSecrets.Or(viper.GetString("naver.client_secret"), secrets.NaverClientSecret),
			BaseURL:      viper.GetString("naver.base_url"),
		},
		Properties: types.PropertyNames{
			Title:     viper.GetString("properties.title"),
			Author:    viper.GetString("properties.author"),
			Publisher: viper.GetString("properties.publisher"),
			ListPrice: viper.GetString("properties.list_price"),
			PageCount: viper.GetString("properties.page_count"),
			Cover:     viper.GetString("properties.cover"),
		},
	}
	return cfg
}

func httpClient(cfg types.SyncConfig) *http.Client {
	return &http.Client{Timeout: cfg.HTTP.Timeout}
}

// newLogger builds the process logger. Console output is meant for people,
// json for log collectors.
func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch format {
	case "json":
	case "console", "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format %q: use console or json", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
