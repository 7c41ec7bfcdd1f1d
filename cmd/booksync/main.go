// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the booksync CLI, which fills in
// missing book metadata in a Notion database from the Naver book search.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/booksync/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets secrets.Secrets

// logger is the process logger, configured in PersistentPreRunE.
var logger = zerolog.Nop()

// rootCmd is the base command for the booksync CLI.
var rootCmd = &cobra.Command{
	Use:   "booksync",
	Short: "Fill in missing book metadata in a Notion database",
	Long: `booksync finds book entries in a Notion database whose author is empty,
looks each title up in the Naver book search API, and writes the first
match's author, publisher, list price, page count and cover back to the entry.

Credentials come from flags, the environment (NOTION_TOKEN, NOTION_DATABASE_ID,
NAVER_CLIENT_ID, NAVER_CLIENT_SECRET), a .env file, a config file, or files in
the .secrets/ directory, in that order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(os.Stderr, viper.GetString("log.level"), viper.GetString("log.format"))
		if err != nil {
			return err
		}
		logger = l
		log.Logger = l

		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug().Str("file", used).Msg("using config file")
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug().Strs("keys", s.Keys()).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./booksync.yaml or ~/.config/booksync/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of credential files (notion-token, naver-client-id, naver-client-secret)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")
	rootCmd.PersistentFlags().String("database-id", "", "Notion database id (overrides NOTION_DATABASE_ID)")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("notion.database_id", rootCmd.PersistentFlags().Lookup("database-id"))
}

func initConfig() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("booksync")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "booksync"))
		}
	}

	viper.SetEnvPrefix("BOOKSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindCredentialEnv()
	setDefaults()

	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
