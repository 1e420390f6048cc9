// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the schema-builder CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the schema-builder CLI.
var rootCmd = &cobra.Command{
	Use:   "schema-builder",
	Short: "Generate the release files of a vocabulary",
	Long: `schema-builder reads vocabulary term definitions and writes the files
published with each release: RDF dumps in several formats, CSV tables, the
JSON-LD context and class tree, term counts, the sitemap, an OWL rendering,
SHACL and ShEx shapes, and the examples file.

Term definitions are YAML files. They can be read directly or imported into
a SQLite catalog first with "schema-builder terms import".`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./schema-builder.yaml or ~/.config/schema-builder/schema-builder.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("vocab-uri", "https://schema.org/", "namespace IRI of the vocabulary")
	rootCmd.PersistentFlags().StringSlice("term-files", []string{"data/**/*.yaml"}, "glob patterns for term definition files")
	rootCmd.PersistentFlags().String("catalog", "", "SQLite term catalog to read terms from instead of term files")

	viper.BindPFlag("vocab_uri", rootCmd.PersistentFlags().Lookup("vocab-uri"))
	viper.BindPFlag("term_files", rootCmd.PersistentFlags().Lookup("term-files"))
	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("schema-builder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "schema-builder"))
		}
	}

	viper.SetEnvPrefix("SCHEMA_BUILDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
