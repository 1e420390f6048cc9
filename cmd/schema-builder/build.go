// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/schema-builder/internal/build"
	"github.com/pdiddy/schema-builder/internal/release"
	"github.com/pdiddy/schema-builder/internal/watch"
	"github.com/pdiddy/schema-builder/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build [targets...]",
	Short: "Generate release files",
	Long: `Build generates the named targets (see "schema-builder targets") under
the output directory. ALL builds every target and is the default when no
target is named. Unknown target names are reported and skipped.

With --watch, build keeps running and rebuilds whenever a term, example, or
versions file changes.`,
	RunE: runBuild,
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List build targets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range build.Targets() {
			fmt.Println(name)
		}
	},
}

func init() {
	buildCmd.Flags().String("output-dir", ".", "root directory for generated files (contains docs/ and releases/)")
	buildCmd.Flags().String("site-url", "", "base URL for sitemap entries (default: the vocabulary URI)")
	buildCmd.Flags().StringSlice("example-files", []string{"data/examples/**/*.yaml"}, "glob patterns for example files")
	buildCmd.Flags().String("versions-file", release.DefaultVersionsFile, "versions file with schemaversion and releaseLog")
	buildCmd.Flags().String("release-version", "", "release version (overrides the versions file)")
	buildCmd.Flags().String("release-date", "", "release date YYYY-MM-DD (overrides the versions file)")
	buildCmd.Flags().Bool("watch", false, "rebuild when source files change")
	buildCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a watch rebuild")

	viper.BindPFlag("output_dir", buildCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("site_url", buildCmd.Flags().Lookup("site-url"))
	viper.BindPFlag("example_files", buildCmd.Flags().Lookup("example-files"))
	viper.BindPFlag("release.versions_file", buildCmd.Flags().Lookup("versions-file"))
	viper.BindPFlag("release.version", buildCmd.Flags().Lookup("release-version"))
	viper.BindPFlag("release.date", buildCmd.Flags().Lookup("release-date"))

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(targetsCmd)
}

func buildConfig() types.BuildConfig {
	return types.BuildConfig{
		OutputDir:    viper.GetString("output_dir"),
		VocabURI:     viper.GetString("vocab_uri"),
		SiteURL:      viper.GetString("site_url"),
		TermFiles:    viper.GetStringSlice("term_files"),
		ExampleFiles: viper.GetStringSlice("example_files"),
		Catalog:      viper.GetString("catalog"),
		Release: types.ReleaseConfig{
			VersionsFile: viper.GetString("release.versions_file"),
			Version:      viper.GetString("release.version"),
			Date:         viper.GetString("release.date"),
		},
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = []string{"ALL"}
	}
	cfg := buildConfig()
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func(ctx context.Context) error {
		b, err := build.Load(ctx, cfg, logger)
		if err != nil {
			return err
		}
		return b.Build(ctx, names)
	}

	if err := run(ctx); err != nil {
		return err
	}

	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		return nil
	}

	debounce, _ := cmd.Flags().GetDuration("debounce")
	patterns := append([]string{}, cfg.TermFiles...)
	if cfg.Catalog != "" {
		patterns = []string{cfg.Catalog}
	}
	patterns = append(patterns, cfg.ExampleFiles...)
	if cfg.Release.VersionsFile != "" {
		patterns = append(patterns, cfg.Release.VersionsFile)
	}

	w, err := watch.New(patterns, debounce, run, logger)
	if err != nil {
		return err
	}
	logger.Info("watching for changes", "patterns", patterns)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
