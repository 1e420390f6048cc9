// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/schema-builder/internal/catalog"
	"github.com/pdiddy/schema-builder/internal/termsource"
	"github.com/pdiddy/schema-builder/internal/textutil"
	"github.com/pdiddy/schema-builder/pkg/types"
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Manage the term catalog (import, find, export, counts)",
	Long: `Terms manages a local SQLite catalog of vocabulary term definitions.
Use subcommands to import term files, search the catalog, export it, or
count the terms of the vocabulary.`,
}

// --- import subcommand ---

var termsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import term files into the catalog",
	Long: `Import reads the term files matched by --term-files into the catalog.
Files unchanged since the last import are skipped; files no longer matched
have their terms removed.`,
	RunE: runTermsImport,
}

func runTermsImport(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), viper.GetStringSlice("term_files"), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed to import", summary.Failed)
	}
	return nil
}

// --- find subcommand ---

var termsFindCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Search the catalog",
	Long: `Find searches term ids, labels, and comments, optionally filtered by
term type and layer. Matches on id or label are listed first.`,
	RunE: runTermsFind,
}

func runTermsFind(cmd *cobra.Command, args []string) error {
	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --type, or --layer")
	}

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatFindOutput(results, jsonOutput)
}

func formatFindOutput(results []catalog.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-30s  %-16s  %-10s  %s\n",
		"Rank", "ID", "Type", "Layer", "Comment")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		id := r.ID
		if len(id) > 30 {
			id = id[:27] + "..."
		}
		comment := textutil.StripHTMLTags(r.Comment)
		if len(comment) > 44 {
			comment = comment[:41] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-30s  %-16s  %-10s  %s\n",
			i+1, id, r.Type, r.Layer, comment)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var termsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or a filtered subset) as a term file that
can be imported again. Supports the same filter flags as find.`,
	RunE: runTermsExport,
}

func runTermsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if output == "" {
			output = "catalog/export.yaml"
		}
		if err := store.ExportYAML(context.Background(), opts, output); err != nil {
			return err
		}
	case "json":
		if output == "" {
			output = "catalog/export.json"
		}
		if err := store.ExportJSON(context.Background(), opts, output); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Println("Exported to", output)
	return nil
}

// --- counts subcommand ---

var termsCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Count live vocabulary terms by kind",
	Long: `Counts loads the vocabulary (from the catalog when --catalog is set,
otherwise from --term-files) and prints the number of live terms of each
kind as JSON.`,
	RunE: runTermsCounts,
}

func runTermsCounts(cmd *cobra.Command, args []string) error {
	var (
		terms []types.Term
		err   error
	)
	if path := viper.GetString("catalog"); path != "" {
		store, serr := catalog.NewStore(types.CatalogConfig{Path: path})
		if serr != nil {
			return serr
		}
		defer store.Close()
		terms, err = store.Terms(context.Background())
	} else {
		terms, err = termsource.LoadFiles(viper.GetStringSlice("term_files"))
	}
	if err != nil {
		return err
	}

	src, err := termsource.New(terms, viper.GetString("vocab_uri"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(src.Counts())
}

// --- shared helpers ---

func catalogConfig() types.CatalogConfig {
	path := viper.GetString("catalog")
	if path == "" {
		path = catalog.DefaultPath
	}
	return types.CatalogConfig{
		Path:       path,
		MaxResults: viper.GetInt("max_results"),
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	termType, _ := cmd.Flags().GetString("type")
	layer, _ := cmd.Flags().GetString("layer")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      queryText,
		Type:       types.TermType(termType),
		Layer:      layer,
		MaxResults: limit,
	}
}

func init() {
	termsCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")
	viper.BindPFlag("max_results", termsCmd.PersistentFlags().Lookup("max-results"))

	// Find flags.
	termsFindCmd.Flags().String("query", "", "text to search for")
	termsFindCmd.Flags().String("type", "", "filter by term type: Class, Property, DataType, Enumeration, EnumerationValue, Reference")
	termsFindCmd.Flags().String("layer", "", "filter by layer (core, attic, pending, ...)")
	termsFindCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	termsFindCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	termsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	termsExportCmd.Flags().String("output", "", "export file (default catalog/export.<format>)")
	termsExportCmd.Flags().String("query", "", "text filter for partial export")
	termsExportCmd.Flags().String("type", "", "filter by term type for partial export")
	termsExportCmd.Flags().String("layer", "", "filter by layer for partial export")

	// Wire subcommands.
	termsCmd.AddCommand(termsImportCmd)
	termsCmd.AddCommand(termsFindCmd)
	termsCmd.AddCommand(termsExportCmd)
	termsCmd.AddCommand(termsCountsCmd)

	rootCmd.AddCommand(termsCmd)
}
