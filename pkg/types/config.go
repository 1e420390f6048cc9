package types

// BuildConfig holds settings for generating release artifacts.
type BuildConfig struct {
	// OutputDir is the root of the generated site (contains docs/, releases/).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// VocabURI is the namespace IRI of the vocabulary (e.g. "https://schema.org/").
	// Its scheme selects the primary protocol for release files.
	VocabURI string `json:"vocab_uri" yaml:"vocab_uri"`

	// SiteURL is the public base URL used in the sitemap.
	SiteURL string `json:"site_url" yaml:"site_url"`

	// TermFiles lists glob patterns for term definition files
	// (e.g. "data/**/*.yaml"). Ignored when Catalog is set.
	TermFiles []string `json:"term_files" yaml:"term_files"`

	// ExampleFiles lists glob patterns for example definition files.
	ExampleFiles []string `json:"example_files" yaml:"example_files"`

	// Catalog is an optional path to a SQLite term catalog. When set, terms
	// are read from the catalog instead of TermFiles.
	Catalog string `json:"catalog,omitempty" yaml:"catalog,omitempty"`

	// Release selects the version and date stamped on release files.
	Release ReleaseConfig `json:"release" yaml:"release"`
}

// ReleaseConfig holds settings for the release version provider.
type ReleaseConfig struct {
	// VersionsFile is the path to the versions file (default "versions.json").
	VersionsFile string `json:"versions_file" yaml:"versions_file"`

	// Version overrides the version named in the versions file.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Date overrides the release date (YYYY-MM-DD).
	Date string `json:"date,omitempty" yaml:"date,omitempty"`
}

// CatalogConfig holds settings for the SQLite term catalog.
type CatalogConfig struct {
	// Path is the SQLite database file (default "catalog/terms.db").
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
