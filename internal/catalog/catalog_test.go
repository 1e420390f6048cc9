package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/schema-builder/internal/termsource"
	"github.com/pdiddy/schema-builder/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(types.CatalogConfig{Path: filepath.Join(tmpDir, "catalog", "terms.db")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, tmpDir
}

func writeTerms(t *testing.T, tmpDir, name string, terms []types.Term) string {
	t.Helper()
	data, err := yaml.Marshal(types.TermFile{Terms: terms})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmpDir, "data", name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func coreTerms() []types.Term {
	return []types.Term{
		{ID: "Thing", Type: types.TermClass, Label: "Thing", Comment: "The most generic type of item."},
		{ID: "Person", Type: types.TermClass, Label: "Person", Comment: "A person (alive, dead, undead, or fictional).", Supers: []string{"Thing"}},
		{ID: "name", Type: types.TermProperty, Label: "name", Comment: "The name of the item.", DomainIncludes: []string{"Thing"}, RangeIncludes: []string{"Text"}},
		{ID: "Text", Type: types.TermDataType, Label: "Text", Comment: "Data type: Text."},
	}
}

func atticTerms() []types.Term {
	return []types.Term{
		{ID: "members", Type: types.TermProperty, Label: "members", Comment: "A member of this organization.", Layer: types.LayerAttic},
		{ID: "name", Supersedes: []string{"title"}},
	}
}

func ingest(t *testing.T, store *Store, tmpDir string) IngestSummary {
	t.Helper()
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), []string{filepath.Join(tmpDir, "data", "*.yaml")}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	return summary
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	for _, table := range []string{"terms", "indexing_status"} {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "catalog.db")

	store, err := NewStore(types.CatalogConfig{Path: dbPath})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}
}

// --- ingest tests ---

func TestIngest(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeTerms(t, tmpDir, "core.yaml", coreTerms())
	writeTerms(t, tmpDir, "attic.yaml", atticTerms())

	summary := ingest(t, store, tmpDir)
	if summary.Indexed != 2 {
		t.Errorf("Indexed = %d, want 2", summary.Indexed)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0", summary.Failed)
	}

	terms, err := store.Terms(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// attic.yaml sorts first, so its two definitions lead.
	if len(terms) != 6 {
		t.Fatalf("got %d terms, want 6", len(terms))
	}
	if terms[0].ID != "members" || terms[2].ID != "Thing" {
		t.Errorf("unexpected order: %s, %s", terms[0].ID, terms[2].ID)
	}
}

func TestTermsFeedTermSource(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeTerms(t, tmpDir, "core.yaml", coreTerms())
	writeTerms(t, tmpDir, "attic.yaml", atticTerms())
	ingest(t, store, tmpDir)

	terms, err := store.Terms(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	src, err := termsource.New(terms, "https://schema.org/")
	if err != nil {
		t.Fatal(err)
	}

	name, err := src.Term("name")
	if err != nil {
		t.Fatal(err)
	}
	if name.Type != types.TermProperty || len(name.Supersedes) != 1 {
		t.Errorf("merged name = %+v", name)
	}
	thing, _ := src.Term("Thing")
	if len(thing.Subs) != 1 || thing.Subs[0] != "Person" {
		t.Errorf("Thing.Subs = %v, want [Person]", thing.Subs)
	}
}

func termIDs(terms []types.Term) string {
	ids := make([]string, len(terms))
	for i, t := range terms {
		ids[i] = t.ID
	}
	return strings.Join(ids, ",")
}

func TestTermsKeepsRepeatedDefinitions(t *testing.T) {
	store, tmpDir := testSetup(t)
	terms := append(coreTerms(), types.Term{ID: "name", Supersedes: []string{"title"}})
	writeTerms(t, tmpDir, "core.yaml", terms)
	ingest(t, store, tmpDir)

	got, err := store.Terms(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := "Thing,Person,name,Text,name"; termIDs(got) != want {
		t.Fatalf("terms = %s, want %s", termIDs(got), want)
	}

	src, err := termsource.New(got, "https://schema.org/")
	if err != nil {
		t.Fatal(err)
	}
	name, _ := src.Term("name")
	if name.Type != types.TermProperty || len(name.Supersedes) != 1 {
		t.Errorf("merged name = %+v", name)
	}
}

func TestTermsFollowPatternOrder(t *testing.T) {
	store, tmpDir := testSetup(t)
	core := writeTerms(t, tmpDir, "core.yaml", coreTerms())
	attic := writeTerms(t, tmpDir, "attic.yaml", atticTerms())

	for _, patterns := range [][]string{{core, attic}, {attic, core}, {core, attic}} {
		var buf strings.Builder
		if _, err := store.Ingest(context.Background(), patterns, &buf); err != nil {
			t.Fatal(err)
		}
		want, err := termsource.LoadFiles(patterns)
		if err != nil {
			t.Fatal(err)
		}
		got, err := store.Terms(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if termIDs(got) != termIDs(want) {
			t.Errorf("patterns %v: catalog order %s, file order %s", patterns, termIDs(got), termIDs(want))
		}
	}
}

func TestNewStoreRebuildsOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "terms.db")
	store, err := NewStore(types.CatalogConfig{Path: dbPath})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.db.Exec(`PRAGMA user_version = 1`); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = NewStore(types.CatalogConfig{Path: dbPath})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var version int
	if err := store.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != schemaVersion {
		t.Errorf("user_version = %d, want %d", version, schemaVersion)
	}
	if _, err := store.db.Exec(`SELECT position FROM terms`); err != nil {
		t.Errorf("terms table not rebuilt: %v", err)
	}
}

func TestIngestSkipsUnchanged(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeTerms(t, tmpDir, "core.yaml", coreTerms())
	ingest(t, store, tmpDir)

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), []string{filepath.Join(tmpDir, "data", "*.yaml")}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || summary.Indexed != 0 {
		t.Errorf("summary = %+v, want one skipped", summary)
	}
	if !strings.Contains(buf.String(), "skipped") {
		t.Errorf("output should contain 'skipped': %s", buf.String())
	}
}

func TestIngestUpdatesChanged(t *testing.T) {
	store, tmpDir := testSetup(t)
	path := writeTerms(t, tmpDir, "core.yaml", coreTerms())
	ingest(t, store, tmpDir)

	writeTerms(t, tmpDir, "core.yaml", coreTerms()[:1])
	future := time.Now().Add(time.Second)
	os.Chtimes(path, future, future)

	summary := ingest(t, store, tmpDir)
	if summary.Updated != 1 {
		t.Errorf("Updated = %d, want 1", summary.Updated)
	}

	terms, err := store.Terms(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 1 {
		t.Errorf("got %d terms, want 1 (old terms should be removed)", len(terms))
	}
}

func TestIngestRemovesDeletedFiles(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeTerms(t, tmpDir, "core.yaml", coreTerms())
	attic := writeTerms(t, tmpDir, "attic.yaml", atticTerms())
	ingest(t, store, tmpDir)

	if err := os.Remove(attic); err != nil {
		t.Fatal(err)
	}
	summary := ingest(t, store, tmpDir)
	if summary.Removed != 1 || summary.Skipped != 1 {
		t.Errorf("summary = %+v, want one removed and one skipped", summary)
	}

	results, err := store.Retrieve(context.Background(), QueryOptions{Layer: types.LayerAttic})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("attic terms still present: %v", results)
	}
}

func TestIngestReportsBadFiles(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeTerms(t, tmpDir, "core.yaml", coreTerms())
	if err := os.WriteFile(filepath.Join(tmpDir, "data", "broken.yaml"), []byte("terms: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), []string{filepath.Join(tmpDir, "data", "*.yaml")}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 1 || summary.Indexed != 1 {
		t.Errorf("summary = %+v, want one failed and one indexed", summary)
	}
	if !strings.Contains(buf.String(), "failed  ") {
		t.Errorf("output should report the failure: %s", buf.String())
	}
}

// --- retrieve tests ---

func TestRetrieve(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeTerms(t, tmpDir, "core.yaml", coreTerms())
	writeTerms(t, tmpDir, "attic.yaml", atticTerms())
	ingest(t, store, tmpDir)

	tests := []struct {
		name    string
		opts    QueryOptions
		wantIDs []string
	}{
		{"by type", QueryOptions{Type: types.TermClass}, []string{"Person", "Thing"}},
		{"label match ranks first", QueryOptions{Query: "person"}, []string{"Person"}},
		{"comment match", QueryOptions{Query: "generic"}, []string{"Thing"}},
		{"attic layer", QueryOptions{Layer: types.LayerAttic}, []string{"members"}},
		{"core layer", QueryOptions{Layer: "core", Type: types.TermProperty}, []string{"name"}},
		{"limit", QueryOptions{MaxResults: 1}, []string{"Person"}},
		{"like wildcards are literal", QueryOptions{Query: "100%"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Retrieve(context.Background(), tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			var ids []string
			for _, r := range results {
				ids = append(ids, r.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.wantIDs, ",") {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	if !(QueryOptions{MaxResults: 5}).IsEmpty() {
		t.Error("MaxResults alone should not count as a filter")
	}
	if (QueryOptions{Layer: "core"}).IsEmpty() {
		t.Error("layer filter should not be empty")
	}
}

// --- export tests ---

func TestExportRoundTrip(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeTerms(t, tmpDir, "core.yaml", coreTerms())
	ingest(t, store, tmpDir)

	yamlPath := filepath.Join(tmpDir, "export", "terms.yaml")
	if err := store.ExportYAML(context.Background(), QueryOptions{Type: types.TermClass}, yamlPath); err != nil {
		t.Fatal(err)
	}
	terms, err := termsource.LoadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 2 || terms[0].ID != "Person" || terms[0].Supers[0] != "Thing" {
		t.Errorf("exported terms = %+v", terms)
	}

	jsonPath := filepath.Join(tmpDir, "export", "terms.json")
	if err := store.ExportJSON(context.Background(), QueryOptions{}, jsonPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"id": "Thing"`) {
		t.Errorf("JSON export missing Thing: %s", data)
	}
}
