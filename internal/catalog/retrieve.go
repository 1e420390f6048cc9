// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/schema-builder/pkg/types"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query matches case-insensitively against id, label, and comment.
	Query string

	// Type filters by term type.
	Type types.TermType

	// Layer filters by extension layer. "core" selects terms with no layer.
	Layer string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search text or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Type == "" && q.Layer == ""
}

// QueryResult is a stored definition with the file it came from.
type QueryResult struct {
	types.Term
	SourceFile string `json:"source_file" yaml:"source_file"`
}

// Retrieve queries the catalog. Matches on id or label rank before
// matches on comment; ties are ordered by id and source file.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT definition, source_file FROM terms WHERE 1=1`)

	if opts.Query != "" {
		like := "%" + escapeLike(strings.ToLower(opts.Query)) + "%"
		qb.WriteString(` AND (lower(id) LIKE ? ESCAPE '\' OR lower(label) LIKE ? ESCAPE '\' OR lower(comment) LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	if opts.Type != "" {
		qb.WriteString(` AND type = ?`)
		args = append(args, string(opts.Type))
	}
	switch opts.Layer {
	case "":
	case "core":
		qb.WriteString(` AND (layer IS NULL OR layer = '')`)
	default:
		qb.WriteString(` AND layer = ?`)
		args = append(args, opts.Layer)
	}

	if opts.Query != "" {
		qb.WriteString(` ORDER BY CASE WHEN lower(id) LIKE ? ESCAPE '\' OR lower(label) LIKE ? ESCAPE '\' THEN 0 ELSE 1 END, id, source_file, position`)
		like := "%" + escapeLike(strings.ToLower(opts.Query)) + "%"
		args = append(args, like, like)
	} else {
		qb.WriteString(` ORDER BY id, source_file, position`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr  QueryResult
			def string
		)
		if err := rows.Scan(&def, &qr.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(def), &qr.Term); err != nil {
			return nil, fmt.Errorf("decoding term: %w", err)
		}
		results = append(results, qr)
	}
	return results, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
