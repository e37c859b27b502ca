// Package sqlengine wraps the embedded SQL store SPEC_FULL.md §1 lists
// as an external collaborator ("an embedded store exposing
// query(sql, params) -> rows and collection introspection"). It is
// realized with modernc.org/sqlite, the pure-Go, CGo-free SQLite driver
// pulled from the agentic-research-mache example, run against an
// in-memory database that mirrors collection state at query time — the
// same "cheap, recompute against the live set" approach DESIGN NOTES
// §9 prescribes for GraphQL relation inference.
package sqlengine

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/rawen554/mockhive/internal/apperr"
	"github.com/rawen554/mockhive/internal/collection"
)

// Engine is a disposable in-process SQLite database rebuilt from the
// live collection set ahead of every query.
type Engine struct {
	db *sql.DB
}

// New opens an in-memory SQLite database in shared-cache mode, so every
// Engine in the process works on the same set of tables.
func New() (*Engine, error) {
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("opening sql engine: %w: %v", apperr.ErrSQLEngineFailure, err)
	}
	db.SetMaxOpenConns(1) // a shared in-memory db needs a single connection to stay alive/consistent
	return &Engine{db: db}, nil
}

// Close releases the engine's connection.
func (e *Engine) Close() error {
	return e.db.Close()
}

// sync recreates one table per collection from its current records.
// Every column, the id key included, is TEXT: strings are stored
// verbatim, nil as the empty string, and any other value in its fmt
// %v form, keeping this a thin reflection of the collection store
// rather than a real schema.
func (e *Engine) sync(store *collection.Store) error {
	for _, name := range store.Names() {
		coll := store.Get(name)
		if coll == nil {
			continue
		}

		table := sanitizeIdent(name)
		if _, err := e.db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
			return fmt.Errorf("%w: dropping %s: %v", apperr.ErrSQLEngineFailure, table, err)
		}

		records := coll.List()
		columns := collectColumns(records)
		if len(columns) == 0 {
			columns = []string{coll.IDKey}
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "CREATE TABLE %s (", table)
		for i, col := range columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s TEXT", sanitizeIdent(col))
		}
		sb.WriteString(")")
		if _, err := e.db.Exec(sb.String()); err != nil {
			return fmt.Errorf("%w: creating %s: %v", apperr.ErrSQLEngineFailure, table, err)
		}

		for _, rec := range records {
			if err := insertRecord(e.db, table, columns, rec); err != nil {
				return err
			}
		}
	}
	return nil
}

func collectColumns(records []collection.Record) []string {
	seen := map[string]bool{}
	var cols []string
	for _, r := range records {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

func insertRecord(db *sql.DB, table string, columns []string, rec collection.Record) error {
	placeholders := make([]string, len(columns))
	values := make([]any, len(columns))
	for i, col := range columns {
		placeholders[i] = "?"
		values[i] = stringify(rec[col])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(sanitizeIdents(columns), ", "), strings.Join(placeholders, ", "))

	if _, err := db.Exec(query, values...); err != nil {
		return fmt.Errorf("%w: inserting into %s: %v", apperr.ErrSQLEngineFailure, table, err)
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

func sanitizeIdent(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func sanitizeIdents(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = sanitizeIdent(s)
	}
	return out
}

// Query mirrors the collection store into SQLite, then executes sqlText
// with the given positional params, returning one map per row.
func (e *Engine) Query(store *collection.Store, sqlText string, params []any) ([]map[string]any, error) {
	if err := e.sync(store); err != nil {
		return nil, err
	}

	rows, err := e.db.Query(sqlText, params...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrSQLEngineFailure, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrSQLEngineFailure, err)
	}

	var out []map[string]any
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrSQLEngineFailure, err)
		}

		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := raw[i].([]byte); ok {
				raw[i] = string(b)
			}
			row[c] = raw[i]
		}
		out = append(out, row)
	}

	return out, rows.Err()
}
