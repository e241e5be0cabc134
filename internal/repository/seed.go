package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// ExecScriptFile replays a SQL seed file against the database, one
// statement per line, skipping blanks and comment lines.  The admin reseed
// uses this to restore the fixed initial dataset before a rebuild.  The
// file is trusted operator input; it is executed verbatim.
func ExecScriptFile(ctx context.Context, db *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	for i, line := range strings.Split(string(data), "\n") {
		stmt := strings.TrimSpace(line)
		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed line %d: %w", i+1, err)
		}
	}
	return nil
}
