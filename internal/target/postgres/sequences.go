package postgres

import (
	"context"
	"fmt"
)

// FixSequence moves a table's id sequence past the highest explicitly
// inserted id, so later serial inserts do not collide.
func FixSequence(ctx context.Context, db Querier, table string) error {
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s`,
		table, table)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to fix sequence for %s: %w", table, err)
	}
	return nil
}
