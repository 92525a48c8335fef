package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// hasColumn reports whether table.column exists in the current schema.
func hasColumn(ctx context.Context, q queryRower, table, column string) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspect %s.%s: %w", table, column, err)
	}
	return name.Valid && name.String != "", nil
}

// bookingColumnsAdded lists columns introduced after the first bookings schema.
var bookingColumnsAdded = []struct{ name, ddl string }{
	{"passenger_email", "VARCHAR(255) NOT NULL DEFAULT ''"},
	{"created_at", "VARCHAR(32) NOT NULL DEFAULT ''"},
}

// migrateBookings adds missing columns to a bookings table created by an
// older release.
func (s MySQLStore) migrateBookings(ctx context.Context) error {
	for _, col := range bookingColumnsAdded {
		ok, err := hasColumn(ctx, s.DB, "bookings", col.name)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if _, err := s.DB.ExecContext(ctx, "ALTER TABLE bookings ADD COLUMN "+col.name+" "+col.ddl); err != nil {
			return fmt.Errorf("add bookings.%s: %w", col.name, err)
		}
	}
	return nil
}
