package cookies

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, cs []Cookie) error {
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := clearAll(ctx, tx); err != nil {
			return err
		}
		for _, c := range cs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO session_cookies (name, value, saved_at) VALUES (?, ?, ?)
				ON CONFLICT(name) DO UPDATE SET value = excluded.value, saved_at = excluded.saved_at
			`, c.Name, c.Value, c.SavedAt.Unix())
			if err != nil {
				return fmt.Errorf("failed to save cookie[%s]: %w", c.Name, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Cookie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, value, saved_at FROM session_cookies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cookies: %w", err)
	}
	defer rows.Close()

	var result []Cookie
	for rows.Next() {
		var c Cookie
		var savedAt int64
		if err := rows.Scan(&c.Name, &c.Value, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		c.SavedAt = time.Unix(savedAt, 0).UTC()
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return clearAll(ctx, r.db)
}

func clearAll(ctx context.Context, db dbx.DBTX) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM session_cookies`); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}
