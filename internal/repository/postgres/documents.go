package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// documentRow is one JSONB document keyed by ID.
type documentRow struct {
	ID        string    `db:"id"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// documents implements single-document operations on a table shaped
// (id TEXT PRIMARY KEY, data JSONB, created_at, updated_at).
type documents struct {
	db       *sqlx.DB
	table    string
	notFound error
}

func (d *documents) insert(ctx context.Context, id string, v any, now time.Time) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", d.table, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, data, created_at, updated_at) VALUES ($1, $2, $3, $3)`, d.table)
	if _, err := d.db.ExecContext(ctx, query, id, data, now); err != nil {
		return mapError(err)
	}
	return nil
}

func (d *documents) upsert(ctx context.Context, id string, v any, now time.Time) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", d.table, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, d.table)
	if _, err := d.db.ExecContext(ctx, query, id, data, now); err != nil {
		return mapError(err)
	}
	return nil
}

func (d *documents) get(ctx context.Context, id string, dst any) (*documentRow, error) {
	var row documentRow
	query := fmt.Sprintf(`SELECT id, data, created_at, updated_at FROM %s WHERE id = $1`, d.table)
	if err := d.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, d.notFound
		}
		return nil, mapError(err)
	}

	if err := json.Unmarshal(row.Data, dst); err != nil {
		return nil, fmt.Errorf("decode %s document %s: %w", d.table, id, err)
	}
	return &row, nil
}

// mapError folds Postgres failures onto the domain error taxonomy.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "42501" || pqErr.Code.Class() == "28":
			return fmt.Errorf("%w: %s", domain.ErrPermissionDenied, pqErr.Message)
		case pqErr.Code == "42P01" || pqErr.Code == "3D000":
			return fmt.Errorf("%w: %s", domain.ErrNotInitialized, pqErr.Message)
		case pqErr.Code.Class() == "08" || pqErr.Code.Class() == "57":
			return fmt.Errorf("%w: %s", domain.ErrUnavailable, pqErr.Message)
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}
