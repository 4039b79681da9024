// Package store implements the owner-scoped table pattern shared by every
// per-user resource: rows are created for, listed by and deleted by their
// owner only, and listed newest first.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/dmitrijs2005/nutricare/internal/dbx"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Schema describes how a resource of type T maps onto its table.
//
// Every table has an integer id, an owner column and a creation timestamp
// filled by the database. Columns lists the payload columns in the order
// Values returns them. Scan reads one row selected as
// id, owner, Columns..., created.
type Schema[T any] struct {
	Table         string
	OwnerColumn   string
	CreatedColumn string
	Columns       []string

	Values func(item *T) []any
	Scan   func(row Scanner) (*T, error)
	Assign func(item *T, id int64, ownerID string, created time.Time)
}

// Store runs owner-scoped queries for one Schema over a dbx.DBTX.
type Store[T any] struct {
	db     dbx.DBTX
	schema Schema[T]

	insertQuery string
	listQuery   string
	getQuery    string
	deleteQuery string
	countQuery  string
}

// New binds schema to db and prepares the query texts.
func New[T any](db dbx.DBTX, schema Schema[T]) *Store[T] {
	s := &Store[T]{db: db, schema: schema}

	placeholders := make([]string, 0, len(schema.Columns)+1)
	for i := range len(schema.Columns) + 1 {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	selectCols := strings.Join(append(append([]string{"id", schema.OwnerColumn}, schema.Columns...), schema.CreatedColumn), ", ")

	s.insertQuery = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id, %s`,
		schema.Table,
		strings.Join(append([]string{schema.OwnerColumn}, schema.Columns...), ", "),
		strings.Join(placeholders, ", "),
		schema.CreatedColumn)
	s.listQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, id DESC`,
		selectCols, schema.Table, schema.OwnerColumn, schema.CreatedColumn)
	s.getQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND %s = $2`,
		selectCols, schema.Table, schema.OwnerColumn)
	s.deleteQuery = fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND %s = $2`,
		schema.Table, schema.OwnerColumn)
	s.countQuery = fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.Table, schema.OwnerColumn)

	return s
}

// Create inserts item for ownerID and writes the generated id, owner and
// timestamp back into item.
func (s *Store[T]) Create(ctx context.Context, ownerID string, item *T) (int64, error) {
	args := append([]any{ownerID}, s.schema.Values(item)...)

	var (
		id      int64
		created time.Time
	)
	if err := s.db.QueryRowContext(ctx, s.insertQuery, args...).Scan(&id, &created); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	s.schema.Assign(item, id, ownerID, created)
	return id, nil
}

// List returns every row of ownerID, newest first. It never returns nil
// on success.
func (s *Store[T]) List(ctx context.Context, ownerID string) ([]*T, error) {
	rows, err := s.db.QueryContext(ctx, s.listQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", s.schema.Table, err)
	}
	defer rows.Close()

	result := make([]*T, 0)
	for rows.Next() {
		item, err := s.schema.Scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns row id when it belongs to ownerID. Missing and foreign rows
// both yield common.ErrorNotFound.
func (s *Store[T]) Get(ctx context.Context, ownerID string, id int64) (*T, error) {
	item, err := s.schema.Scan(s.db.QueryRowContext(ctx, s.getQuery, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// Delete removes row id only if it belongs to ownerID and reports whether
// a row was removed. Deleting a missing or foreign row is not an error.
func (s *Store[T]) Delete(ctx context.Context, ownerID string, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.deleteQuery, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := dbx.Affected(res)
	if err != nil {
		return false, err
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// Count returns the number of rows owned by ownerID.
func (s *Store[T]) Count(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, s.countQuery, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
