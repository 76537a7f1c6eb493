package movable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
)

// SQLStore implements TransactionAwareStore over one ordered table.
type SQLStore struct {
	db  gen.DBTX
	col Collection
	cfg QueryConfig

	listQuery      string
	listAfterQuery string
	maxQuery       string
	sortOrderQuery string
	updateQuery    string
	deleteQuery    string
}

var _ TransactionAwareStore = (*SQLStore)(nil)

func NewSQLStore(db gen.DBTX, col Collection) (*SQLStore, error) {
	cfg, err := col.config()
	if err != nil {
		return nil, err
	}
	s := &SQLStore{db: db, col: col, cfg: cfg}
	s.buildQueries()
	return s, nil
}

// MustSQLStore panics on an unknown collection. Intended for the fixed collection constants.
func MustSQLStore(db gen.DBTX, col Collection) *SQLStore {
	s, err := NewSQLStore(db, col)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *SQLStore) buildQueries() {
	c := s.cfg
	selectCols := fmt.Sprintf("%s, %s, %s", c.IDColumn, c.PositionColumn, c.LabelExpr)
	s.listQuery = fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC, %s ASC",
		selectCols, c.TableName, c.PositionColumn, c.IDColumn)
	s.listAfterQuery = fmt.Sprintf("SELECT %s FROM %s WHERE %s > ? ORDER BY %s ASC, %s ASC",
		selectCols, c.TableName, c.PositionColumn, c.PositionColumn, c.IDColumn)
	s.maxQuery = fmt.Sprintf("SELECT MAX(%s) FROM %s", c.PositionColumn, c.TableName)
	s.sortOrderQuery = fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", c.PositionColumn, c.TableName, c.IDColumn)
	s.updateQuery = fmt.Sprintf("UPDATE %s SET %s = ?, updated_at = ? WHERE %s = ?", c.TableName, c.PositionColumn, c.IDColumn)
	s.deleteQuery = fmt.Sprintf("DELETE FROM %s WHERE %s = ?", c.TableName, c.IDColumn)
}

func (s *SQLStore) TX(tx *sql.Tx) SequenceStore {
	cp := *s
	cp.db = tx
	return &cp
}

func (s *SQLStore) Collection() Collection {
	return s.col
}

func (s *SQLStore) List(ctx context.Context) ([]Entry, error) {
	return s.query(ctx, "list", s.listQuery)
}

func (s *SQLStore) ListAfter(ctx context.Context, sortOrder int64) ([]Entry, error) {
	return s.query(ctx, "list after", s.listAfterQuery, sortOrder)
}

func (s *SQLStore) query(ctx context.Context, op, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.unavailable(op, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SortOrder, &e.Label); err != nil {
			return nil, s.unavailable(op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable(op, err)
	}
	return entries, nil
}

func (s *SQLStore) MaxSortOrder(ctx context.Context) (int64, bool, error) {
	var maxOrder sql.NullInt64
	if err := s.db.QueryRowContext(ctx, s.maxQuery).Scan(&maxOrder); err != nil {
		return 0, false, s.unavailable("max sort order", err)
	}
	if !maxOrder.Valid {
		return 0, false, nil
	}
	return maxOrder.Int64, true, nil
}

func (s *SQLStore) SortOrderOf(ctx context.Context, id int64) (int64, error) {
	var sortOrder int64
	err := s.db.QueryRowContext(ctx, s.sortOrderQuery, id).Scan(&sortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s %d: %w", s.col, id, ErrItemNotFound)
	}
	if err != nil {
		return 0, s.unavailable("sort order of", err)
	}
	return sortOrder, nil
}

func (s *SQLStore) UpdateSortOrder(ctx context.Context, id, sortOrder int64) error {
	if sortOrder < 1 {
		return fmt.Errorf("%w: sort order %d for %s %d", ErrValidation, sortOrder, s.col, id)
	}
	res, err := s.db.ExecContext(ctx, s.updateQuery, sortOrder, dbtime.Unix(), id)
	if err != nil {
		return s.unavailable("update sort order", err)
	}
	return s.expectOne(res, id)
}

// UpdateSortOrders applies every update through one prepared statement.
func (s *SQLStore) UpdateSortOrders(ctx context.Context, updates []PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	for _, u := range updates {
		if u.SortOrder < 1 {
			return fmt.Errorf("%w: sort order %d for %s %d", ErrValidation, u.SortOrder, s.col, u.ID)
		}
	}

	stmt, err := s.db.PrepareContext(ctx, s.updateQuery)
	if err != nil {
		return s.unavailable("prepare bulk update", err)
	}
	defer stmt.Close()

	now := dbtime.Unix()
	for _, u := range updates {
		res, err := stmt.ExecContext(ctx, u.SortOrder, now, u.ID)
		if err != nil {
			return s.unavailable("bulk update sort order", err)
		}
		if err := s.expectOne(res, u.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.deleteQuery, id)
	if err != nil {
		return s.unavailable("remove", err)
	}
	return s.expectOne(res, id)
}

func (s *SQLStore) expectOne(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return s.unavailable("rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", s.col, id, ErrItemNotFound)
	}
	return nil
}

func (s *SQLStore) unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrStoreUnavailable, op, s.col, err)
}
