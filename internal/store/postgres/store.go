// Package postgres persists ledger records in PostgreSQL. Amount
// columns are NUMERIC(20,0) so the full uint64 range round-trips; they
// travel as decimal strings on the wire. Transactional reads take row
// locks (SELECT ... FOR UPDATE) so concurrent transitions naming the
// same records serialize.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// session carries one query surface. Plain reads run unlocked against
// the pool; the transactional session locks every row it reads.
type session struct {
	q    querier
	lock bool
}

func (s session) forUpdate() string {
	if s.lock {
		return " FOR UPDATE"
	}
	return ""
}

type Store struct {
	session
	db *DB
}

var _ store.Store = (*Store)(nil)

func NewStore(db *DB) *Store {
	return &Store{session: session{q: db}, db: db}
}

// WithinTx runs fn inside one database transaction and commits only if
// fn returns nil. A typed rejection from fn rolls everything back, so
// no partial transition is ever visible.
func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Tx) error) error {
	dbTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(session{q: dbTx, lock: true}); err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

var _ store.Tx = session{}

// mapError translates driver failures the engine understands. A unique
// violation means a concurrent transition created the record first.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return model.ErrDuplicate("%s: record already exists", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// uintColumn parses a NUMERIC(20,0) value scanned as text.
func uintColumn(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}

func uintParam(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func uintPtrParam(v *uint64) *string {
	if v == nil {
		return nil
	}
	s := uintParam(*v)
	return &s
}
