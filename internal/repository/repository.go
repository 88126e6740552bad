package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"techcom/internal/domain"

	"github.com/go-sql-driver/mysql"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const mysqlDuplicateEntry = 1062

func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// wrapWriteError maps duplicate keys to domain.ErrDuplicate and wraps everything else.
func wrapWriteError(op string, err error) error {
	if isDuplicateKeyError(err) {
		return fmt.Errorf("failed to %s: %w", op, domain.ErrDuplicate)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// expectOneRow turns a zero-row update into a not-found error.
func expectOneRow(result sql.Result, entity, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError(entity, id)
	}
	return nil
}

// whereBuilder accumulates AND-ed conditions with positional args.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func (w *whereBuilder) add(clause string, args ...interface{}) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	out := " WHERE " + w.clauses[0]
	for _, c := range w.clauses[1:] {
		out += " AND " + c
	}
	return out
}
