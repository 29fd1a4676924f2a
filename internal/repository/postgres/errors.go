package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"reservationportal/internal/domain"
)

// Postgres error codes the stores react to.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeInvalidTextRepr      = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so a repository can run inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func pqCode(err error) string {
	var perr *pq.Error
	if errors.As(err, &perr) {
		return string(perr.Code)
	}
	return ""
}

// mapLookupError turns a missing row, or an ID that is not a valid UUID, into notFound.
func mapLookupError(err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) || pqCode(err) == codeInvalidTextRepr {
		return notFound
	}
	return err
}

// mapTxError marks serialization failures and deadlocks as retryable. Other errors pass through.
func mapTxError(err error) error {
	switch pqCode(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return fmt.Errorf("%w: %v", domain.ErrRetryable, err)
	}
	return err
}
