package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management.
// Multi-statement reads use it to see a single snapshot.
type TransactionManager interface {
	// Begin starts a new database transaction with the given isolation and access mode.
	Begin(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
