package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Transaction struct {
	tx     pgx.Tx
	closed bool
}

// TransactionManager gère l'acquisition des connexions et leur libération
// sur tous les chemins de sortie
type TransactionManager struct {
	client *Client
	logger *zap.Logger
}

type TxFunc func(tx *Transaction) error

// SessionFunc reçoit la session de lecture, valable uniquement pendant l'appel
type SessionFunc func(q Querier) error

func NewTransactionManager(client *Client, logger *zap.Logger) *TransactionManager {
	return &TransactionManager{
		client: client,
		logger: logger,
	}
}

// Client accès direct au pool, pour les lectures concurrentes
func (tm *TransactionManager) Client() *Client {
	return tm.client
}

func (tm *TransactionManager) WithTransaction(ctx context.Context, fn TxFunc) error {
	return tm.withTx(ctx, pgx.TxOptions{}, fn, true)
}

// WithReadSession ouvre une transaction READ ONLY REPEATABLE READ : toutes les
// lectures de fn voient le même instantané. La transaction est toujours annulée.
func (tm *TransactionManager) WithReadSession(ctx context.Context, fn SessionFunc) error {
	opts := pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}
	return tm.withTx(ctx, opts, func(tx *Transaction) error { return fn(tx) }, false)
}

func (tm *TransactionManager) withTx(ctx context.Context, opts pgx.TxOptions, fn TxFunc, commit bool) error {
	if tm.client == nil || tm.client.pool == nil {
		return fmt.Errorf("database pool is nil")
	}

	conn, err := tm.client.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	pgxTx, err := conn.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Transaction{tx: pgxTx}

	defer func() {
		if !tx.closed {
			// contexte détaché : le rollback doit passer même si ctx est annulé
			if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
				tm.logger.Warn("rollback failed", zap.Error(rollbackErr))
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if !commit {
		return nil
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (t *Transaction) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if t.closed {
		return nil, fmt.Errorf("transaction is closed")
	}
	return t.tx.Query(ctx, sql, args...)
}

func (t *Transaction) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if t.closed {
		return &closedTxRow{err: fmt.Errorf("transaction is closed")}
	}
	return t.tx.QueryRow(ctx, sql, args...)
}

func (t *Transaction) Exec(ctx context.Context, sql string, args ...any) error {
	if t.closed {
		return fmt.Errorf("transaction is closed")
	}
	_, err := t.tx.Exec(ctx, sql, args...)
	return err
}

func (t *Transaction) Commit(ctx context.Context) error {
	if t.closed {
		return fmt.Errorf("transaction is already closed")
	}

	err := t.tx.Commit(ctx)
	t.closed = true
	return err
}

func (t *Transaction) Rollback(ctx context.Context) error {
	if t.closed {
		return nil
	}

	err := t.tx.Rollback(ctx)
	t.closed = true
	return err
}

func (t *Transaction) IsClosed() bool {
	return t.closed
}

type closedTxRow struct {
	err error
}

func (r *closedTxRow) Scan(dest ...any) error {
	return r.err
}
