package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const advisoryLockQuery = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"

type txKey struct{}

// Queryer is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx.
type Queryer interface {
	sqlx.ExtContext
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Transactor runs work inside a single write transaction that holds
// transaction-scoped advisory locks on the given keys.
type Transactor interface {
	WithLocks(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

type transactorImpl struct {
	db *Connection
}

func NewTransactor(db *Connection) Transactor {
	return &transactorImpl{db: db}
}

// WithLocks begins a transaction, locks keys in sorted order and runs fn with
// the transaction on its context. fn's error rolls back. When ctx already
// carries a transaction the locks are taken inside it and no new one begins.
func (t *transactorImpl) WithLocks(ctx context.Context, keys []string, fn func(ctx context.Context) error) (err error) {
	if tx := TxFromContext(ctx); tx != nil {
		if err = lock(ctx, tx, keys); err != nil {
			return err
		}

		return fn(ctx)
	}

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = lock(ctx, tx, keys); err != nil {
		return err
	}

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func lock(ctx context.Context, tx *sqlx.Tx, keys []string) error {
	for _, key := range LockOrder(keys) {
		if _, err := tx.ExecContext(ctx, advisoryLockQuery, key); err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
	}

	return nil
}

// LockOrder sorts and de-duplicates keys and drops empty ones, so two
// transactions asking for the same keys always queue in the same order.
func LockOrder(keys []string) []string {
	ordered := make([]string, 0, len(keys))

	for _, key := range keys {
		if key != "" {
			ordered = append(ordered, key)
		}
	}

	slices.Sort(ordered)

	return slices.Compact(ordered)
}

// TxFromContext returns the transaction opened by WithLocks, if any.
func TxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)

	return tx
}

// Reader returns the transaction on ctx, falling back to the read pool.
func (c *Connection) Reader(ctx context.Context) Queryer {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}

	return c.Read
}

// Writer returns the transaction on ctx, falling back to the write pool.
func (c *Connection) Writer(ctx context.Context) Queryer {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}

	return c.Write
}
