// Package dbx holds the small database plumbing the token repository builds
// on: the DBTX interface that lets a repository run against either a *sql.DB
// or an open *sql.Tx, and WithTx for wrapping multi-statement writes in one
// transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql that repositories are allowed to touch.
// Satisfied by *sql.DB and *sql.Tx, so the same repository code serves both
// direct calls and transactional ones.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx opens a transaction, hands its handle to fn, and commits when fn
// returns nil. Any error or panic rolls the transaction back; panics are
// rethrown after the rollback.
//
// The session uses this to replace both stored tokens atomically:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := tokens.NewSQLiteRepository(tx)
//	    // writes through repo land in the same transaction
//	    return repo.Set(ctx, name, value)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
