// Package db holds the query layer over postgres, generated-style: a
// Queries struct bound to any pgx connection-like value (pool, conn, tx).
package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx shared by pools, connections and transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// New binds Queries to a connection-like value.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries executes the prepared SQL of this package.
type Queries struct {
	db DBTX
}

// WithTx returns Queries bound to a transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}
