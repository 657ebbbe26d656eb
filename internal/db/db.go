package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the minimal query interface satisfied by *pgxpool.Pool,
// *pgxpool.Conn, and pgx.Tx. Stores are written against it so the same code
// runs inside and outside transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is what services hold: plain queries plus the ability to open
// transactions. *pgxpool.Pool satisfies it.
type Pool interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}
