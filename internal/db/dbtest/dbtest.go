// Package dbtest provides a recording fake for the db.Pool interface, so
// store and service behavior can be asserted at the statement level without a
// running database.
package dbtest

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Statement is one SQL statement captured by the recording pool, with the
// positional arguments it was issued with.
type Statement struct {
	SQL  string
	Args []any
}

// Pool satisfies db.Pool and records every statement issued against it,
// including statements issued through transactions it begins. Statements is
// the global ordered log across the pool and all its transactions.
type Pool struct {
	Statements []Statement
	Txs        []*Tx
	BeginErr   error

	// ScanRow, when set, is called for every QueryRow scan with the
	// statement that produced the row. Leaving it nil makes every scan
	// succeed with zero values.
	ScanRow func(stmt Statement, dest []any) error
}

func (p *Pool) record(sql string, args []any) Statement {
	stmt := Statement{SQL: sql, Args: args}
	p.Statements = append(p.Statements, stmt)
	return stmt
}

func (p *Pool) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.record(sql, args)
	return pgconn.NewCommandTag(""), nil
}

func (p *Pool) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	p.record(sql, args)
	return emptyRows{}, nil
}

func (p *Pool) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	return row{stmt: p.record(sql, args), scan: p.ScanRow}
}

func (p *Pool) Begin(_ context.Context) (pgx.Tx, error) {
	if p.BeginErr != nil {
		return nil, p.BeginErr
	}
	tx := &Tx{pool: p}
	p.Txs = append(p.Txs, tx)
	return tx, nil
}

// Tx is a recording transaction handed out by Pool.Begin. Its statements are
// also appended to the parent pool's log.
type Tx struct {
	pool       *Pool
	Statements []Statement
	Committed  bool
	RolledBack bool

	ExecErr error
}

func (t *Tx) record(sql string, args []any) Statement {
	stmt := Statement{SQL: sql, Args: args}
	t.Statements = append(t.Statements, stmt)
	t.pool.Statements = append(t.pool.Statements, stmt)
	return stmt
}

func (t *Tx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.ExecErr != nil {
		return pgconn.CommandTag{}, t.ExecErr
	}
	t.record(sql, args)
	return pgconn.NewCommandTag(""), nil
}

func (t *Tx) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	t.record(sql, args)
	return emptyRows{}, nil
}

func (t *Tx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	return row{stmt: t.record(sql, args), scan: t.pool.ScanRow}
}

func (t *Tx) Begin(_ context.Context) (pgx.Tx, error) { return t, nil }

func (t *Tx) Commit(_ context.Context) error {
	t.Committed = true
	return nil
}

func (t *Tx) Rollback(_ context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

func (t *Tx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *Tx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (t *Tx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (t *Tx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *Tx) Conn() *pgx.Conn { return nil }

type row struct {
	stmt Statement
	scan func(Statement, []any) error
}

func (r row) Scan(dest ...any) error {
	if r.scan != nil {
		return r.scan(r.stmt, dest)
	}
	return nil
}

// emptyRows is a result set with no rows.
type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return pgx.ErrNoRows }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }
