// AngelaMos | 2026
// sqltest.go

// Package sqltest provides a scripted database/sql driver for exercising
// repository SQL flows without a live Postgres. Each Step scripts one
// statement in order; the connection records begin/commit/rollback so tests
// can assert transactional outcomes.
package sqltest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Step scripts the next statement the connection expects.
type Step struct {
	// Match must appear as a substring of the statement.
	Match string
	// Columns names the result set; nil marks an exec-style statement.
	Columns []string
	// Rows holds the scripted result rows. Columns set with Rows nil yields
	// an empty result set (sql.ErrNoRows for single-row scans).
	Rows [][]driver.Value
	// Affected is the rows-affected count for exec-style statements.
	Affected int64
	// Err fails the statement.
	Err error
}

// Call records one executed statement and its bound arguments.
type Call struct {
	Query string
	Args  []driver.Value
}

// Conn is the shared scripted connection behind every pooled handle.
type Conn struct {
	mu    sync.Mutex
	steps []Step
	pos   int

	Calls      []Call
	Began      bool
	Committed  bool
	RolledBack bool
}

// Open returns an sqlx handle whose statements are served by the script.
func Open(steps ...Step) (*sqlx.DB, *Conn) {
	conn := &Conn{steps: steps}
	return sqlx.NewDb(sql.OpenDB(connector{conn}), "pgx"), conn
}

// Remaining reports how many scripted steps were never reached.
func (c *Conn) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.steps) - c.pos
}

func (c *Conn) next(query string, args []driver.NamedValue) (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	values := make([]driver.Value, len(args))
	for i, arg := range args {
		values[i] = arg.Value
	}
	c.Calls = append(c.Calls, Call{Query: query, Args: values})

	if c.pos >= len(c.steps) {
		return Step{}, fmt.Errorf("unscripted statement: %s", query)
	}

	step := c.steps[c.pos]
	c.pos++

	if !strings.Contains(query, step.Match) {
		return Step{}, fmt.Errorf(
			"statement %q does not contain %q",
			query,
			step.Match,
		)
	}

	return step, nil
}

func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("prepare is not scripted: %s", query)
}

func (c *Conn) Close() error { return nil }

func (c *Conn) Begin() (driver.Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Began = true
	return fakeTx{conn: c}, nil
}

func (c *Conn) BeginTx(
	_ context.Context,
	_ driver.TxOptions,
) (driver.Tx, error) {
	return c.Begin()
}

func (c *Conn) QueryContext(
	_ context.Context,
	query string,
	args []driver.NamedValue,
) (driver.Rows, error) {
	step, err := c.next(query, args)
	if err != nil {
		return nil, err
	}
	if step.Err != nil {
		return nil, step.Err
	}
	return &fakeRows{columns: step.Columns, data: step.Rows}, nil
}

func (c *Conn) ExecContext(
	_ context.Context,
	query string,
	args []driver.NamedValue,
) (driver.Result, error) {
	step, err := c.next(query, args)
	if err != nil {
		return nil, err
	}
	if step.Err != nil {
		return nil, step.Err
	}
	return driver.RowsAffected(step.Affected), nil
}

type fakeTx struct {
	conn *Conn
}

func (t fakeTx) Commit() error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	t.conn.Committed = true
	return nil
}

func (t fakeTx) Rollback() error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	t.conn.RolledBack = true
	return nil
}

type fakeRows struct {
	columns []string
	data    [][]driver.Value
	pos     int
}

func (r *fakeRows) Columns() []string { return r.columns }

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.pos])
	r.pos++
	return nil
}

type connector struct {
	conn *Conn
}

func (c connector) Connect(context.Context) (driver.Conn, error) {
	return c.conn, nil
}

func (c connector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, fmt.Errorf("open by DSN is not supported")
}
