package runner

import (
	"context"
	"database/sql"
)

// DBExecPort adapts a *sql.DB (or *sql.Conn/*sql.Tx) to ExecPort. Only
// QueryContext needs converting — ExecContext's signature already
// matches.
type DBExecPort struct {
	DB *sql.DB
}

func (p *DBExecPort) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return p.DB.ExecContext(ctx, query, args...)
}

func (p *DBExecPort) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	return p.DB.QueryContext(ctx, query, args...)
}
